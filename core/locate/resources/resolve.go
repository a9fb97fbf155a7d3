package resources

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/banner/core"
	_ "golang.org/x/image/webp" // register decoder
)

type resourceType int

// resource types
const (
	unknownResourceType resourceType = iota
	fontResourceType
	imageResourceType
)

// NotFound returns an application error for a missing resource.
func NotFound(res string, rtype resourceType) error {
	e := fmt.Errorf("resource missing: %v", res)
	var s string
	switch rtype {
	case imageResourceType:
		s = fmt.Sprintf("image not found: %s", res)
	case fontResourceType:
		s = fmt.Sprintf("font not found: %s", res)
	default:
		s = fmt.Sprintf("resource not found: %s", res)
	}
	err := core.WrapError(e, core.EMISSING, "%s", s)
	return err
}

// --- Fonts -----------------------------------------------------------------

// LocateFont finds a font file. Paths pointing to an existing file are
// returned unchanged. Otherwise the file's base name is searched for in the
// system's font directories.
func LocateFont(path string) (string, error) {
	if path == "" {
		return "", NotFound("<empty>", fontResourceType)
	}
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return path, nil
	}
	base := filepath.Base(path)
	fpath, err := findfont.Find(base) // try to find as system font
	if err != nil || fpath == "" {
		tracer().Debugf("font file %s is not installed", base)
		return "", NotFound(path, fontResourceType)
	}
	if !strings.EqualFold(filepath.Base(fpath), base) { // findfont matches fuzzily
		return "", NotFound(path, fontResourceType)
	}
	tracer().Debugf("%s is a system font at %s", base, fpath)
	return fpath, nil
}

// --- Images ---------------------------------------------------------------

type imgPlusErr struct {
	img image.Image
	err error
}

// ImagePromise delivers an image once it has been loaded.
type ImagePromise interface {
	Image() (image.Image, error)
	ImageContext(ctx context.Context) (image.Image, error)
}

// imageLoader holds the outcome of a load, which is available once done
// is closed. The outcome may be read any number of times.
type imageLoader struct {
	done   chan struct{}
	result imgPlusErr
}

func (loader *imageLoader) Image() (image.Image, error) {
	return loader.ImageContext(context.Background())
}

func (loader *imageLoader) ImageContext(ctx context.Context) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-loader.done:
		return loader.result.img, loader.result.err
	}
}

// ResolveImage loads an image from an http(s) URL or from a local file.
// PNG, JPEG, GIF and WebP are supported. Loading starts immediately, ctx
// cancels a remote fetch.
func ResolveImage(ctx context.Context, location string) ImagePromise {
	loader := &imageLoader{done: make(chan struct{})}
	go func() {
		defer close(loader.done)
		loader.result = load(ctx, location)
	}()
	return loader
}

func load(ctx context.Context, location string) (result imgPlusErr) {
	var r io.ReadCloser
	if isURL(location) {
		r, result.err = fetch(ctx, location)
	} else {
		r, result.err = os.Open(location)
		if os.IsNotExist(result.err) {
			result.err = NotFound(location, imageResourceType)
		}
	}
	if result.err != nil {
		return
	}
	defer r.Close()
	var format string
	result.img, format, result.err = image.Decode(r)
	if result.err != nil {
		result.err = core.WrapError(result.err, core.EINVALID, "cannot decode image %s", location)
	} else {
		tracer().Debugf("loaded %s image %s", format, location)
	}
	return
}

func isURL(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}
