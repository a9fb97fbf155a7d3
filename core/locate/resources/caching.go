package resources

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/npillmayer/banner/core"
)

// DownloadCachedFile will download a url to a local file (usually located in the
// user's cache directory).
func DownloadCachedFile(ctx context.Context, dest string, url string) error {
	body, err := fetch(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	out, err := os.Create(dest)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create cache file %s", dest)
	}
	defer out.Close()
	_, err = io.Copy(out, body)
	return err
}

func fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid URL %s", url)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, core.WrapError(err, core.ECONNECTION, "cannot fetch %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, core.Error(core.ECONNECTION, "cannot fetch %s: %s", url, resp.Status)
	}
	return resp.Body, nil
}

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(appkey string, subfolders ...string) (string, error) {
	if appkey == "" {
		tracer().Errorf("application key is not set")
		return "", core.Error(core.EINVALID, "cache directory needs an application key")
	}
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "user has no cache directory")
	}
	subs := filepath.Join(subfolders...)
	cachedir = filepath.Join(cachedir, appkey, subs)
	tracer().Infof("caching in %s", cachedir)
	_, err = os.Stat(cachedir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(cachedir, 0755)
		if err != nil {
			return "", core.WrapError(err, core.EINVALID, "cannot create cache directory %s", cachedir)
		}
	}
	return cachedir, nil
}
