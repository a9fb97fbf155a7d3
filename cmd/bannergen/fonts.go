package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/banner/core"
	"github.com/npillmayer/banner/core/font"
	"github.com/npillmayer/banner/core/font/fontregistry"
	"github.com/npillmayer/banner/core/locate/resources"
	"github.com/pterm/pterm"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"gopkg.in/yaml.v3"
)

const appkey = "bannergen"

var demoFonts = []struct {
	name string
	file string
	ttf  []byte
}{
	{"Go Regular", "Go-Regular.ttf", goregular.TTF},
	{"Go Bold", "Go-Bold.ttf", gobold.TTF},
	{"Go Italic", "Go-Italic.ttf", goitalic.TTF},
	{"Go Mono", "Go-Mono.ttf", gomono.TTF},
}

// installDemoFonts writes the Go fonts and a catalogue for them to the
// cache directory. It returns the path of the catalogue.
func installDemoFonts() (string, error) {
	dir, err := resources.CacheDirPath(appkey, "demo")
	if err != nil {
		return "", err
	}
	cat := fontregistry.Catalog{}
	for _, f := range demoFonts {
		p := filepath.Join(dir, f.file)
		if err := os.WriteFile(p, f.ttf, 0644); err != nil {
			return "", core.WrapError(err, core.EINVALID, "cannot install demo font %s", p)
		}
		cat.Fonts = append(cat.Fonts, fontregistry.CatalogEntry{Name: f.name, Path: p})
	}
	out, err := yaml.Marshal(&cat)
	if err != nil {
		return "", core.WrapError(err, core.EINTERNAL, "cannot encode demo catalogue")
	}
	catpath := filepath.Join(dir, "fonts.yaml")
	if err := os.WriteFile(catpath, out, 0644); err != nil {
		return "", core.WrapError(err, core.EINVALID, "cannot write demo catalogue")
	}
	pterm.Info.Printfln("demo fonts installed in %s", dir)
	return catpath, nil
}

// downloadFont fetches a font file into the cache directory, unless it is
// cached already, and puts it at the top of the priority list.
func downloadFont(ctx context.Context, registry *fontregistry.Registry, url string) error {
	dir, err := resources.CacheDirPath(appkey, "fonts")
	if err != nil {
		return err
	}
	base := path.Base(url)
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	dest := filepath.Join(dir, base)
	if _, err := os.Stat(dest); err != nil {
		pterm.Info.Printfln("downloading %s", url)
		if err := resources.DownloadCachedFile(ctx, dest, url); err != nil {
			return err
		}
	}
	res := font.SingleFace(dest)
	if ext := strings.ToLower(filepath.Ext(base)); ext == ".ttc" || ext == ".otc" {
		res = font.MultiFace(dest, 0)
	}
	name := fontregistry.NormalizeFontname(base)
	if !registry.Add(name, 0, res) {
		return core.Error(core.EMISSING, "font %s not usable", dest)
	}
	if registry.Coverage(name).IsEmpty() {
		registry.Remove(name)
		return core.Error(core.EINVALID, "font %s has no usable character map", dest)
	}
	pterm.Success.Printfln("font %s added with top priority", name)
	return nil
}

func printFontList(registry *fontregistry.Registry) {
	data := pterm.TableData{{"#", "Font", "", "Characters", "Files"}}
	for _, e := range registry.Entries() {
		rank, mark := "-", "✗"
		if e.Rank > 0 {
			rank = strconv.Itoa(e.Rank)
		}
		if e.Available {
			mark = "✓"
		}
		files := make([]string, len(e.Resources))
		for i, r := range e.Resources {
			files[i] = r.String()
		}
		data = append(data, []string{rank, e.Name, mark, strconv.Itoa(e.Coverage), strings.Join(files, " ")})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
	pterm.Info.Printfln("%d of %d fonts available", len(registry.Available()), len(registry.PriorityList()))
}

func printUsageReport(usage *fontregistry.Usage, priority []string) {
	pterm.DefaultSection.Println("Font usage")
	if stats := usage.Statistics(priority); len(stats) > 0 {
		data := pterm.TableData{{"Font", "Characters", "Share", "Priority"}}
		for _, s := range stats {
			rank := "unlisted"
			if s.Rank > 0 {
				rank = strconv.Itoa(s.Rank)
			}
			data = append(data, []string{s.Font, strconv.Itoa(s.Count), fmt.Sprintf("%.1f%%", s.Percent), rank})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			tracer().Errorf(err.Error())
		}
	}
	if unsupported := usage.UnsupportedReport(); len(unsupported) > 0 {
		pterm.DefaultSection.Println("Unsupported characters")
		for _, ci := range unsupported {
			pterm.Error.Println(ci.String())
		}
	} else {
		pterm.Success.Println("All characters are supported.")
	}
	pterm.DefaultSection.Println("Supported characters by font")
	for _, g := range usage.SupportedReport(priority) {
		pterm.Info.Printfln("%s (%d characters)", g.Font, g.Count)
		for _, c := range g.Categories {
			chars := make([]string, 0, len(c.Chars))
			for _, ci := range c.Chars {
				chars = append(chars, ci.String())
			}
			if c.More > 0 {
				chars = append(chars, fmt.Sprintf("… %d more", c.More))
			}
			pterm.Printfln("  [%s] %s", fontregistry.CategoryName(c.Category), strings.Join(chars, ", "))
		}
	}
}
