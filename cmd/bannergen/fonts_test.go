package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/npillmayer/banner/core"
	"github.com/npillmayer/banner/core/font/fontregistry"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
)

func TestDemoFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.banner")
	defer teardown()
	//
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	catpath, err := installDemoFonts()
	require.NoError(t, err)
	cat, err := fontregistry.LoadCatalogFile(catpath)
	require.NoError(t, err)
	require.Len(t, cat.Fonts, len(demoFonts))
	reg := fontregistry.NewRegistryFromCatalog(cat)
	assert.Equal(t, []string{"go_regular", "go_bold", "go_italic", "go_mono"}, reg.PriorityList())
	assert.Len(t, reg.Available(), 4)
}

func TestDownloadFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.banner")
	defer teardown()
	//
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/Mono.ttf" {
			w.Write(gomono.TTF)
			return
		}
		w.Write([]byte("not a font"))
	}))
	defer srv.Close()
	reg := fontregistry.NewRegistry()
	require.NoError(t, downloadFont(context.Background(), reg, srv.URL+"/Mono.ttf?v=2"))
	assert.Equal(t, []string{"mono"}, reg.PriorityList())
	assert.True(t, reg.Coverage("mono").Supports('A'))
	//
	err := downloadFont(context.Background(), reg, srv.URL+"/Junk.ttf")
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, []string{"mono"}, reg.PriorityList())
}
