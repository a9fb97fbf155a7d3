package fontregistry

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/banner/core"
	"github.com/npillmayer/banner/core/adjust"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.fonts")
	defer teardown()
	//
	cat := DefaultCatalog()
	require.Len(t, cat.Fonts, 77)
	assert.Equal(t, "noto_sans_kr_bold", cat.Fonts[0].Name)
	require.NotNil(t, cat.Fonts[0].Index)
	assert.Equal(t, 0, *cat.Fonts[0].Index)
	assert.Equal(t, "font_awesome", cat.Fonts[76].Name)
	assert.Nil(t, cat.Fonts[76].Index)
	//
	reg := NewRegistryFromCatalog(cat)
	assert.Len(t, reg.PriorityList(), 77, "missing fonts stay in the priority list")
}

func TestCatalogFromYAML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.fonts")
	defer teardown()
	//
	files := writeFixtures(t)
	yml := fmt.Sprintf(`
fonts:
  - name: Go Mono
    path: %s
    unicode_range: U+0041-005A, U+0061
  - name: missing
    path: %s
  - name: regular
    path: %s
  - name: bold
    path: %s
    unlisted: true
`, files.mono, filepath.Join(filepath.Dir(files.mono), "Missing-Font-4711.ttf"),
		files.regular, files.bold)
	cat, err := ReadCatalog(strings.NewReader(yml))
	require.NoError(t, err)
	reg := NewRegistryFromCatalog(cat)
	assert.Equal(t, []string{"go_mono", "missing", "regular"}, reg.PriorityList())
	assert.Equal(t, []string{"bold"}, reg.Unlisted())
	assert.False(t, reg.IsAvailable("missing"))
	//
	assert.True(t, reg.Supports("go_mono", "A", nil))
	assert.True(t, reg.Supports("go_mono", "a", nil))
	assert.False(t, reg.Supports("go_mono", "b", nil))
	assert.Equal(t, 27, reg.Coverage("go_mono").Len())
}

func TestCatalogErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.fonts")
	defer teardown()
	//
	for _, yml := range []string{
		"fonts:\n  - path: /x.ttf\n",
		"fonts:\n  - name: x\n    path: /x.ttc\n    index: -1\n",
		"fonts:\n  - name: x\n    unknown_key: 1\n",
		"fonts:\n  - name: x\n    unicode_range: U+0050-0040\n",
		"fonts: [",
	} {
		_, err := ReadCatalog(strings.NewReader(yml))
		assert.Equal(t, core.EINVALID, core.Code(err), yml)
	}
	cat, err := ReadCatalog(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cat.Fonts)
	//
	_, err = LoadCatalogFile(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestParseUnicodeRange(t *testing.T) {
	ranges, err := ParseUnicodeRange("U+0000-00FF, U+20AC,0x2000-0x206F")
	require.NoError(t, err)
	assert.Equal(t, []adjust.Range{{Lo: 0, Hi: 0xFF}, {Lo: 0x20AC, Hi: 0x20AC}, {Lo: 0x2000, Hi: 0x206F}}, ranges)
	ranges, err = ParseUnicodeRange("")
	require.NoError(t, err)
	assert.Empty(t, ranges)
	_, err = ParseUnicodeRange("U+XYZ")
	assert.Error(t, err)
}
