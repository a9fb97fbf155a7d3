package render

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/banner/backend/gfx"
	"github.com/npillmayer/banner/core"
	"github.com/npillmayer/banner/core/adjust"
	"github.com/npillmayer/banner/core/font"
	"github.com/npillmayer/banner/core/font/fontregistry"
	"github.com/npillmayer/banner/engine/text"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

type drawCall struct {
	text  string
	x, y  int
	color color.Color
}

// recorder is a canvas which remembers the strings drawn onto it.
type recorder struct {
	*gfx.Canvas
	calls []drawCall
}

func (r *recorder) DrawString(face xfont.Face, txt string, x, y int, c color.Color) {
	r.calls = append(r.calls, drawCall{text: txt, x: x, y: y, color: c})
	r.Canvas.DrawString(face, txt, x, y, c)
}

func (r *recorder) DrawShadow(face xfont.Face, txt string, x, y int, c color.Color) {
	r.calls = append(r.calls, drawCall{text: txt, x: x, y: y, color: c})
	r.Canvas.DrawShadow(face, txt, x, y, c)
}

func newRecorder() *recorder {
	return &recorder{Canvas: gfx.NewCanvas(400, 200)}
}

// testRegistry has "latin", restricted to ASCII, and "mono".
func testRegistry(t *testing.T) *fontregistry.Registry {
	dir := t.TempDir()
	regular := filepath.Join(dir, "Go-Regular.ttf")
	mono := filepath.Join(dir, "Go-Mono.ttf")
	require.NoError(t, os.WriteFile(regular, goregular.TTF, 0644))
	require.NoError(t, os.WriteFile(mono, gomono.TTF, 0644))
	reg := fontregistry.NewRegistry()
	ascii := []adjust.Range{{Lo: 0, Hi: 0x7F}}
	require.True(t, reg.AddRestricted("latin", -1, ascii, font.SingleFace(regular)))
	require.True(t, reg.Append("mono", font.SingleFace(mono)))
	return reg
}

func inkBottom(t *testing.T, reg *fontregistry.Registry, name string, size int) int {
	tc, err := reg.TypeCase(name, size)
	require.NoError(t, err)
	defer tc.Close()
	return gfx.InkBounds(tc.Face(), BaselineProbe).Max.Y
}

func TestEmptyText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.text")
	defer teardown()
	//
	r := NewRenderer(text.NewSegmenter(testRegistry(t), nil))
	rec := newRecorder()
	w, err := r.Width(rec, "", 40, "")
	require.NoError(t, err)
	assert.Equal(t, 0, w)
	w, usage, err := r.Render(rec, "", 10, 10, Options{Size: 40})
	require.NoError(t, err)
	assert.Equal(t, 0, w)
	assert.Empty(t, usage.Supported())
	assert.Empty(t, rec.calls)
}

func TestRenderSegments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.text")
	defer teardown()
	//
	reg := testRegistry(t)
	r := NewRenderer(text.NewSegmenter(reg, nil))
	rec := newRecorder()
	w, usage, err := r.Render(rec, "aé", 10, 20, Options{Size: 40})
	require.NoError(t, err)
	require.Len(t, rec.calls, 2)
	assert.Equal(t, "a", rec.calls[0].text)
	assert.Equal(t, color.White, rec.calls[0].color, "white is the default color")
	assert.Equal(t, 10, rec.calls[0].x)
	assert.Equal(t, 20, rec.calls[0].y)
	//
	latin, err := reg.TypeCase("latin", 40)
	require.NoError(t, err)
	defer latin.Close()
	adv := gfx.Advance(latin.Face(), "a")
	assert.Equal(t, 10+adv, rec.calls[1].x)
	// baseline of mono aligned to the reference font
	ref := inkBottom(t, reg, "latin", 40)
	assert.Equal(t, 20+ref-inkBottom(t, reg, "mono", 40), rec.calls[1].y)
	//
	width, err := r.Width(rec, "aé", 40, "")
	require.NoError(t, err)
	assert.Equal(t, width, w)
	f, _ := usage.FontFor('é')
	assert.Equal(t, "mono", f)
}

func TestSpacesAtSegmentEnds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.text")
	defer teardown()
	//
	reg := testRegistry(t)
	r := NewRenderer(text.NewSegmenter(reg, nil))
	rec := newRecorder()
	latin, err := reg.TypeCase("latin", 40)
	require.NoError(t, err)
	defer latin.Close()
	mono, err := reg.TypeCase("mono", 40)
	require.NoError(t, err)
	defer mono.Close()
	//
	spaced, err := r.Width(rec, "a é", 40, "")
	require.NoError(t, err)
	tight, err := r.Width(rec, "aé", 40, "")
	require.NoError(t, err)
	assert.Greater(t, spaced, tight, "space before a font change must not vanish")
	assert.Equal(t, gfx.Advance(latin.Face(), "a ")+gfx.Advance(mono.Face(), "é"), spaced)
	//
	_, _, err = r.Render(rec, "a é", 0, 0, Options{Size: 40})
	require.NoError(t, err)
	require.Len(t, rec.calls, 2)
	assert.Equal(t, "a ", rec.calls[0].text)
	assert.Equal(t, gfx.Advance(latin.Face(), "a "), rec.calls[1].x)
	assert.Greater(t, rec.calls[1].x, gfx.InkBounds(latin.Face(), "a").Max.X)
}

func TestRenderShadow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.text")
	defer teardown()
	//
	r := NewRenderer(text.NewSegmenter(testRegistry(t), nil))
	rec := newRecorder()
	red := color.RGBA{R: 255, A: 255}
	_, _, err := r.Render(rec, "Hi", 0, 0, Options{Size: 30, Color: red, Shadow: true, ShadowOffset: 3})
	require.NoError(t, err)
	require.Len(t, rec.calls, 2)
	assert.Equal(t, drawCall{text: "Hi", x: 3, y: 3, color: ShadowColor}, rec.calls[0])
	assert.Equal(t, drawCall{text: "Hi", x: 0, y: 0, color: red}, rec.calls[1])
}

func TestRenderAdjusted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.text")
	defer teardown()
	//
	reg := testRegistry(t)
	rules := adjust.NewRuleSet()
	require.NoError(t, rules.AddCharRule('b', adjust.Adjustment{Scale: 1, OffsetY: 10}))
	require.NoError(t, rules.AddCharRule('c', adjust.Adjustment{Scale: 2}))
	r := NewRenderer(text.NewSegmenter(reg, rules))
	rec := newRecorder()
	_, _, err := r.Render(rec, "abc", 0, 50, Options{Size: 40})
	require.NoError(t, err)
	require.Len(t, rec.calls, 3)
	assert.Equal(t, 54, rec.calls[1].y, "offset is 10% of nominal size")
	ref := inkBottom(t, reg, "latin", 40)
	assert.Equal(t, 50+ref-inkBottom(t, reg, "latin", 80), rec.calls[2].y)
	assert.Less(t, rec.calls[2].y, 50)
}

func TestNoFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.text")
	defer teardown()
	//
	r := NewRenderer(nil)
	rec := newRecorder()
	_, usage, err := r.Render(rec, "ab", 0, 0, Options{Size: 20})
	require.Error(t, err)
	assert.Equal(t, core.ENOFONT, core.Code(err))
	assert.Equal(t, []rune{'a', 'b'}, usage.Unsupported())
	_, err = r.Width(rec, "ab", 20, "")
	assert.True(t, core.IsCode(err, core.ENOFONT))
	_, err = r.BottomOffset(rec, 20)
	assert.Error(t, err)
}

func TestUnloadableFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.text")
	defer teardown()
	//
	broken := filepath.Join(t.TempDir(), "broken.ttf")
	require.NoError(t, os.WriteFile(broken, []byte("no font"), 0644))
	reg := fontregistry.NewRegistry()
	require.True(t, reg.Append("broken", font.SingleFace(broken)))
	r := NewRenderer(text.NewSegmenter(reg, nil))
	_, _, err := r.Render(newRecorder(), "a", 0, 0, Options{Size: 20})
	assert.True(t, core.IsCode(err, core.ENOFONT))
}

func TestBottomOffset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.text")
	defer teardown()
	//
	reg := testRegistry(t)
	r := NewRenderer(text.NewSegmenter(reg, nil))
	off, err := r.BottomOffset(newRecorder(), 40)
	require.NoError(t, err)
	assert.Equal(t, inkBottom(t, reg, "latin", 40), off)
}
