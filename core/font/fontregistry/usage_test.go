package fontregistry

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageRecords(t *testing.T) {
	u := NewUsage()
	u.RecordSupported('b', "f1")
	u.RecordSupported('a', "f2")
	u.RecordSupported('a', "f1")
	u.RecordUnsupported('中')
	u.RecordUnsupported('中')
	assert.Equal(t, []rune{'a', 'b'}, u.Supported())
	assert.Equal(t, []rune{'中'}, u.Unsupported())
	f, ok := u.FontFor('a')
	assert.True(t, ok)
	assert.Equal(t, "f2", f)
	assert.True(t, u.IsUnsupported('中'))
	u.Clear()
	assert.Empty(t, u.Supported())
	assert.Empty(t, u.Unsupported())
}

func TestNilUsage(t *testing.T) {
	var u *Usage
	u.RecordSupported('a', "f")
	u.RecordUnsupported('b')
	u.Merge(NewUsage())
	u.Clear()
	_, ok := u.FontFor('a')
	assert.False(t, ok)
	assert.Nil(t, u.Supported())
	assert.Empty(t, u.Statistics(nil))
}

func TestUsageMerge(t *testing.T) {
	u1, u2 := NewUsage(), NewUsage()
	u1.RecordSupported('a', "f1")
	u2.RecordSupported('a', "f2")
	u2.RecordSupported('b', "f2")
	u2.RecordUnsupported('x')
	u1.Merge(u2)
	f, _ := u1.FontFor('a')
	assert.Equal(t, "f1", f)
	f, _ = u1.FontFor('b')
	assert.Equal(t, "f2", f)
	assert.Equal(t, []rune{'x'}, u1.Unsupported())
}

func TestStatistics(t *testing.T) {
	u := NewUsage()
	for _, r := range "abc" {
		u.RecordSupported(r, "latin")
	}
	u.RecordSupported('★', "symbols")
	stats := u.Statistics([]string{"symbols", "latin"})
	require.Len(t, stats, 2)
	assert.Equal(t, FontStat{Font: "latin", Count: 3, Percent: 75, Rank: 2}, stats[0])
	assert.Equal(t, FontStat{Font: "symbols", Count: 1, Percent: 25, Rank: 1}, stats[1])
	stats = u.Statistics(nil)
	assert.Equal(t, 0, stats[0].Rank)
}

func TestSupportedReport(t *testing.T) {
	u := NewUsage()
	for r := 'A'; r <= 'Z'; r++ {
		u.RecordSupported(r, "latin")
	}
	u.RecordSupported('a', "latin")
	u.RecordSupported('★', "symbols")
	u.RecordSupported('€', "unlisted")
	groups := u.SupportedReport([]string{"symbols", "latin"})
	require.Len(t, groups, 3)
	assert.Equal(t, "symbols", groups[0].Font)
	assert.Equal(t, "latin", groups[1].Font)
	assert.Equal(t, "unlisted", groups[2].Font)
	latin := groups[1]
	assert.Equal(t, 27, latin.Count)
	require.Len(t, latin.Categories, 2)
	assert.Equal(t, "Lu", latin.Categories[0].Category)
	assert.Len(t, latin.Categories[0].Chars, MaxCharsPerCategory)
	assert.Equal(t, 6, latin.Categories[0].More)
	assert.Equal(t, "LATIN CAPITAL LETTER A", latin.Categories[0].Chars[0].Name)
	assert.Equal(t, "Ll", latin.Categories[1].Category)
}

func TestWriteReport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.fonts")
	defer teardown()
	//
	var b strings.Builder
	require.NoError(t, NewUsage().WriteReport(&b, nil))
	assert.Equal(t, "All characters are supported.\n", b.String())
	//
	u := NewUsage()
	u.RecordSupported('A', "latin")
	u.RecordUnsupported('\U0001F600')
	b.Reset()
	require.NoError(t, u.WriteReport(&b, []string{"latin"}))
	report := b.String()
	t.Log(report)
	assert.Contains(t, report, "1 unsupported characters")
	assert.Contains(t, report, "GRINNING FACE")
	assert.Contains(t, report, "[uppercase letter] 'A' (LATIN CAPITAL LETTER A) [U+0041]")
	assert.Contains(t, report, "latin: 1 characters (100.0%), priority 1")
	assert.Equal(t, "other symbol", CategoryName("So"))
	assert.Equal(t, "unknown (Xx)", CategoryName("Xx"))
}
