package fontregistry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/banner/core"
	"github.com/npillmayer/banner/core/adjust"
	"github.com/npillmayer/banner/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

type fixtures struct {
	regular, bold, mono, broken string
}

func writeFixtures(t *testing.T) fixtures {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0644))
		return path
	}
	return fixtures{
		regular: write("Go-Regular.ttf", goregular.TTF),
		bold:    write("Go-Bold.ttf", gobold.TTF),
		mono:    write("Go-Mono.ttf", gomono.TTF),
		broken:  write("Broken.ttf", []byte("definitely not a font")),
	}
}

type RegistryTestSuite struct {
	suite.Suite
	teardown func()
	files    fixtures
	reg      *Registry
}

func TestRegistry(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) SetupTest() {
	s.teardown = gotestingadapter.QuickConfig(s.T(), "banner.fonts")
	s.files = writeFixtures(s.T())
	s.reg = NewRegistry()
	s.Require().True(s.reg.Append("regular", font.SingleFace(s.files.regular)))
	s.Require().True(s.reg.Append("mono", font.SingleFace(s.files.mono)))
}

func (s *RegistryTestSuite) TearDownTest() {
	s.teardown()
}

func (s *RegistryTestSuite) TestAddPositions() {
	s.True(s.reg.Add("bold", 0, font.SingleFace(s.files.bold)))
	s.Equal([]string{"bold", "regular", "mono"}, s.reg.PriorityList())
	s.reg.Remove("bold")
	s.True(s.reg.Add("bold", 99, font.SingleFace(s.files.bold)))
	s.Equal([]string{"regular", "mono", "bold"}, s.reg.PriorityList())
	// re-adding keeps the position
	s.True(s.reg.Add("bold", 0, font.SingleFace(s.files.bold)))
	s.Equal([]string{"regular", "mono", "bold"}, s.reg.PriorityList())
}

func (s *RegistryTestSuite) TestAddMissing() {
	s.False(s.reg.Add("ghost", 0, font.SingleFace(s.files.regular+".missing")))
	s.False(s.reg.IsAvailable("ghost"))
	s.Equal([]string{"regular", "mono"}, s.reg.PriorityList())
}

func (s *RegistryTestSuite) TestRemove() {
	s.reg.Remove("regular")
	s.reg.Remove("regular") // idempotent
	s.reg.Remove("never-heard-of")
	s.False(s.reg.IsAvailable("regular"))
	s.Equal([]string{"mono"}, s.reg.PriorityList())
	s.True(s.reg.Coverage("regular").IsEmpty())
}

func (s *RegistryTestSuite) TestSetPriority() {
	s.reg.SetPriority("mono", 0)
	s.Equal([]string{"mono", "regular"}, s.reg.PriorityList())
	s.reg.SetPriority("mono", -5)
	s.Equal([]string{"regular", "mono"}, s.reg.PriorityList())
	s.reg.SetPriority("unavailable", 1)
	s.Equal([]string{"regular", "unavailable", "mono"}, s.reg.PriorityList())
	s.False(s.reg.IsAvailable("unavailable"))
	s.Equal([]string{"regular", "mono"}, s.reg.Candidates())
}

func (s *RegistryTestSuite) TestUnlisted() {
	s.True(s.reg.AddUnlisted("bold", font.SingleFace(s.files.bold)))
	s.Equal([]string{"bold"}, s.reg.Unlisted())
	s.Equal([]string{"bold", "mono", "regular"}, s.reg.Available())
	s.Equal([]string{"regular", "mono", "bold"}, s.reg.Candidates())
	entries := s.reg.Entries()
	s.Len(entries, 3)
	s.Equal(0, entries[2].Rank)
	s.True(entries[2].Available)
}

func (s *RegistryTestSuite) TestSupports() {
	usage := NewUsage()
	s.True(s.reg.Supports("regular", "Ay", usage))
	s.False(s.reg.Supports("regular", "A中", usage))
	s.False(s.reg.Supports("ghost", "A", usage))
	f, ok := usage.FontFor('A')
	s.True(ok)
	s.Equal("regular", f)
	s.True(s.reg.Supports("mono", "A", usage))
	f, _ = usage.FontFor('A')
	s.Equal("regular", f, "first font recorded wins")
	s.Empty(usage.Unsupported())
}

func (s *RegistryTestSuite) TestFontForCluster() {
	usage := NewUsage()
	name, fallback, covered := s.reg.FontForCluster("A", "mono", usage)
	s.Equal("mono", name)
	s.False(fallback)
	s.True(covered)
	//
	name, fallback, covered = s.reg.FontForCluster("A", "", usage)
	s.Equal("regular", name)
	s.True(fallback)
	s.True(covered)
	//
	name, fallback, covered = s.reg.FontForCluster("中", "mono", usage)
	s.Equal("regular", name)
	s.True(fallback)
	s.False(covered)
	s.Equal([]rune{'中'}, usage.Unsupported())
}

func (s *RegistryTestSuite) TestPreferredNotCovering() {
	s.True(s.reg.Add("broken", 0, font.SingleFace(s.files.broken)), "unparsable fonts are available")
	s.True(s.reg.Coverage("broken").IsEmpty())
	name, fallback, covered := s.reg.FontForCluster("A", "broken", nil)
	s.Equal("regular", name, "position 2 font expected")
	s.True(fallback)
	s.True(covered)
}

func (s *RegistryTestSuite) TestAddRestricted() {
	lower := []adjust.Range{{Lo: 'a', Hi: 'z'}}
	s.True(s.reg.AddRestricted("regular", 0, lower, font.SingleFace(s.files.regular)))
	s.False(s.reg.AddRestricted("ghost", 0, lower, font.SingleFace(s.files.regular+".missing")))
	s.Equal([]string{"regular", "mono"}, s.reg.PriorityList(), "re-registration keeps the position")
	name, _, _ := s.reg.FontForCluster("A", "", nil)
	s.Equal("mono", name)
	name, _, _ = s.reg.FontForCluster("a", "", nil)
	s.Equal("regular", name)
	s.Equal(26, s.reg.Coverage("regular").Len())
}

func (s *RegistryTestSuite) TestCoverageMonotonic() {
	s.True(s.reg.Supports("mono", "A", nil))
	s.True(s.reg.Supports("regular", "é", nil))
	s.True(s.reg.Add("bold", 0, font.SingleFace(s.files.bold)))
	s.True(s.reg.AddRestricted("ascii", 1, []adjust.Range{{Lo: 0, Hi: 0x7F}}, font.SingleFace(s.files.mono)))
	s.True(s.reg.AddUnlisted("extra", font.SingleFace(s.files.regular)))
	s.reg.SetPriority("mono", 0)
	s.reg.SetPriority("regular", 99)
	s.reg.Remove("bold")
	s.reg.Remove("ghost")
	s.True(s.reg.Supports("mono", "A", nil))
	s.True(s.reg.Supports("regular", "é", nil))
	s.True(s.reg.Supports("mono", "é", nil), "restricting another font on the same file leaves mono alone")
	s.False(s.reg.Supports("ascii", "é", nil))
	s.Equal(s.reg.Coverage("regular").Len(), s.reg.Coverage("extra").Len())
}

func (s *RegistryTestSuite) TestTypeCase() {
	tc, err := s.reg.TypeCase("Regular", 32)
	s.Require().NoError(err)
	s.Equal(32, tc.Size())
	tc.Close()
	_, err = s.reg.TypeCase("ghost", 32)
	s.Equal(core.EMISSING, core.Code(err))
	//
	tc, name, err := s.reg.Resolve(20)
	s.Require().NoError(err)
	s.Equal("regular", name)
	s.Equal(20, tc.Size())
	tc.Close()
}

func (s *RegistryTestSuite) TestTypeCaseFallback() {
	s.True(s.reg.Add("broken", 0, font.SingleFace(s.files.broken)))
	tc, name, err := s.reg.TypeCaseOrFallback("broken", 20)
	s.Require().NoError(err)
	s.Equal("regular", name)
	tc.Close()
	tc, name, err = s.reg.Resolve(20)
	s.Require().NoError(err)
	s.Equal("regular", name, "unloadable font at priority 1 is skipped")
	tc.Close()
	tc, name, err = s.reg.ResolveForCluster("A", 20, "mono", nil)
	s.Require().NoError(err)
	s.Equal("mono", name)
	tc.Close()
}

func TestExhaustion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.fonts")
	defer teardown()
	//
	reg := NewRegistry()
	_, _, err := reg.Resolve(20)
	assert.Equal(t, core.ENOFONT, core.Code(err))
	name, fallback, covered := reg.FontForCluster("A", "", nil)
	assert.Equal(t, "", name)
	assert.True(t, fallback)
	assert.False(t, covered)
	//
	files := writeFixtures(t)
	require.True(t, reg.Append("broken", font.SingleFace(files.broken)))
	_, _, err = reg.Resolve(20)
	assert.Equal(t, core.ENOFONT, core.Code(err))
	reg.SetPriority("ghost", 0)
	name, _, _ = reg.FontForCluster("A", "", nil)
	assert.Equal(t, "broken", name, "first available font expected")
}

func TestMultipleResources(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.fonts")
	defer teardown()
	//
	files := writeFixtures(t)
	reg := NewRegistry()
	require.True(t, reg.Append("combined",
		font.SingleFace(files.broken),
		font.SingleFace(files.regular+".missing"),
		font.SingleFace(files.regular)))
	assert.Len(t, reg.Resources("combined"), 2)
	assert.True(t, reg.Supports("combined", "A", nil))
	tc, err := reg.TypeCase("combined", 12)
	require.NoError(t, err, "second resource is loadable")
	tc.Close()
}

func TestNormalizeFontname(t *testing.T) {
	for in, out := range map[string]string{
		"Noto Sans KR":         "noto_sans_kr",
		" DejaVuSans-Bold.ttf": "dejavusans_bold",
		"noto_emoji":           "noto_emoji",
	} {
		assert.Equal(t, out, NormalizeFontname(in))
	}
}

func TestLogFontList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "banner.fonts")
	defer teardown()
	//
	files := writeFixtures(t)
	reg := NewRegistry()
	reg.Append("regular", font.SingleFace(files.regular))
	reg.SetPriority("missing", 0)
	reg.LogFontList()
	entries := reg.Entries()
	require.Len(t, entries, 2)
	assert.False(t, entries[0].Available)
	assert.True(t, strings.HasPrefix(entries[1].Name, "regular"))
	assert.Greater(t, entries[1].Coverage, 100)
}
