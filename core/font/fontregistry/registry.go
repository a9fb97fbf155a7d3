package fontregistry

import (
	"sort"
	"strings"
	"sync"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/banner/core"
	"github.com/npillmayer/banner/core/adjust"
	"github.com/npillmayer/banner/core/font"
	"github.com/npillmayer/schuko/tracing"
)

// Registry is a type for holding information about the fonts available for
// rendering, and their order of preference.
//
// A Registry is safe for concurrent use. Administrative operations (Add,
// Remove, SetPriority) are expected to happen at startup only.
type Registry struct {
	sync.RWMutex
	priority *arraylist.List // of font names
	fonts    map[string]*entry
}

// entry is an available font.
type entry struct {
	name      string
	resources []font.Resource
	coverage  font.Coverage
	loading   sync.Once
	sfont     *font.ScalableFont
	err       error
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	fr := &Registry{
		priority: arraylist.New(),
		fonts:    make(map[string]*entry),
	}
	return fr
}

// Add registers a font under a name and inserts the name into the priority
// list at position (0 = highest priority). Positions out of range append the
// name. If the name is already listed, its position is kept.
//
// A font may consist of more than one resource, e.g. a face split over
// several files. Resources not present on the host are skipped. If none is
// present, Add returns false and the registry is unchanged.
//
// The coverage of a font is fixed at registration. It changes only if the
// font is registered again.
func (fr *Registry) Add(name string, position int, resources ...font.Resource) bool {
	return fr.register(name, position, true, nil, resources)
}

// AddRestricted registers a font like Add, but limits its use to code points
// within ranges, similar to CSS unicode-range.
func (fr *Registry) AddRestricted(name string, position int, ranges []adjust.Range, resources ...font.Resource) bool {
	return fr.register(name, position, true, ranges, resources)
}

// AddUnlisted registers a font without entering it into the priority list.
// It will be used only if no listed font covers a piece of text.
func (fr *Registry) AddUnlisted(name string, resources ...font.Resource) bool {
	return fr.register(name, -1, false, nil, resources)
}

func (fr *Registry) register(name string, position int, listed bool, ranges []adjust.Range,
	resources []font.Resource) bool {
	//
	name = NormalizeFontname(name)
	e, ok := newEntry(name, resources, ranges)
	if !ok {
		tracer().Infof("font %s not found", name)
		return false
	}
	fr.Lock()
	defer fr.Unlock()
	fr.fonts[name] = e
	if listed && fr.indexOf(name) < 0 {
		fr.insert(name, position)
	}
	tracer().Infof("font %s added at priority %d, covers %d code points",
		name, fr.indexOf(name)+1, e.coverage.Len())
	return true
}

// Append registers a font with lowest priority.
func (fr *Registry) Append(name string, resources ...font.Resource) bool {
	return fr.Add(name, -1, resources...)
}

// newEntry builds the coverage of a font from all its existing resources.
// Resources which cannot be parsed contribute an empty coverage. Non-empty
// ranges limit the coverage to the code points within them.
func newEntry(name string, resources []font.Resource, ranges []adjust.Range) (*entry, bool) {
	e := &entry{name: name}
	for _, res := range resources {
		if !res.Exists() {
			tracer().Debugf("font %s: resource %s does not exist", name, res)
			continue
		}
		e.resources = append(e.resources, res)
		cov, err := font.LoadCoverage(res)
		if err != nil {
			tracer().Errorf("font %s: cannot load character map of %s: %v", name, res, err)
			continue
		}
		e.coverage = e.coverage.Union(cov)
	}
	if len(ranges) > 0 {
		e.coverage = e.coverage.Restrict(func(r rune) bool {
			for _, rg := range ranges {
				if rg.Contains(r) {
					return true
				}
			}
			return false
		})
		tracer().Debugf("font %s restricted to %d code points", name, e.coverage.Len())
	}
	return e, len(e.resources) > 0
}

// Remove deletes a font from the priority list and from the set of available
// fonts. Removing an unknown font is a no-op.
func (fr *Registry) Remove(name string) {
	name = NormalizeFontname(name)
	fr.Lock()
	defer fr.Unlock()
	delete(fr.fonts, name)
	if i := fr.indexOf(name); i >= 0 {
		fr.priority.Remove(i)
	}
	tracer().Infof("font %s removed", name)
}

// SetPriority moves a font name to a position in the priority list. Names not
// yet listed are inserted, whether or not the font is available.
func (fr *Registry) SetPriority(name string, position int) {
	name = NormalizeFontname(name)
	fr.Lock()
	defer fr.Unlock()
	if i := fr.indexOf(name); i >= 0 {
		fr.priority.Remove(i)
	}
	fr.insert(name, position)
	tracer().Infof("font %s now has priority %d", name, fr.indexOf(name)+1)
}

func (fr *Registry) insert(name string, position int) {
	if position >= 0 && position <= fr.priority.Size() {
		fr.priority.Insert(position, name)
		return
	}
	fr.priority.Add(name)
}

func (fr *Registry) indexOf(name string) int {
	for i, v := range fr.priority.Values() {
		if v.(string) == name {
			return i
		}
	}
	return -1
}

// PriorityList returns a copy of the list of font names, highest priority
// first. The list may contain fonts which are not available.
func (fr *Registry) PriorityList() []string {
	fr.RLock()
	defer fr.RUnlock()
	return fr.priorityList()
}

func (fr *Registry) priorityList() []string {
	names := make([]string, 0, fr.priority.Size())
	for _, v := range fr.priority.Values() {
		names = append(names, v.(string))
	}
	return names
}

// IsAvailable is true if a font has been found on the host.
func (fr *Registry) IsAvailable(name string) bool {
	fr.RLock()
	defer fr.RUnlock()
	_, ok := fr.fonts[NormalizeFontname(name)]
	return ok
}

// Available returns the names of all available fonts, sorted by name.
func (fr *Registry) Available() []string {
	fr.RLock()
	defer fr.RUnlock()
	names := make([]string, 0, len(fr.fonts))
	for name := range fr.fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unlisted returns the names of available fonts not in the priority list,
// sorted by name.
func (fr *Registry) Unlisted() []string {
	fr.RLock()
	defer fr.RUnlock()
	return fr.unlisted()
}

func (fr *Registry) unlisted() []string {
	var names []string
	for name := range fr.fonts {
		if fr.indexOf(name) < 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Candidates returns all available fonts in the order they are tried:
// listed fonts by priority, then unlisted fonts.
func (fr *Registry) Candidates() []string {
	fr.RLock()
	defer fr.RUnlock()
	return fr.candidates()
}

func (fr *Registry) candidates() []string {
	var names []string
	for _, name := range fr.priorityList() {
		if _, ok := fr.fonts[name]; ok {
			names = append(names, name)
		}
	}
	return append(names, fr.unlisted()...)
}

// Coverage returns the coverage of a font. Unavailable fonts have an empty
// coverage. Coverages are immutable.
func (fr *Registry) Coverage(name string) font.Coverage {
	fr.RLock()
	defer fr.RUnlock()
	if e, ok := fr.fonts[NormalizeFontname(name)]; ok {
		return e.coverage
	}
	return font.Coverage{}
}

// Resources returns the resources of an available font.
func (fr *Registry) Resources(name string) []font.Resource {
	fr.RLock()
	defer fr.RUnlock()
	if e, ok := fr.fonts[NormalizeFontname(name)]; ok {
		return append([]font.Resource(nil), e.resources...)
	}
	return nil
}

// Supports is true if a font covers every code point of a cluster. Code
// points found to be supported are recorded in usage, if usage is non-nil.
func (fr *Registry) Supports(name string, cluster string, usage *Usage) bool {
	return fr.supports(NormalizeFontname(name), cluster, usage)
}

func (fr *Registry) supports(name string, cluster string, usage *Usage) bool {
	fr.RLock()
	e, ok := fr.fonts[name]
	fr.RUnlock()
	if !ok || !e.coverage.SupportsCluster(cluster) {
		return false
	}
	for _, r := range cluster {
		usage.RecordSupported(r, name)
	}
	return true
}

// FontForCluster selects the font for a grapheme cluster.
//
// A preferred font, if available and covering the cluster, is chosen and is
// not a fallback. Otherwise the first covering font in priority order, then
// the first covering unlisted font is chosen as a fallback. If no font covers
// the cluster, the code points not covered by any font are recorded in usage
// and covered is false; name then is the highest priority available font, or
// the first name in the priority list if no font is available at all, or ""
// for an empty registry.
func (fr *Registry) FontForCluster(cluster, preferred string, usage *Usage) (name string, fallback bool, covered bool) {
	if preferred != "" {
		preferred = NormalizeFontname(preferred)
		if fr.supports(preferred, cluster, usage) {
			return preferred, false, true
		}
	}
	fr.RLock()
	candidates := fr.candidates()
	firstListed := ""
	if fr.priority.Size() > 0 {
		v, _ := fr.priority.Get(0)
		firstListed = v.(string)
	}
	fr.RUnlock()
	for _, c := range candidates {
		if fr.supports(c, cluster, usage) {
			return c, true, true
		}
	}
	fr.recordUncovered(cluster, candidates, usage)
	if len(candidates) > 0 {
		return candidates[0], true, false
	}
	return firstListed, true, false
}

func (fr *Registry) recordUncovered(cluster string, candidates []string, usage *Usage) {
	if usage == nil {
		return
	}
	fr.RLock()
	defer fr.RUnlock()
	for _, r := range cluster {
		found := false
		for _, c := range candidates {
			if e, ok := fr.fonts[c]; ok && e.coverage.Supports(r) {
				found = true
				break
			}
		}
		if !found {
			usage.RecordUnsupported(r)
		}
	}
}

// ScalableFont returns the parsed font for a name. Fonts are parsed on first
// use; the first resource which can be parsed is used. Parse errors are
// permanent for a font.
func (fr *Registry) ScalableFont(name string) (*font.ScalableFont, error) {
	name = NormalizeFontname(name)
	fr.RLock()
	e, ok := fr.fonts[name]
	fr.RUnlock()
	if !ok {
		return nil, core.Error(core.EMISSING, "font %s not available", name)
	}
	e.loading.Do(func() {
		for _, res := range e.resources {
			if e.sfont, e.err = font.LoadScalableFont(name, res); e.err == nil {
				tracer().Debugf("font %s loaded from %s", name, res)
				return
			}
			tracer().Errorf("font %s: %v", name, e.err)
		}
		if e.err == nil {
			e.err = core.Error(core.EMISSING, "font %s has no resources", name)
		}
	})
	return e.sfont, e.err
}

// TypeCase returns a font at a pixel size. Typecases are not cached, as they
// must not be shared between goroutines.
func (fr *Registry) TypeCase(name string, size int) (*font.TypeCase, error) {
	tracer().Debugf("registry searches for font %s at %dpx", name, size)
	f, err := fr.ScalableFont(name)
	if err != nil {
		return nil, err
	}
	return f.PrepareCase(size)
}

// TypeCaseOrFallback returns a typecase for a font, or, if that font cannot
// be loaded, for the next loadable font in the order of Candidates.
// The name of the font actually used is returned as well. If no font can be
// loaded, an error with code ENOFONT is returned.
func (fr *Registry) TypeCaseOrFallback(name string, size int) (*font.TypeCase, string, error) {
	if name != "" {
		if tc, err := fr.TypeCase(name, size); err == nil {
			return tc, NormalizeFontname(name), nil
		}
	}
	name = NormalizeFontname(name)
	for _, c := range fr.Candidates() {
		if c == name {
			continue
		}
		if tc, err := fr.TypeCase(c, size); err == nil {
			tracer().Infof("font %s not loadable, falling back to %s", name, c)
			return tc, c, nil
		}
	}
	return nil, "", core.Error(core.ENOFONT, "no font can be loaded at %dpx", size)
}

// Resolve returns the first loadable font in the order of Candidates.
func (fr *Registry) Resolve(size int) (*font.TypeCase, string, error) {
	return fr.TypeCaseOrFallback("", size)
}

// ResolveForCluster selects a font for a cluster with FontForCluster and
// loads it at size, falling back as TypeCaseOrFallback does.
func (fr *Registry) ResolveForCluster(cluster string, size int, preferred string, usage *Usage) (*font.TypeCase, string, error) {
	name, _, _ := fr.FontForCluster(cluster, preferred, usage)
	return fr.TypeCaseOrFallback(name, size)
}

// --- Listing ---------------------------------------------------------------

// EntryInfo describes a font for listings.
type EntryInfo struct {
	Name      string
	Rank      int // 1-based position in the priority list, 0 if unlisted
	Available bool
	Resources []font.Resource
	Coverage  int // number of code points covered
}

// Entries lists all fonts known to the registry: the priority list first,
// then unlisted available fonts.
func (fr *Registry) Entries() []EntryInfo {
	fr.RLock()
	defer fr.RUnlock()
	var infos []EntryInfo
	for i, name := range fr.priorityList() {
		info := EntryInfo{Name: name, Rank: i + 1}
		if e, ok := fr.fonts[name]; ok {
			info.Available = true
			info.Resources = e.resources
			info.Coverage = e.coverage.Len()
		}
		infos = append(infos, info)
	}
	for _, name := range fr.unlisted() {
		e := fr.fonts[name]
		infos = append(infos, EntryInfo{
			Name:      name,
			Available: true,
			Resources: e.resources,
			Coverage:  e.coverage.Len(),
		})
	}
	return infos
}

// LogFontList is a helper function to dump the list of known fonts in a
// registry to the trace (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for _, info := range fr.Entries() {
		mark := "✗"
		if info.Available {
			mark = "✓"
		}
		tracer().Infof("%2d. %s %s (%d code points)", info.Rank, mark, info.Name, info.Coverage)
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// NormalizeFontname turns a font name or a font file name into a registry
// key: lower case, words separated by underscores, no file extension.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ToLower(fname)
	for _, ext := range []string{".ttf", ".otf", ".ttc", ".otc"} {
		fname = strings.TrimSuffix(fname, ext)
	}
	fname = strings.NewReplacer(" ", "_", "-", "_").Replace(fname)
	return fname
}
