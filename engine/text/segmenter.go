package text

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/banner/core/adjust"
	"github.com/npillmayer/banner/core/font/fontregistry"
	"github.com/npillmayer/uax/grapheme"
)

// Segment is a run of text drawn with a single font at a single size.
type Segment struct {
	Text       string            // one or more complete grapheme clusters
	Font       string            // name of the font in the registry, may be ""
	Size       int               // font size after adjustment, in pixels
	Fallback   bool              // font is not the preferred font
	Adjustment adjust.Adjustment // geometric correction, identity if !Adjusted
	Adjusted   bool              // an adjustment rule applies to the segment
}

func (s Segment) String() string {
	adj := "-"
	if s.Adjusted {
		adj = s.Adjustment.String()
	}
	fb := ""
	if s.Fallback {
		fb = "*"
	}
	return fmt.Sprintf("%q@%s%s/%dpx %s", s.Text, s.Font, fb, s.Size, adj)
}

// Segmenter splits text into segments using the fonts of a registry and a
// set of adjustment rules.
type Segmenter struct {
	registry *fontregistry.Registry
	rules    *adjust.RuleSet
}

// NewSegmenter creates a segmenter. rules may be nil, in which case no
// character is adjusted.
func NewSegmenter(registry *fontregistry.Registry, rules *adjust.RuleSet) *Segmenter {
	if registry == nil {
		registry = fontregistry.NewRegistry()
	}
	return &Segmenter{registry: registry, rules: rules}
}

// Registry returns the font registry of the segmenter.
func (seg *Segmenter) Registry() *fontregistry.Registry {
	return seg.registry
}

// Rules returns the adjustment rules of the segmenter.
func (seg *Segmenter) Rules() *adjust.RuleSet {
	return seg.rules
}

var graphemeSetup sync.Once

// Clusters normalizes a text and breaks it into extended grapheme clusters.
func Clusters(text string) []string {
	text = Normalize(text)
	if text == "" {
		return nil
	}
	graphemeSetup.Do(func() { grapheme.SetupGraphemeClasses() })
	gstr := grapheme.StringFromString(text)
	clusters := make([]string, gstr.Len())
	for i := range clusters {
		clusters[i] = gstr.Nth(i)
	}
	return clusters
}

// Segment splits text into segments for a nominal font size. If preferred
// names an available font, it is used wherever it covers the text.
//
// The concatenated texts of the segments equal Normalize(text). A new Usage
// records the fonts chosen for the code points of text.
func (seg *Segmenter) Segment(text string, size int, preferred string) ([]Segment, *fontregistry.Usage) {
	usage := fontregistry.NewUsage()
	clusters := Clusters(text)
	var segments []Segment
	for i := 0; i < len(clusters); {
		cluster := clusters[i]
		adj, adjusted := seg.rules.LookupCluster(cluster)
		name, fallback, covered := seg.registry.FontForCluster(cluster, preferred, usage)
		if !covered {
			tracer().Infof("no font covers %q, using %q", cluster, name)
		}
		var run strings.Builder
		run.WriteString(cluster)
		i++
		for ; i < len(clusters); i++ {
			next := clusters[i]
			nadj, nadjusted := seg.rules.LookupCluster(next)
			if nadjusted != adjusted || nadj != adj {
				break
			}
			if !seg.registry.Supports(name, next, usage) {
				break
			}
			run.WriteString(next)
		}
		s := Segment{
			Text:       run.String(),
			Font:       name,
			Size:       size,
			Fallback:   fallback,
			Adjustment: adjust.Identity,
		}
		if adjusted {
			s.Adjustment = adj
			s.Adjusted = true
			s.Size = adj.ApplyToSize(size)
		}
		tracer().Debugf("segment %s", s)
		segments = append(segments, s)
	}
	return segments, usage
}
