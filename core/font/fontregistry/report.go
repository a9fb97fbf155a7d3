package fontregistry

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/npillmayer/banner/core/adjust"
	"golang.org/x/text/unicode/runenames"
)

// CharInfo describes a code point for reports.
type CharInfo struct {
	Rune     rune
	Name     string // Unicode character name
	Category string // two-letter general category
}

func charInfo(r rune) CharInfo {
	return CharInfo{Rune: r, Name: runenames.Name(r), Category: adjust.Category(r)}
}

func (ci CharInfo) String() string {
	if ci.Name == "" {
		return fmt.Sprintf("'%c' [%U]", ci.Rune, ci.Rune)
	}
	return fmt.Sprintf("'%c' (%s) [%U]", ci.Rune, ci.Name, ci.Rune)
}

// CategoryGroup lists code points of a Unicode category rendered with a font.
// At most MaxCharsPerCategory are listed, More counts the rest.
type CategoryGroup struct {
	Category string
	Chars    []CharInfo
	More     int
}

// FontGroup lists the code points rendered with a font, by category.
type FontGroup struct {
	Font       string
	Count      int
	Categories []CategoryGroup
}

// FontStat is a line of the font usage statistics.
type FontStat struct {
	Font    string
	Count   int
	Percent float64
	Rank    int // 1-based position in the priority list, 0 if unlisted
}

// MaxCharsPerCategory limits the number of code points listed per category
// in a FontGroup.
const MaxCharsPerCategory = 20

// UnsupportedReport describes the code points no font could render, in
// ascending order.
func (u *Usage) UnsupportedReport() []CharInfo {
	var infos []CharInfo
	for _, r := range u.Unsupported() {
		infos = append(infos, charInfo(r))
	}
	return infos
}

// SupportedReport groups the supported code points by font, fonts ordered
// by priority, unlisted fonts last.
func (u *Usage) SupportedReport(priority []string) []FontGroup {
	byFont := make(map[string][]rune)
	for _, r := range u.Supported() {
		f, _ := u.FontFor(r)
		byFont[f] = append(byFont[f], r)
	}
	var groups []FontGroup
	for _, f := range orderFonts(byFont, priority) {
		runes := byFont[f]
		group := FontGroup{Font: f, Count: len(runes)}
		index := make(map[string]int)
		for _, r := range runes { // ascending
			info := charInfo(r)
			i, ok := index[info.Category]
			if !ok {
				i = len(group.Categories)
				index[info.Category] = i
				group.Categories = append(group.Categories, CategoryGroup{Category: info.Category})
			}
			if len(group.Categories[i].Chars) < MaxCharsPerCategory {
				group.Categories[i].Chars = append(group.Categories[i].Chars, info)
			} else {
				group.Categories[i].More++
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// Statistics counts the code points per font, most used font first.
func (u *Usage) Statistics(priority []string) []FontStat {
	supported := u.Supported()
	if len(supported) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, r := range supported {
		f, _ := u.FontFor(r)
		counts[f]++
	}
	rank := make(map[string]int, len(priority))
	for i, f := range priority {
		rank[f] = i + 1
	}
	stats := make([]FontStat, 0, len(counts))
	for f, n := range counts {
		stats = append(stats, FontStat{
			Font:    f,
			Count:   n,
			Percent: float64(n) * 100 / float64(len(supported)),
			Rank:    rank[f],
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Font < stats[j].Font
	})
	return stats
}

func orderFonts(byFont map[string][]rune, priority []string) []string {
	var fonts []string
	seen := make(map[string]bool)
	for _, f := range priority {
		if _, ok := byFont[f]; ok && !seen[f] {
			fonts = append(fonts, f)
			seen[f] = true
		}
	}
	var rest []string
	for f := range byFont {
		if !seen[f] {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	return append(fonts, rest...)
}

// CategoryName returns a readable name for a two-letter Unicode category.
func CategoryName(cat string) string {
	if name, ok := categoryNames[cat]; ok {
		return name
	}
	return "unknown (" + cat + ")"
}

var categoryNames = map[string]string{
	"Lu": "uppercase letter", "Ll": "lowercase letter", "Lt": "titlecase letter",
	"Lm": "modifier letter", "Lo": "other letter",
	"Mn": "nonspacing mark", "Mc": "spacing mark", "Me": "enclosing mark",
	"Nd": "decimal number", "Nl": "letter number", "No": "other number",
	"Pc": "connector punctuation", "Pd": "dash punctuation", "Ps": "open punctuation",
	"Pe": "close punctuation", "Pi": "initial quote", "Pf": "final quote",
	"Po": "other punctuation",
	"Sm": "math symbol", "Sc": "currency symbol", "Sk": "modifier symbol", "So": "other symbol",
	"Zs": "space separator", "Zl": "line separator", "Zp": "paragraph separator",
	"Cc": "control", "Cf": "format", "Cs": "surrogate", "Co": "private use", "Cn": "unassigned",
}

// WriteReport writes a plain text report of u: unsupported code points,
// supported code points by font and the usage statistics.
func (u *Usage) WriteReport(w io.Writer, priority []string) error {
	var b strings.Builder
	unsupported := u.UnsupportedReport()
	if len(unsupported) == 0 {
		b.WriteString("All characters are supported.\n")
	} else {
		fmt.Fprintf(&b, "%d unsupported characters:\n", len(unsupported))
		for _, ci := range unsupported {
			fmt.Fprintf(&b, "  - %s\n", ci)
		}
	}
	groups := u.SupportedReport(priority)
	if len(groups) > 0 {
		fmt.Fprintf(&b, "\n%d supported characters by font:\n", len(u.Supported()))
	}
	for _, g := range groups {
		fmt.Fprintf(&b, "%s (%d characters):\n", g.Font, g.Count)
		for _, c := range g.Categories {
			chars := make([]string, 0, len(c.Chars)+1)
			for _, ci := range c.Chars {
				chars = append(chars, ci.String())
			}
			if c.More > 0 {
				chars = append(chars, fmt.Sprintf("… %d more", c.More))
			}
			fmt.Fprintf(&b, "  [%s] %s\n", CategoryName(c.Category), strings.Join(chars, ", "))
		}
	}
	if stats := u.Statistics(priority); len(stats) > 0 {
		b.WriteString("\nFont usage:\n")
		for i, s := range stats {
			rank := "unlisted"
			if s.Rank > 0 {
				rank = fmt.Sprintf("priority %d", s.Rank)
			}
			fmt.Fprintf(&b, "%2d. %s: %d characters (%.1f%%), %s\n", i+1, s.Font, s.Count, s.Percent, rank)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
