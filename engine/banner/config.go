package banner

import (
	"io"
	"os"

	"github.com/npillmayer/banner/core"
	"github.com/npillmayer/banner/core/adjust"
	"github.com/npillmayer/banner/core/font/fontregistry"
	"github.com/npillmayer/banner/core/percent"
	"github.com/npillmayer/banner/engine/render"
	"github.com/npillmayer/banner/engine/text"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of a banner generator.
type Config struct {
	Width          int               `yaml:"width"`
	Height         int               `yaml:"height"`
	AvatarDiameter int               `yaml:"avatar_diameter"`
	Catalog        string            `yaml:"catalog"`     // font catalogue file, empty for the built-in one
	Theme          string            `yaml:"theme"`       // used if a request names no theme
	Overlay        *percent.Percent  `yaml:"overlay"`     // overrides the theme's overlay opacity
	Adjustments    []adjust.RuleSpec `yaml:"adjustments"` // in addition to the default rules
}

// DefaultConfig returns the settings for 2880 × 1094 pixel banners.
func DefaultConfig() Config {
	return Config{
		Width:          2880,
		Height:         1094,
		AvatarDiameter: 480,
		Theme:          DefaultTheme,
	}
}

// ReadConfig decodes a YAML configuration. Missing settings keep their
// default values.
func ReadConfig(r io.Reader) (Config, error) {
	conf := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&conf); err != nil && err != io.EOF {
		return conf, core.WrapError(err, core.EINVALID, "banner configuration cannot be read")
	}
	if conf.Width <= 0 || conf.Height <= 0 || conf.AvatarDiameter <= 0 {
		return conf, core.Error(core.EINVALID, "banner dimensions must be positive, have %dx%d/%d",
			conf.Width, conf.Height, conf.AvatarDiameter)
	}
	return conf, nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), core.WrapError(err, core.EMISSING, "configuration %s not found", path)
		}
		return DefaultConfig(), core.WrapError(err, core.EINVALID, "configuration %s cannot be opened", path)
	}
	defer f.Close()
	return ReadConfig(f)
}

// Rules returns the default adjustment rules extended by the configured
// ones.
func (conf Config) Rules() (*adjust.RuleSet, error) {
	rules := adjust.DefaultRuleSet()
	if err := rules.Load(conf.Adjustments); err != nil {
		return nil, err
	}
	return rules, nil
}

// Registry creates a font registry from the configured catalogue.
func (conf Config) Registry() (*fontregistry.Registry, error) {
	cat := fontregistry.DefaultCatalog()
	if conf.Catalog != "" {
		var err error
		if cat, err = fontregistry.LoadCatalogFile(conf.Catalog); err != nil {
			return nil, err
		}
	}
	return fontregistry.NewRegistryFromCatalog(cat), nil
}

// NewGeneratorFromConfig sets up the font registry, the adjustment rules and
// a renderer, and creates a generator on top of them.
func NewGeneratorFromConfig(conf Config) (*Generator, error) {
	registry, err := conf.Registry()
	if err != nil {
		return nil, err
	}
	rules, err := conf.Rules()
	if err != nil {
		return nil, err
	}
	renderer := render.NewRenderer(text.NewSegmenter(registry, rules))
	return NewGenerator(conf, renderer), nil
}
