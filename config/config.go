// Package config holds everything that can be set in the loglens
// configuration file: the structural log format coloring, the token
// highlight table, the filter and search settings, and the display
// styles.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"github.com/loglens/loglens/internal/util"
)

var homedirFunc = util.Homedir

// GroupColor is the coloring applied to one capture group of the
// structural format pattern. When UseOriginalFg is set, the text
// keeps the color it had before the format stage instead of Fg.
type GroupColor struct {
	Bg            Color `json:"Bg" yaml:"Bg"`
	Fg            Color `json:"Fg" yaml:"Fg"`
	UseOriginalFg bool  `json:"UseOriginalFg" yaml:"UseOriginalFg"`
}

// FormatConfig describes the structural-format coloring stage: a
// whole-line regular expression and one color entry per capture
// group. Note that text not covered by any capture group is dropped
// by the format stage, so the pattern's groups should jointly cover
// the full line.
type FormatConfig struct {
	Pattern string       `json:"Pattern" yaml:"Pattern"`
	Groups  []GroupColor `json:"Groups" yaml:"Groups"`
}

// TokenColor is one entry of the token highlight table.
type TokenColor struct {
	Token string `json:"Token" yaml:"Token"`
	Color Color  `json:"Color" yaml:"Color"`
}

// FilterConfig describes the line filter. In extended mode the term
// may contain either "&&" (all sub-terms must be present) or "||"
// (at least one must be present), but not both.
type FilterConfig struct {
	Term      string `json:"Term" yaml:"Term"`
	MatchCase bool   `json:"MatchCase" yaml:"MatchCase"`
	WholeWord bool   `json:"WholeWord" yaml:"WholeWord"`
	Negate    bool   `json:"Negate" yaml:"Negate"`
	Extended  bool   `json:"Extended" yaml:"Extended"`
}

// SearchConfig describes the live search.
type SearchConfig struct {
	Term      string `json:"Term" yaml:"Term"`
	MatchCase bool   `json:"MatchCase" yaml:"MatchCase"`
	WholeWord bool   `json:"WholeWord" yaml:"WholeWord"`
}

// Config holds all the data that can be configured in the external
// configuration file. It is read-only for the duration of a
// recompute.
type Config struct {
	Format FormatConfig `json:"Format" yaml:"Format"`
	Tokens []TokenColor `json:"Tokens" yaml:"Tokens"`
	Filter FilterConfig `json:"Filter" yaml:"Filter"`
	Search SearchConfig `json:"Search" yaml:"Search"`
	Style  StyleSet     `json:"Style" yaml:"Style"`
}

// Init initializes the Config with default values.
func (c *Config) Init() error {
	*c = Config{}
	c.Style.Init()
	return nil
}

// Clone returns a deep copy of the Config. The recompute driver keeps
// a clone of the last applied configuration so that later in-place
// edits can be detected.
func (c *Config) Clone() *Config {
	out := *c
	out.Format.Groups = append([]GroupColor(nil), c.Format.Groups...)
	out.Tokens = append([]TokenColor(nil), c.Tokens...)
	return &out
}

// ReadFilename reads the config from the given file. Files ending in
// .yaml or .yml are decoded as YAML, everything else as JSON.
func (c *Config) ReadFilename(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open file %s", filename)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(f).Decode(c)
	default:
		err = json.NewDecoder(f).Decode(c)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to decode %s", filename)
	}
	return nil
}

// WriteFilename writes the config to the given file, in the format
// implied by its extension.
func (c *Config) WriteFilename(filename string) error {
	var buf []byte
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		buf, err = yaml.Marshal(c)
	default:
		buf, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	if err := os.WriteFile(filename, buf, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", filename)
	}
	return nil
}

// LocateRCFile looks for the loglens config file in the directories
// that hold configuration on this platform, and returns the first one
// that exists. An empty return value with no error means no config
// file was found (which is not an error: defaults apply).
func LocateRCFile() (string, error) {
	home, err := homedirFunc()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate home directory")
	}

	candidates := []string{
		filepath.Join(home, ".config", "loglens", "config.json"),
		filepath.Join(home, ".config", "loglens", "config.yaml"),
		filepath.Join(home, ".loglens.json"),
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		candidates = append([]string{
			filepath.Join(dir, "loglens", "config.json"),
			filepath.Join(dir, "loglens", "config.yaml"),
		}, candidates...)
	}

	for _, file := range candidates {
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}
	}
	return "", nil
}
