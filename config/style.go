package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// Color is a display color that can be read from a configuration
// file, either as a W3C color name ("red", "papayawhip") or as a
// "#rrggbb" hex triplet. The zero value is "unset".
type Color struct {
	c tcell.Color
}

// NewColor wraps a tcell color.
func NewColor(c tcell.Color) Color {
	return Color{c: c}
}

// Tcell returns the underlying tcell color.
func (c Color) Tcell() tcell.Color {
	return c.c
}

// Valid reports whether the color has been set.
func (c Color) Valid() bool {
	return c.c.Valid()
}

func (c *Color) fromString(s string) error {
	if s == "" || s == "default" {
		c.c = tcell.ColorDefault
		return nil
	}
	if strings.HasPrefix(s, "#") {
		c.c = tcell.GetColor(s)
		return nil
	}
	col, ok := tcell.ColorNames[s]
	if !ok {
		return errors.Errorf("unknown color %q", s)
	}
	c.c = col
	return nil
}

// UnmarshalJSON decodes a color from its JSON string form.
func (c *Color) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return errors.Wrap(err, "failed to unmarshal Color")
	}
	return c.fromString(s)
}

// UnmarshalYAML decodes a color from its YAML string form.
func (c *Color) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return errors.Wrap(err, "failed to unmarshal Color from YAML")
	}
	return c.fromString(s)
}

// MarshalJSON encodes the color as a hex triplet (or "default").
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.text())
}

// MarshalYAML encodes the color as a hex triplet (or "default").
func (c Color) MarshalYAML() (interface{}, error) {
	return c.text(), nil
}

func (c Color) text() string {
	if !c.c.Valid() || c.c == tcell.ColorDefault {
		return "default"
	}
	return fmt.Sprintf("#%06x", c.c.Hex())
}

// Style describes the display attributes of a piece of text. In the
// configuration file it is written as a list of strings, e.g.
// ["bold", "white", "on_red"]: a plain color name sets the
// foreground, an "on_" prefixed name sets the background, and the
// remaining words set text attributes.
type Style struct {
	fg        tcell.Color
	bg        tcell.Color
	bold      bool
	underline bool
	reverse   bool
	italic    bool
}

var stringToAttr = map[string]func(*Style){
	"bold":      func(s *Style) { s.bold = true },
	"underline": func(s *Style) { s.underline = true },
	"reverse":   func(s *Style) { s.reverse = true },
	"italic":    func(s *Style) { s.italic = true },
}

// NewStyle creates a style with the given foreground and background.
func NewStyle(fg, bg tcell.Color) Style {
	return Style{fg: fg, bg: bg}
}

// Foreground returns the foreground color.
func (s Style) Foreground() tcell.Color {
	return s.fg
}

// Background returns the background color.
func (s Style) Background() tcell.Color {
	return s.bg
}

// Tcell converts the style to its tcell representation.
func (s Style) Tcell() tcell.Style {
	st := tcell.StyleDefault.Foreground(s.fg).Background(s.bg)
	if s.bold {
		st = st.Bold(true)
	}
	if s.underline {
		st = st.Underline(true)
	}
	if s.reverse {
		st = st.Reverse(true)
	}
	if s.italic {
		st = st.Italic(true)
	}
	return st
}

func (s *Style) fromStrings(raw []string) error {
	*s = Style{fg: tcell.ColorDefault, bg: tcell.ColorDefault}
	for _, v := range raw {
		if f, ok := stringToAttr[v]; ok {
			f(s)
			continue
		}

		var c Color
		if name, ok := strings.CutPrefix(v, "on_"); ok {
			if err := c.fromString(name); err != nil {
				return errors.Wrapf(err, "invalid background %q", v)
			}
			s.bg = c.Tcell()
			continue
		}
		if err := c.fromString(v); err != nil {
			return errors.Wrapf(err, "invalid style element %q", v)
		}
		s.fg = c.Tcell()
	}
	return nil
}

// UnmarshalJSON decodes the JSON representation and assembles the
// proper Style object from a list of strings.
func (s *Style) UnmarshalJSON(buf []byte) error {
	raw := []string{}
	if err := json.Unmarshal(buf, &raw); err != nil {
		return errors.Wrap(err, "failed to unmarshal Style")
	}
	return s.fromStrings(raw)
}

// UnmarshalYAML decodes a YAML array of strings into a Style.
func (s *Style) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw []string
	if err := unmarshal(&raw); err != nil {
		return errors.Wrap(err, "failed to unmarshal Style from YAML")
	}
	return s.fromStrings(raw)
}

// MarshalJSON encodes the style back into its list-of-strings form.
func (s Style) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.strings())
}

// MarshalYAML encodes the style back into its list-of-strings form.
func (s Style) MarshalYAML() (interface{}, error) {
	return s.strings(), nil
}

func (s Style) strings() []string {
	var raw []string
	if s.bold {
		raw = append(raw, "bold")
	}
	if s.underline {
		raw = append(raw, "underline")
	}
	if s.reverse {
		raw = append(raw, "reverse")
	}
	if s.italic {
		raw = append(raw, "italic")
	}
	raw = append(raw, NewColor(s.fg).text())
	raw = append(raw, "on_"+NewColor(s.bg).text())
	return raw
}

// StyleSet holds the styles for the fixed parts of the display.
type StyleSet struct {
	Basic      Style `json:"Basic" yaml:"Basic"`
	LineNumber Style `json:"LineNumber" yaml:"LineNumber"`
	Match      Style `json:"Match" yaml:"Match"`
}

// Init sets the default styles: plain text, dimmed gutter, and a
// high-contrast search match highlight.
func (ss *StyleSet) Init() {
	ss.Basic = NewStyle(tcell.ColorDefault, tcell.ColorDefault)
	ss.LineNumber = NewStyle(tcell.ColorGray, tcell.ColorDefault)
	ss.Match = NewStyle(tcell.ColorBlack, tcell.ColorYellow)
}
