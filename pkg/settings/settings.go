// Package settings implements the per-widget configuration surface.
//
// Settings are typed values, one variant per recognized key, built either
// directly with the constructors ([FontSize], [FontBold], ...) or parsed
// from strings of the form "Name=Value", "Name" and "!Name". Parsing is
// forgiving: a malformed or unknown item is reported as a warning and
// skipped, and the remaining items are still processed.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/graphics"
)

// Recognized setting names.
const (
	KeyFontBold        = "FontBold"
	KeyFontItalic      = "FontItalic"
	KeyFontSize        = "FontSize"
	KeyFontEmWidth     = "FontEmWidth"
	KeyFontColor       = "FontColor"
	KeyFontColorSelect = "FontColorSelect"
)

// Kind is the value type of a setting.
type Kind int

const (
	// Flag settings are written "Name" or "!Name".
	Flag Kind = iota
	// Int settings are written "Name=<integer>".
	Int
	// ColorValue settings are written "Name=r,g,b,a".
	ColorValue
)

func (k Kind) String() string {
	switch k {
	case Flag:
		return "flag"
	case Int:
		return "integer"
	case ColorValue:
		return "color"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Setting is one typed configuration item.
type Setting struct {
	Name  string
	Kind  Kind
	Flag  bool
	Int   int
	Color graphics.Color
}

func (s Setting) String() string {
	switch s.Kind {
	case Flag:
		if s.Flag {
			return s.Name
		}
		return "!" + s.Name
	case Int:
		return s.Name + "=" + strconv.Itoa(s.Int)
	default:
		return s.Name + "=" + s.Color.String()
	}
}

// FontBold sets or clears bold text.
func FontBold(on bool) Setting { return Setting{Name: KeyFontBold, Kind: Flag, Flag: on} }

// FontItalic sets or clears italic text.
func FontItalic(on bool) Setting { return Setting{Name: KeyFontItalic, Kind: Flag, Flag: on} }

// FontSize sets the font size in design pixels.
func FontSize(px int) Setting { return Setting{Name: KeyFontSize, Kind: Int, Int: px} }

// FontEmWidth sets the horizontal padding added to measured text.
func FontEmWidth(px int) Setting { return Setting{Name: KeyFontEmWidth, Kind: Int, Int: px} }

// FontColor sets the text color.
func FontColor(c graphics.Color) Setting { return Setting{Name: KeyFontColor, Kind: ColorValue, Color: c} }

// FontColorSelect sets the text color used while selected.
func FontColorSelect(c graphics.Color) Setting {
	return Setting{Name: KeyFontColorSelect, Kind: ColorValue, Color: c}
}

// Schema maps the names a widget accepts to their kinds.
type Schema map[string]Kind

// TextSchema is accepted by widgets with selectable text (Button,
// ComboBox).
var TextSchema = Schema{
	KeyFontBold:        Flag,
	KeyFontItalic:      Flag,
	KeyFontSize:        Int,
	KeyFontEmWidth:     Int,
	KeyFontColor:       ColorValue,
	KeyFontColorSelect: ColorValue,
}

// LabelSchema is accepted by widgets whose text is never selected.
var LabelSchema = Schema{
	KeyFontBold:    Flag,
	KeyFontItalic:  Flag,
	KeyFontSize:    Int,
	KeyFontEmWidth: Int,
	KeyFontColor:   ColorValue,
}

// Parse converts string items into settings. Every item that cannot be
// used is skipped and reported, both to the error handler and in the
// returned warnings, which wrap *errors.ConfigError.
func (s Schema) Parse(items ...string) ([]Setting, []error) {
	var (
		out      []Setting
		warnings []error
	)
	for _, item := range items {
		st, cerr := s.parseItem(item)
		if cerr != nil {
			werrors.ReportConfig(cerr)
			warnings = append(warnings, cerr)
			continue
		}
		out = append(out, st)
	}
	return out, warnings
}

// Check validates typed settings against the schema.
func (s Schema) Check(in ...Setting) ([]Setting, []error) {
	var (
		out      []Setting
		warnings []error
	)
	for _, st := range in {
		kind, ok := s[st.Name]
		var cerr *werrors.ConfigError
		switch {
		case !ok:
			cerr = &werrors.ConfigError{Item: st.String(), Reason: "unknown setting"}
		case kind != st.Kind:
			cerr = &werrors.ConfigError{Item: st.String(), Reason: "wrong value type", Hint: didYouMean(st.Name, kind)}
		default:
			cerr = validate(st)
		}
		if cerr != nil {
			werrors.ReportConfig(cerr)
			warnings = append(warnings, cerr)
			continue
		}
		out = append(out, st)
	}
	return out, warnings
}

func (s Schema) parseItem(item string) (Setting, *werrors.ConfigError) {
	item = strings.TrimSpace(item)
	name, value, hasValue := strings.Cut(item, "=")
	name = strings.TrimSpace(name)
	negated := false
	if !hasValue && strings.HasPrefix(name, "!") {
		negated = true
		name = strings.TrimSpace(name[1:])
	}
	if name == "" {
		return Setting{}, &werrors.ConfigError{Item: item, Reason: "empty setting name"}
	}

	kind, ok := s[name]
	if !ok {
		return Setting{}, &werrors.ConfigError{Item: item, Reason: "unknown setting", Hint: s.suggest(name)}
	}

	switch {
	case kind == Flag && hasValue:
		return Setting{}, &werrors.ConfigError{
			Item:   item,
			Reason: "flag given a value",
			Hint:   didYouMean(name, Flag),
		}
	case kind != Flag && !hasValue:
		return Setting{}, &werrors.ConfigError{
			Item:   item,
			Reason: fmt.Sprintf("%s setting used as a flag", kind),
			Hint:   didYouMean(name, kind),
		}
	}

	st := Setting{Name: name, Kind: kind}
	value = strings.TrimSpace(value)
	switch kind {
	case Flag:
		st.Flag = !negated
	case Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return Setting{}, &werrors.ConfigError{Item: item, Reason: "not an integer", Hint: didYouMean(name, kind)}
		}
		st.Int = n
	case ColorValue:
		c, err := graphics.ParseColor(value)
		if err != nil {
			return Setting{}, &werrors.ConfigError{Item: item, Reason: err.Error(), Hint: didYouMean(name, kind)}
		}
		st.Color = c
	}
	if cerr := validate(st); cerr != nil {
		cerr.Item = item
		return Setting{}, cerr
	}
	return st, nil
}

func validate(st Setting) *werrors.ConfigError {
	switch st.Name {
	case KeyFontSize:
		if st.Int <= 0 {
			return &werrors.ConfigError{Item: st.String(), Reason: "font size must be positive"}
		}
	case KeyFontEmWidth:
		if st.Int < 0 {
			return &werrors.ConfigError{Item: st.String(), Reason: "em width must not be negative"}
		}
	}
	return nil
}

// suggest finds a case-insensitive match for a misspelled name.
func (s Schema) suggest(name string) string {
	for k, kind := range s {
		if strings.EqualFold(k, name) {
			return didYouMean(k, kind)
		}
	}
	return ""
}

func usage(name string, k Kind) string {
	switch k {
	case Flag:
		return name + " or !" + name
	case Int:
		return name + "=<integer>"
	default:
		return name + "=r,g,b,a"
	}
}

func didYouMean(name string, k Kind) string {
	return "did you mean " + usage(name, k) + "?"
}
