package render

import (
	"fmt"
	"os"
	"strings"
)

// LabelFont is the glyph set used for label borders.
type LabelFont struct {
	Name                    string
	TopLeft, TopRight       rune
	BottomLeft, BottomRight rune
	Horizontal, Vertical    rune
}

var (
	FontRounded = LabelFont{"rounded", '╭', '╮', '╰', '╯', '─', '│'}
	FontDouble  = LabelFont{"double", '╔', '╗', '╚', '╝', '═', '║'}
	FontASCII   = LabelFont{"ascii", '+', '+', '+', '+', '-', '|'}
)

var fonts = map[string]LabelFont{
	FontRounded.Name: FontRounded,
	FontDouble.Name:  FontDouble,
	FontASCII.Name:   FontASCII,
}

// LoadFont resolves a label font by name. Unknown names, or box-drawing
// fonts on a terminal without UTF-8, fall back to ASCII; the error says why
// and is never fatal.
func LoadFont(name string, utf8 bool) (LabelFont, error) {
	f, ok := fonts[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return FontASCII, fmt.Errorf("unknown label font %q, using %s", name, FontASCII.Name)
	}
	if !utf8 && f.Name != FontASCII.Name {
		return FontASCII, fmt.Errorf("label font %q needs a UTF-8 terminal, using %s", name, FontASCII.Name)
	}
	return f, nil
}

// LocaleUTF8 reports whether the environment locale advertises UTF-8.
func LocaleUTF8() bool {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		v = strings.ToUpper(v)
		return strings.Contains(v, "UTF-8") || strings.Contains(v, "UTF8")
	}
	return false
}
