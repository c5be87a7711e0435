// Package language defines the card languages accepted for deck
// materialization and their human-readable names.
package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"proxyforge/internal/services"
)

// Language pairs a card database language code with its display name.
type Language struct {
	Code string
	Name string
}

// Card printings exist in more languages than these, but these are the codes
// the lookup API indexes for multilingual search.
var supported = []struct {
	code string
	tag  language.Tag
}{
	{"en", language.English},
	{"es", language.Spanish},
	{"fr", language.French},
	{"de", language.German},
	{"it", language.Italian},
	{"pt", language.Portuguese},
	{"ja", language.Japanese},
	{"ko", language.Korean},
	{"zhs", language.SimplifiedChinese},
	{"zht", language.TraditionalChinese},
}

// Supported lists every accepted language in stable order.
func Supported() []Language {
	namer := display.English.Languages()
	out := make([]Language, 0, len(supported))
	for _, entry := range supported {
		out = append(out, Language{Code: entry.code, Name: namer.Name(entry.tag)})
	}
	return out
}

// Normalize lowercases and validates a language code. The empty string is
// valid and means no language preference.
func Normalize(code string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" {
		return "", nil
	}
	for _, entry := range supported {
		if entry.code == trimmed {
			return trimmed, nil
		}
	}
	return "", services.Wrap(services.ErrValidation, "language", "normalize",
		fmt.Sprintf("unsupported language code %q", code), nil)
}
