package language_test

import (
	"errors"
	"testing"

	"proxyforge/internal/language"
	"proxyforge/internal/services"
)

func TestSupportedListsAllCodes(t *testing.T) {
	langs := language.Supported()
	if len(langs) != 10 {
		t.Fatalf("expected 10 languages, got %d", len(langs))
	}
	if langs[0].Code != "en" || langs[0].Name != "English" {
		t.Fatalf("unexpected first language: %+v", langs[0])
	}
	byCode := make(map[string]string, len(langs))
	for _, l := range langs {
		if l.Name == "" {
			t.Fatalf("language %q has no display name", l.Code)
		}
		byCode[l.Code] = l.Name
	}
	if byCode["ja"] != "Japanese" {
		t.Fatalf("unexpected name for ja: %q", byCode["ja"])
	}
	if _, ok := byCode["zhs"]; !ok {
		t.Fatal("expected simplified Chinese code present")
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"en", "en", false},
		{"EN", "en", false},
		{" ja ", "ja", false},
		{"zht", "zht", false},
		{"xx", "", true},
		{"english", "", true},
	}
	for _, tc := range cases {
		got, err := language.Normalize(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("Normalize(%q): expected error", tc.in)
			}
			if !errors.Is(err, services.ErrValidation) {
				t.Fatalf("Normalize(%q): expected validation error, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Normalize(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
