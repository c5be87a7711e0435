package deck_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"proxyforge/internal/deck"
)

func writeDeckList(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write deck list: %v", err)
	}
	return path
}

func TestParseFileUsesFileStemAsDeckName(t *testing.T) {
	path := writeDeckList(t, "burn.txt")
	parsed, err := deck.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if parsed.Name != "burn" {
		t.Fatalf("expected deck name %q, got %q", "burn", parsed.Name)
	}
	if len(parsed.Entries) != 0 {
		t.Fatalf("expected empty deck, got %d entries", len(parsed.Entries))
	}
}

func TestParseFileLines(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		want  deck.Entry
	}{
		{
			name: "bare name defaults to one copy",
			line: "Card A",
			want: deck.Entry{Name: "Card A", Quantity: 1},
		},
		{
			name: "quantity without x",
			line: "3 Card B",
			want: deck.Entry{Name: "Card B", Quantity: 3},
		},
		{
			name: "quantity with x",
			line: "2x Card B",
			want: deck.Entry{Name: "Card B", Quantity: 2},
		},
		{
			name: "expansion code",
			line: "1x Card C (EXP)",
			want: deck.Entry{Name: "Card C", Quantity: 1, ExpansionCode: "EXP"},
		},
		{
			name: "expansion code with collector number",
			line: "1x Card C (2x2) 117",
			want: deck.Entry{Name: "Card C", Quantity: 1, ExpansionCode: "2x2", CollectorNumber: "117"},
		},
		{
			name: "marker after expansion code leaves collector empty",
			line: "1x Card C (2x2) *F*",
			want: deck.Entry{Name: "Card C", Quantity: 1, ExpansionCode: "2x2", IsFoil: true},
		},
		{
			name: "foil marker",
			line: "1x Card D *F*",
			want: deck.Entry{Name: "Card D", Quantity: 1, IsFoil: true},
		},
		{
			name: "etched marker",
			line: "1x Card E *E*",
			want: deck.Entry{Name: "Card E", Quantity: 1, IsEtched: true},
		},
		{
			name: "everything at once",
			line: "4x Card F (SET) 42 *F* *E*",
			want: deck.Entry{Name: "Card F", Quantity: 4, ExpansionCode: "SET", CollectorNumber: "42", IsFoil: true, IsEtched: true},
		},
		{
			name: "split card keeps separator",
			line: "1x Fire // Ice (apc)",
			want: deck.Entry{Name: "Fire // Ice", Quantity: 1, ExpansionCode: "apc"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeDeckList(t, "deck.txt", tc.line)
			parsed, err := deck.ParseFile(path)
			if err != nil {
				t.Fatalf("ParseFile failed: %v", err)
			}
			if len(parsed.Entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(parsed.Entries))
			}
			got := parsed.Entries[0]
			if got.Name != tc.want.Name || got.Quantity != tc.want.Quantity ||
				got.ExpansionCode != tc.want.ExpansionCode ||
				got.CollectorNumber != tc.want.CollectorNumber ||
				got.IsFoil != tc.want.IsFoil || got.IsEtched != tc.want.IsEtched {
				t.Fatalf("parsed %+v, want %+v", *got, tc.want)
			}
		})
	}
}

func TestParseFileSkipsBlankLines(t *testing.T) {
	path := writeDeckList(t, "deck.txt", "1x Card A", "", "   ", "2x Card B")
	parsed, err := deck.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(parsed.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(parsed.Entries))
	}
}

func TestParseFileMissingFile(t *testing.T) {
	if _, err := deck.ParseFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
