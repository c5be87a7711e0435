package deck

// CardSide is one printable face of a card. Identity is the (Name, ImageURL)
// pair; two sides are equal iff both fields match.
type CardSide struct {
	Name     string
	ImageURL string
}

// TokenRef points at a related token's own card record, pending expansion.
type TokenRef struct {
	Name      string
	LookupURI string
}

// Entry is one line item of a deck: a card name plus quantity and optional
// print qualifiers. Sides and Tokens are populated by resolution.
type Entry struct {
	Name            string
	Quantity        int
	ExpansionCode   string
	CollectorNumber string
	IsArt           bool
	IsEtched        bool
	IsFoil          bool

	Sides  SideSet
	Tokens []TokenRef
}

// Deck is a named list of entries.
type Deck struct {
	Name    string
	Entries []*Entry
}

// SideCount returns the total number of printable sides across all entries.
func (d *Deck) SideCount() int {
	total := 0
	for _, entry := range d.Entries {
		total += entry.Sides.Len()
	}
	return total
}
