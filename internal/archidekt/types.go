package archidekt

// DeckResponse models the Archidekt deck payload.
type DeckResponse struct {
	Name  string     `json:"name"`
	Cards []DeckCard `json:"cards"`
}

// DeckCard is one card slot inside an Archidekt deck.
type DeckCard struct {
	Quantity int    `json:"quantity"`
	Modifier string `json:"modifier"`
	Card     *Card  `json:"card"`
}

// Card carries the printing details of a deck slot.
type Card struct {
	CollectorNumber string      `json:"collectorNumber"`
	Edition         *Edition    `json:"edition"`
	OracleCard      *OracleCard `json:"oracleCard"`
}

// Edition identifies the expansion of a printing.
type Edition struct {
	EditionCode string `json:"editioncode"`
}

// OracleCard carries the oracle-level card identity.
type OracleCard struct {
	Name   string `json:"name"`
	Layout string `json:"layout"`
}
