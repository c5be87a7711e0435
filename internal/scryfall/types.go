package scryfall

import "github.com/google/uuid"

// ImageURIs carries the image renditions Scryfall exposes per card or face.
// Only the large rendition is used for printing.
type ImageURIs struct {
	Large string `json:"large"`
}

// CardFace is one face of a multi-faced card.
type CardFace struct {
	Name      string     `json:"name"`
	ImageURIs *ImageURIs `json:"image_uris"`
}

// RelatedPart references another card record related to this one, such as a
// token the card creates.
type RelatedPart struct {
	Name      string `json:"name"`
	Component string `json:"component"`
	URI       string `json:"uri"`
}

// ComponentToken is the related-part component kind for tokens.
const ComponentToken = "token"

// Card models the subset of a Scryfall card record the pipeline consumes.
type Card struct {
	ID                uuid.UUID     `json:"id"`
	Name              string        `json:"name"`
	Lang              string        `json:"lang"`
	Set               string        `json:"set"`
	TCGPlayerEtchedID *int64        `json:"tcgplayer_etched_id"`
	ImageURIs         *ImageURIs    `json:"image_uris"`
	CardFaces         []CardFace    `json:"card_faces"`
	AllParts          []RelatedPart `json:"all_parts"`
}

// EtchedAvailable reports whether an etched printing of this record exists.
func (c *Card) EtchedAvailable() bool {
	return c != nil && c.TCGPlayerEtchedID != nil
}

// ImageURL returns the top-level large image URL, or empty when the record
// has no single image (multi-faced cards often do not).
func (c *Card) ImageURL() string {
	if c == nil || c.ImageURIs == nil {
		return ""
	}
	return c.ImageURIs.Large
}

// SearchResult models the paginated Scryfall search response.
type SearchResult struct {
	TotalCards int     `json:"total_cards"`
	Data       []*Card `json:"data"`
}
