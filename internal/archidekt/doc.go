// Package archidekt retrieves decks from the Archidekt deck builder and maps
// them onto the internal deck model.
package archidekt
