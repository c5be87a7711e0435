// Package deck defines the deck entry model shared across the pipeline and
// the Archidekt deck-list file parser.
//
// An Entry starts as a bare name plus qualifiers and is annotated in place by
// resolution: Sides receives the printable faces, Tokens the related token
// references pending expansion. SideSet keeps set semantics with deterministic
// insertion order.
package deck
