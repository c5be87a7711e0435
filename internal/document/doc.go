// Package document renders resolved decks into printable HTML proxy sheets.
//
// Cards are laid out at physical size on A4 landscape pages, one slot per
// side per copy, with images embedded as data URIs so the generated file can
// be printed or shared without network access.
package document
