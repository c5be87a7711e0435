// Package printer orchestrates deck materialization: load the deck from its
// source, resolve every entry, expand related tokens, and hand the printable
// entries to the document assembler. Runs move through idle, resolving,
// expanding, and completed states, with an absorbing errored state for
// unrecoverable input (an empty deck or a deck where nothing resolves).
package printer
