// Package resolve implements the card identity resolution and token
// expansion algorithms.
//
// Resolution maps each deck entry to a card record through the lookup port
// (exact find when the entry pins set and collector number, name search
// otherwise), applies a strict candidate selection predicate with a single
// language-free fallback, and derives the entry's printable sides in a fixed
// extraction order. Failures are soft: unresolved entries keep empty sides
// and drop out of the manifest downstream.
//
// Token expansion runs after all entries have been offered for resolution and
// appends one synthetic entry per related token, fetched once by the
// identifier in its lookup URI.
package resolve
