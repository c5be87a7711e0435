// Command proxyforge generates printable proxy sheets from deck lists or
// Archidekt decks.
package main
