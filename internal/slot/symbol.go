// Package slot models the 64-outcome space of Telegram's slot machine dice.
// Each outcome value in [1,64] maps to an ordered triplet of reel symbols.
package slot

// Symbol is one reel symbol of the slot machine.
type Symbol int

// Reel symbols in alphabet order. The order is an external contract:
// Telegram's slot machine assigns dice values by enumerating triplets
// in exactly this symbol order, so it must never change.
const (
	Bar Symbol = iota
	Grape
	Lemon
	Seven

	// NumSymbols is the size of the symbol alphabet.
	NumSymbols = 4
)

var symbolNames = [NumSymbols]string{"BAR", "GRAPE", "LEMON", "SEVEN"}

var symbolTitles = [NumSymbols]string{"Bar", "Grape", "Lemon", "Seven"}

// String returns the uppercase symbol name used in config and display.
func (s Symbol) String() string {
	if s < 0 || s >= NumSymbols {
		return "UNKNOWN"
	}
	return symbolNames[s]
}

// Title returns the capitalized symbol name used in combination names.
func (s Symbol) Title() string {
	if s < 0 || s >= NumSymbols {
		return "Unknown"
	}
	return symbolTitles[s]
}

// Symbols returns the alphabet in enumeration order.
func Symbols() [NumSymbols]Symbol {
	return [NumSymbols]Symbol{Bar, Grape, Lemon, Seven}
}
