package slot

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MinValue and MaxValue bound the dice values Telegram sends for 🎰.
	MinValue = 1
	MaxValue = 64
)

// ErrOutOfRange is returned for dice values outside [1,64].
var ErrOutOfRange = errors.New("slot value out of range")

// Combination is the ordered symbol triplet behind one dice value.
type Combination [3]Symbol

// CategoryKind classifies a combination for display and reactions.
type CategoryKind int

const (
	CategoryMixed CategoryKind = iota
	CategoryTripleBar
	CategoryTripleGrape
	CategoryTripleLemon
	CategoryTripleSeven
	CategoryDoubleBar
)

// Category is a classified combination.
type Category struct {
	Kind  CategoryKind
	Combo Combination
}

// Name returns the human-readable combination name, e.g. "Triple Seven",
// "Double Bar" or "Bar-Grape-Lemon".
func (c Category) Name() string {
	switch c.Kind {
	case CategoryTripleBar:
		return "Triple Bar"
	case CategoryTripleGrape:
		return "Triple Grape"
	case CategoryTripleLemon:
		return "Triple Lemon"
	case CategoryTripleSeven:
		return "Triple Seven"
	case CategoryDoubleBar:
		return "Double Bar"
	default:
		parts := []string{c.Combo[0].Title(), c.Combo[1].Title(), c.Combo[2].Title()}
		return strings.Join(parts, "-")
	}
}

// Space is the fixed bijection between dice values 1..64 and symbol
// triplets. Construct once and share; it is immutable afterwards.
type Space struct {
	combos [MaxValue + 1]Combination // 1-based

	tripleIndex [NumSymbols]int
	doubleBar   map[int]struct{}
}

// NewSpace enumerates all 64 triplets. Values are assigned by iterating
// the first reel slowest and the third reel fastest, matching the order
// Telegram's dice generator assumes: value 1 is Bar,Bar,Bar and value
// 64 is Seven,Seven,Seven.
func NewSpace() *Space {
	sp := &Space{doubleBar: make(map[int]struct{}, 9)}

	value := 1
	for _, first := range Symbols() {
		for _, second := range Symbols() {
			for _, third := range Symbols() {
				combo := Combination{first, second, third}
				sp.combos[value] = combo

				if first == second && second == third {
					sp.tripleIndex[first] = value
				} else if barCount(combo) == 2 {
					sp.doubleBar[value] = struct{}{}
				}

				value++
			}
		}
	}

	return sp
}

func barCount(c Combination) int {
	n := 0
	for _, s := range c {
		if s == Bar {
			n++
		}
	}
	return n
}

// Combination returns the symbol triplet for a dice value.
func (sp *Space) Combination(value int) (Combination, error) {
	if value < MinValue || value > MaxValue {
		return Combination{}, fmt.Errorf("%w: %d", ErrOutOfRange, value)
	}
	return sp.combos[value], nil
}

// Category classifies the combination behind a dice value.
func (sp *Space) Category(value int) (Category, error) {
	combo, err := sp.Combination(value)
	if err != nil {
		return Category{}, err
	}

	cat := Category{Kind: CategoryMixed, Combo: combo}
	switch {
	case value == sp.tripleIndex[Bar]:
		cat.Kind = CategoryTripleBar
	case value == sp.tripleIndex[Grape]:
		cat.Kind = CategoryTripleGrape
	case value == sp.tripleIndex[Lemon]:
		cat.Kind = CategoryTripleLemon
	case value == sp.tripleIndex[Seven]:
		cat.Kind = CategoryTripleSeven
	default:
		if _, ok := sp.doubleBar[value]; ok {
			cat.Kind = CategoryDoubleBar
		}
	}
	return cat, nil
}

// CategoryName is a convenience wrapper over Category.
func (sp *Space) CategoryName(value int) (string, error) {
	cat, err := sp.Category(value)
	if err != nil {
		return "", err
	}
	return cat.Name(), nil
}

// TripleValue returns the dice value whose combination is three of the
// given symbol.
func (sp *Space) TripleValue(s Symbol) int {
	return sp.tripleIndex[s]
}

// DoubleBarValues returns the 9 dice values with exactly two BAR reels.
func (sp *Space) DoubleBarValues() map[int]struct{} {
	out := make(map[int]struct{}, len(sp.doubleBar))
	for v := range sp.doubleBar {
		out[v] = struct{}{}
	}
	return out
}
