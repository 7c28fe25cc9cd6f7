package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpace_Bijection(t *testing.T) {
	sp := NewSpace()

	// All 64 values decode, and no two values share a combination.
	seen := make(map[Combination]int, MaxValue)
	for v := MinValue; v <= MaxValue; v++ {
		combo, err := sp.Combination(v)
		require.NoError(t, err)

		prev, dup := seen[combo]
		require.False(t, dup, "value %d and %d decode to the same combination %v", prev, v, combo)
		seen[combo] = v
	}
	assert.Len(t, seen, MaxValue)
}

func TestNewSpace_Anchors(t *testing.T) {
	sp := NewSpace()

	tests := []struct {
		value int
		combo Combination
	}{
		{1, Combination{Bar, Bar, Bar}},
		{2, Combination{Bar, Bar, Grape}},
		{5, Combination{Bar, Grape, Bar}},
		{17, Combination{Grape, Bar, Bar}},
		{22, Combination{Grape, Grape, Grape}},
		{43, Combination{Lemon, Lemon, Lemon}},
		{64, Combination{Seven, Seven, Seven}},
	}

	for _, tt := range tests {
		combo, err := sp.Combination(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.combo, combo, "value %d", tt.value)
	}
}

func TestSpace_Combination_OutOfRange(t *testing.T) {
	sp := NewSpace()

	for _, v := range []int{0, -1, 65, 100} {
		_, err := sp.Combination(v)
		assert.ErrorIs(t, err, ErrOutOfRange, "value %d", v)

		_, err = sp.Category(v)
		assert.ErrorIs(t, err, ErrOutOfRange, "value %d", v)
	}
}

func TestSpace_TripleValues(t *testing.T) {
	sp := NewSpace()

	assert.Equal(t, 1, sp.TripleValue(Bar))
	assert.Equal(t, 22, sp.TripleValue(Grape))
	assert.Equal(t, 43, sp.TripleValue(Lemon))
	assert.Equal(t, 64, sp.TripleValue(Seven))
}

func TestSpace_CategoryPartition(t *testing.T) {
	sp := NewSpace()

	wantDoubleBar := map[int]struct{}{
		2: {}, 3: {}, 4: {}, 5: {}, 9: {}, 13: {}, 17: {}, 33: {}, 49: {},
	}
	assert.Equal(t, wantDoubleBar, sp.DoubleBarValues())

	counts := make(map[CategoryKind]int)
	for v := MinValue; v <= MaxValue; v++ {
		cat, err := sp.Category(v)
		require.NoError(t, err)
		counts[cat.Kind]++

		if _, ok := wantDoubleBar[v]; ok {
			assert.Equal(t, CategoryDoubleBar, cat.Kind, "value %d", v)
		}
	}

	assert.Equal(t, 1, counts[CategoryTripleBar])
	assert.Equal(t, 1, counts[CategoryTripleGrape])
	assert.Equal(t, 1, counts[CategoryTripleLemon])
	assert.Equal(t, 1, counts[CategoryTripleSeven])
	assert.Equal(t, 9, counts[CategoryDoubleBar])
	assert.Equal(t, 64-4-9, counts[CategoryMixed])
}

func TestCategory_Name(t *testing.T) {
	sp := NewSpace()

	tests := []struct {
		value int
		want  string
	}{
		{1, "Triple Bar"},
		{22, "Triple Grape"},
		{43, "Triple Lemon"},
		{64, "Triple Seven"},
		{2, "Double Bar"},
		{49, "Double Bar"},
		// 28 decodes to Grape,Lemon,Seven; mixed names join the titles.
		{28, "Grape-Lemon-Seven"},
	}

	for _, tt := range tests {
		name, err := sp.CategoryName(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, name, "value %d", tt.value)
	}
}

func TestSymbol_Strings(t *testing.T) {
	assert.Equal(t, "BAR", Bar.String())
	assert.Equal(t, "SEVEN", Seven.String())
	assert.Equal(t, "Lemon", Lemon.Title())
	assert.Equal(t, "UNKNOWN", Symbol(99).String())
}
