package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/sheetroll/internal/game/dice"
)

func TestHistory_DiscardsOldest(t *testing.T) {
	h := dice.NewHistory(3)
	for i := 1; i <= 5; i++ {
		h.Add(dice.Result{Final: i})
	}
	assert.Equal(t, 3, h.Len())
	got := h.List()
	assert.Equal(t, []int{5, 4, 3}, []int{got[0].Final, got[1].Final, got[2].Final})
}

func TestHistory_Clear(t *testing.T) {
	h := dice.NewHistory(2)
	h.Add(dice.Result{Final: 1})
	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.List())
	h.Add(dice.Result{Final: 9})
	assert.Equal(t, 9, h.List()[0].Final)
}

func TestHistory_MinimumCapacity(t *testing.T) {
	h := dice.NewHistory(0)
	assert.Equal(t, 1, h.Cap())
}

func TestProperty_HistoryBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(1, 10).Draw(rt, "size")
		n := rapid.IntRange(0, 40).Draw(rt, "adds")
		h := dice.NewHistory(size)
		for i := 0; i < n; i++ {
			h.Add(dice.Result{Final: i})
		}
		assert.Equal(rt, min(n, size), h.Len())
		list := h.List()
		for i, r := range list {
			assert.Equal(rt, n-1-i, r.Final)
		}
	})
}
