package reconcile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNum(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain integer", "10", 10},
		{"decimal", "299.99", 299.99},
		{"surrounding spaces", " 2.5 ", 2.5},
		{"empty", "", 0},
		{"non-numeric", "abc", 0},
		{"partial number", "12x", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Num(tt.in))
		})
	}
}

func TestOptNum(t *testing.T) {
	assert.Nil(t, OptNum(""))
	assert.Nil(t, OptNum("   "))

	n := OptNum("12.5")
	if assert.NotNil(t, n) {
		assert.Equal(t, 12.5, *n)
	}

	// Malformed optional input coerces to zero, not nil.
	z := OptNum("abc")
	if assert.NotNil(t, z) {
		assert.Equal(t, 0.0, *z)
	}
}

func TestMoneyRoundsHalfUpAtTheCent(t *testing.T) {
	assert.Equal(t, "13.01", Money(13.005))
	assert.Equal(t, "1.01", Money(1.005))
	assert.Equal(t, "2.68", Money(2.675))
	assert.Equal(t, "13.00", Money(13.0049))
	assert.Equal(t, "0.00", Money(0))
	assert.Equal(t, "299.99", Money(299.99))
}

func TestMoneyNonFinite(t *testing.T) {
	assert.Equal(t, "0.00", Money(math.NaN()))
	assert.Equal(t, "0.00", Money(math.Inf(1)))
	assert.Equal(t, "0.00", Money(math.Inf(-1)))
}

func TestTotalAmountNeverNaN(t *testing.T) {
	items := []Item{
		{UnitsPcs: Num("10"), UnitPrice: Num("1.3")},
		{UnitsPcs: Num("not a number"), UnitPrice: Num("")},
	}
	total := TotalAmount(items)
	assert.False(t, math.IsNaN(total))
	assert.Equal(t, "13.00", Money(total))
}

func TestFriendlyTime(t *testing.T) {
	assert.Equal(t, "2026-01-11 22:29", FriendlyTime("2026-01-11 22:29:11.860346+00"))
	assert.Equal(t, "2026-01-11", FriendlyTime("2026-01-11"))
	assert.Equal(t, "-", FriendlyTime(""))
}

func TestItemAmount(t *testing.T) {
	it := Item{UnitsPcs: 10, UnitPrice: 299.99}
	assert.Equal(t, 2999.9, it.Amount())
}
