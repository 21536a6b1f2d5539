package aggregate

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payrecon/domain/recon"
)

func amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestAggregate(t *testing.T) {
	rows := []recon.CanonicalRow{
		{Key: "111", Label: "ANA", Amount: amount("10.50")},
		{Key: "222", Label: "BRUNO", Amount: amount("7")},
		{Key: "111", Label: "ANA", Amount: amount("4.50")},
		{Key: "111", Label: "ANA MARIA", Amount: amount("1")},
		{Key: "222", Label: "BRUNO", Amount: decimal.NullDecimal{}},
	}

	got := Aggregate(rows)
	require.Len(t, got, 3)

	assert.Equal(t, "111", got[0].Key)
	assert.Equal(t, "ANA", got[0].Label)
	assert.True(t, decimal.NewFromInt(15).Equal(got[0].Total))
	assert.Equal(t, 2, got[0].Rows)

	assert.Equal(t, "ANA MARIA", got[1].Label, "same key with another name is not merged")
	assert.True(t, decimal.NewFromInt(1).Equal(got[1].Total))

	assert.Equal(t, "222", got[2].Key)
	assert.True(t, decimal.NewFromInt(7).Equal(got[2].Total))
	assert.Equal(t, 1, got[2].MissingAmounts)
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.True(t, Total(got).IsZero())
}

func TestAggregateAllMissing(t *testing.T) {
	got := Aggregate([]recon.CanonicalRow{{Key: "1", Label: "X"}, {Key: "1", Label: "X"}})
	require.Len(t, got, 1)
	assert.True(t, got[0].Total.IsZero())
	assert.Equal(t, 2, got[0].MissingAmounts)
}

func TestAggregateSumProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var rows []recon.CanonicalRow
	expected := make(map[[2]string]decimal.Decimal)

	for i := 0; i < 500; i++ {
		key := fmt.Sprintf("%03d", rng.Intn(20))
		label := fmt.Sprintf("N%d", rng.Intn(3))
		var amt decimal.NullDecimal
		if rng.Intn(10) > 0 {
			amt = decimal.NewNullDecimal(decimal.New(int64(rng.Intn(100000)-50000), -2))
			expected[[2]string{key, label}] = expected[[2]string{key, label}].Add(amt.Decimal)
		} else if _, ok := expected[[2]string{key, label}]; !ok {
			expected[[2]string{key, label}] = decimal.Zero
		}
		rows = append(rows, recon.CanonicalRow{Key: key, Label: label, Amount: amt})
	}

	got := Aggregate(rows)
	assert.Len(t, got, len(expected))

	seen := make(map[[2]string]bool)
	for _, r := range got {
		pair := [2]string{r.Key, r.Label}
		assert.False(t, seen[pair], "pair %v appears twice", pair)
		seen[pair] = true

		total, ok := TotalFor(got, r.Key, r.Label)
		require.True(t, ok)
		assert.True(t, expected[pair].Equal(total), "pair %v: want %s got %s", pair, expected[pair], total)
	}
}
