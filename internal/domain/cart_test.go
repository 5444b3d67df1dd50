package domain

import (
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "plataforma-pedidos/internal/errors"
)

func product(id string, price int64) Product {
	return Product{ID: id, Name: "Producto " + id, Price: decimal.NewFromInt(price), Weight: "500gr"}
}

func TestCart_AddNewLine(t *testing.T) {
	c := NewCart()

	require.NoError(t, c.Add(product("girasol-500", 24), 2))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "girasol-500", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "500gr", lines[0].Weight)
}

func TestCart_AddExistingIncrements(t *testing.T) {
	c := NewCart()

	require.NoError(t, c.Add(product("a", 10), 2))
	require.NoError(t, c.Add(product("a", 10), 3))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestCart_AddRejectsNonPositive(t *testing.T) {
	c := NewCart()

	err := c.Add(product("a", 10), 0)

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.True(t, c.IsEmpty())
}

func TestCart_Remove(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(product("a", 10), 1))
	require.NoError(t, c.Add(product("b", 5), 1))

	c.Remove("a")
	c.Remove("missing")

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "b", lines[0].ProductID)
}

func TestCart_SetQuantity(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(product("a", 10), 1))

	require.NoError(t, c.SetQuantity("a", 7))
	line, ok := c.Line("a")
	require.True(t, ok)
	assert.Equal(t, 7, line.Quantity)

	c.SetQuantity("missing", 3)
	assert.Len(t, c.Lines(), 1)
}

func TestCart_SetQuantityZeroRemoves(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(product("a", 10), 4))

	c.SetQuantity("a", 0)
	assert.True(t, c.IsEmpty())

	require.NoError(t, c.Add(product("a", 10), 4))
	c.SetQuantity("a", -2)
	assert.True(t, c.IsEmpty())
}

func TestCart_TotalAndCount(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(product("a", 10), 2))
	require.NoError(t, c.Add(product("b", 5), 1))

	assert.Equal(t, "25.00", c.Total().StringFixed(2))
	assert.Equal(t, 3, c.Count())
}

func TestCart_TotalAppliesDiscountFromCurrentQuantity(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(product("girasol-500", 24), 19))
	assert.Equal(t, "456.00", c.Total().StringFixed(2))

	require.NoError(t, c.Add(product("girasol-500", 24), 1))
	assert.Equal(t, "436.80", c.Total().StringFixed(2))

	c.SetQuantity("girasol-500", 10)
	assert.Equal(t, "240.00", c.Total().StringFixed(2))
}

func TestCart_Clear(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(product("a", 10), 2))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Count())
	assert.True(t, c.Total().IsZero())
}

func TestCart_LinesReturnsCopy(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(product("a", 10), 2))

	lines := c.Lines()
	lines[0].Quantity = 99

	line, _ := c.Line("a")
	assert.Equal(t, 2, line.Quantity)
}

func TestNewCart_MergesDuplicatesAndDropsEmpty(t *testing.T) {
	c := NewCart(
		CartLine{ProductID: "a", UnitPrice: decimal.NewFromInt(1), Quantity: 1},
		CartLine{ProductID: "a", UnitPrice: decimal.NewFromInt(1), Quantity: 2},
		CartLine{ProductID: "b", UnitPrice: decimal.NewFromInt(1), Quantity: 0},
	)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestCart_RandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ids := []string{"a", "b", "c", "d"}
	prices := map[string]int64{"a": 16, "b": 24, "c": 22, "d": 28}
	c := NewCart()

	for i := 0; i < 2000; i++ {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(3) {
		case 0:
			require.NoError(t, c.Add(product(id, prices[id]), rng.Intn(25)+1))
		case 1:
			c.Remove(id)
		case 2:
			require.NoError(t, c.SetQuantity(id, rng.Intn(30)-5))
		}

		seen := map[string]bool{}
		expected := decimal.Zero
		count := 0
		for _, l := range c.Lines() {
			assert.False(t, seen[l.ProductID], "duplicate line for %s", l.ProductID)
			seen[l.ProductID] = true
			assert.Greater(t, l.Quantity, 0)
			expected = expected.Add(l.EffectiveUnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity))))
			count += l.Quantity
		}
		assert.True(t, expected.Equal(c.Total()))
		assert.Equal(t, count, c.Count())
	}
}

func TestCart_AddRejectsQuantityAboveMaximum(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(product("a", 24), MaxLineQuantity))

	err := c.Add(product("a", 24), 1)
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)

	line, found := c.Line("a")
	require.True(t, found)
	assert.Equal(t, MaxLineQuantity, line.Quantity)

	err = c.Add(product("b", 24), math.MaxInt)
	_, ok = apperrors.IsValidationError(err)
	assert.True(t, ok)
	_, found = c.Line("b")
	assert.False(t, found)
	assert.Equal(t, MaxLineQuantity, c.Count())
}

func TestCart_SetQuantityRejectsAboveMaximum(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(product("a", 10), 3))

	err := c.SetQuantity("a", math.MaxInt)
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)

	line, _ := c.Line("a")
	assert.Equal(t, 3, line.Quantity)
}

func TestNewCart_CapsStoredQuantities(t *testing.T) {
	c := NewCart(
		CartLine{ProductID: "a", UnitPrice: decimal.NewFromInt(1), Quantity: MaxLineQuantity},
		CartLine{ProductID: "a", UnitPrice: decimal.NewFromInt(1), Quantity: math.MaxInt},
	)

	line, ok := c.Line("a")
	require.True(t, ok)
	assert.Equal(t, MaxLineQuantity, line.Quantity)
}
