package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadia/storefront/internal/catalog"
)

func item(productID, price string, qty int) Item {
	return Item{
		ProductID: productID,
		Quantity:  qty,
		Product:   catalog.Product{ID: productID, Name: productID, Price: price},
	}
}

func TestBuildSummary_Empty(t *testing.T) {
	s, err := buildSummary(nil)
	require.NoError(t, err)
	assert.NotNil(t, s.Items)
	assert.Equal(t, 0, s.TotalItems)
	assert.Equal(t, "0.00", s.TotalPrice)
}

func TestBuildSummary_Totals(t *testing.T) {
	s, err := buildSummary([]Item{
		item("p1", "10.00", 2),
		item("p2", "5.25", 3),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, s.TotalItems)
	assert.Equal(t, "35.75", s.TotalPrice)
}

func TestBuildSummary_BankersRounding(t *testing.T) {
	s, err := buildSummary([]Item{item("p1", "0.125", 1)})
	require.NoError(t, err)
	assert.Equal(t, "0.12", s.TotalPrice)
}

func TestBuildSummary_InvalidPrice(t *testing.T) {
	_, err := buildSummary([]Item{item("p1", "not-a-price", 1)})
	assert.Error(t, err)
}
