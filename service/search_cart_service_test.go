package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/models"
)

func TestSearchService_Search(t *testing.T) {
	client := newFakeClient()
	client.search = &models.SearchResult{Products: []models.ProductCard{{Handle: "coat"}}}
	svc := NewSearchService(client)
	ctx := context.Background()

	res, err := svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, res.Products)
	assert.Empty(t, client.searchCalls)

	res, err = svc.Search(ctx, "  warm \t coat ")
	require.NoError(t, err)
	assert.Equal(t, "warm coat", res.Query)
	assert.Len(t, res.Products, 1)

	_, err = svc.Search(ctx, strings.Repeat("ñ", 300))
	require.NoError(t, err)
	require.Len(t, client.searchCalls, 2)
	assert.Equal(t, maxSearchQueryLen, utf8.RuneCountInString(client.searchCalls[1]))
}

func TestCartService_GetCart(t *testing.T) {
	client := newFakeClient()
	svc := NewCartService(client)

	cart, err := svc.GetCart(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, cart.ID)
	assert.Empty(t, cart.Lines)

	_, err = svc.GetCart(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_AddLine(t *testing.T) {
	client := newFakeClient()
	svc := NewCartService(client)
	ctx := context.Background()

	cart, err := svc.AddLine(ctx, "", models.CartLineInput{MerchandiseID: " v1 ", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "cart-new", cart.ID)
	assert.Equal(t, "v1", cart.Lines[0].Merchandise.ID)

	cart, err = svc.AddLine(ctx, cart.ID, models.CartLineInput{MerchandiseID: "v2", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, cart.TotalQuantity)
	assert.Equal(t, 1, client.created)
}

func TestCartService_AddLineRecreatesExpiredCart(t *testing.T) {
	client := newFakeClient()
	svc := NewCartService(client)

	cart, err := svc.AddLine(context.Background(), "expired", models.CartLineInput{MerchandiseID: "v1", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "cart-new", cart.ID)
	assert.Equal(t, 1, client.created)
}

func TestCartService_AddLineValidation(t *testing.T) {
	svc := NewCartService(newFakeClient())
	for _, in := range []models.CartLineInput{
		{MerchandiseID: "", Quantity: 1},
		{MerchandiseID: "v1", Quantity: 0},
		{MerchandiseID: "v1", Quantity: 100},
	} {
		_, err := svc.AddLine(context.Background(), "", in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}
