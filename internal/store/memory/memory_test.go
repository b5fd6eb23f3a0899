package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos/internal/models"
	"pos/internal/store"
)

func TestOrdersNewestFirstAndCloseDay(t *testing.T) {
	ctx := context.Background()
	s := New()

	first, err := s.AddOrder(ctx, models.Order{Channel: models.ChannelPOS, Total: 100})
	require.NoError(t, err)
	second, err := s.AddOrder(ctx, models.Order{Channel: models.ChannelGrab, Total: 200})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	orders, err := s.FetchOrders(ctx, store.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)

	closed, err := s.CloseDayOrders(ctx, []string{first.ID, second.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, closed)

	open, err := s.FetchOrders(ctx, store.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, open)

	all, err := s.CountOrders(ctx, store.OrderFilter{IncludeHistory: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all)
}

func TestClearOrdersKeepsHistory(t *testing.T) {
	ctx := context.Background()
	s := New()

	old, err := s.AddOrder(ctx, models.Order{Total: 1})
	require.NoError(t, err)
	_, err = s.CloseDayOrders(ctx, []string{old.ID})
	require.NoError(t, err)
	_, err = s.AddOrder(ctx, models.Order{Total: 2})
	require.NoError(t, err)

	n, err := s.ClearOrders(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	left, err := s.CountOrders(ctx, store.OrderFilter{IncludeHistory: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, left)
}

func TestStoredOrderIsIsolatedFromCaller(t *testing.T) {
	ctx := context.Background()
	s := New()

	o := models.Order{Items: []models.OrderItem{{ProductID: "p1", Quantity: 1,
		Modifier: &models.OrderModifier{OptionIDs: []string{"o1"}}}}}
	saved, err := s.AddOrder(ctx, o)
	require.NoError(t, err)

	o.Items[0].Quantity = 5
	o.Items[0].Modifier.OptionIDs[0] = "changed"

	got, err := s.FindOrder(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Items[0].Quantity)
	assert.Equal(t, "o1", got.Items[0].Modifier.OptionIDs[0])
}

func TestMemberLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	m, err := s.FindByPhone(ctx, "0812345678")
	require.NoError(t, err)
	assert.Nil(t, m)

	_, err = s.Insert(ctx, models.Member{Phone: "0812345678", Nickname: "Nok", Tier: models.DefaultTier})
	require.NoError(t, err)
	_, err = s.Insert(ctx, models.Member{Phone: "0812345678"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	points := 12
	updated, err := s.Update(ctx, "0812345678", store.MemberPatch{Points: &points})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Points)
	assert.Equal(t, "Nok", updated.Nickname)

	require.NoError(t, s.Delete(ctx, "0812345678"))
	assert.ErrorIs(t, s.Delete(ctx, "0812345678"), store.ErrNotFound)
}

func TestDeleteModifierGroupDetachesFromProducts(t *testing.T) {
	ctx := context.Background()
	s := New()

	g, err := s.AddModifierGroup(ctx, models.ModifierGroup{Name: "Size"})
	require.NoError(t, err)
	p, err := s.AddProduct(ctx, models.Product{Name: "Rice", Price: 60, ModifierGroupIDs: models.StringList{g.ID, "other"}})
	require.NoError(t, err)

	require.NoError(t, s.DeleteModifierGroup(ctx, g.ID))

	got, err := s.FindProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"other"}, got.ModifierGroupIDs)
}

func TestProductPatchClearsChannelOverride(t *testing.T) {
	ctx := context.Background()
	s := New()

	p, err := s.AddProduct(ctx, models.Product{Name: "Tea", Price: 40,
		ChannelPrices: map[models.Channel]float64{models.ChannelGrab: 55, models.ChannelShopee: 50}})
	require.NoError(t, err)

	lineman := 52.0
	got, err := s.UpdateProduct(ctx, p.ID, store.ProductPatch{ChannelPrices: map[models.Channel]*float64{
		models.ChannelGrab:    nil,
		models.ChannelLineman: &lineman,
	}})
	require.NoError(t, err)
	assert.Equal(t, map[models.Channel]float64{models.ChannelShopee: 50, models.ChannelLineman: 52}, got.ChannelPrices)
}

func TestCategoryNamesAreUnique(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.AddCategory(ctx, models.Category{Name: "Drinks"})
	require.NoError(t, err)
	_, err = s.AddCategory(ctx, models.Category{Name: "drinks"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestSettleOrderOnlyOnce(t *testing.T) {
	ctx := context.Background()
	s := New()

	o, err := s.AddOrder(ctx, models.Order{Channel: models.ChannelLineman, Total: 130})
	require.NoError(t, err)

	settled, err := s.SettleOrder(ctx, o.ID, 104)
	require.NoError(t, err)
	assert.True(t, settled.IsSettled)
	assert.Equal(t, 104.0, settled.ActualAmount)

	_, err = s.SettleOrder(ctx, o.ID, 120)
	assert.ErrorIs(t, err, store.ErrConflict)

	_, err = s.SettleOrder(ctx, "missing", 1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.FindOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 104.0, got.ActualAmount)
}

func TestCloseDayOrdersOnlyListed(t *testing.T) {
	ctx := context.Background()
	s := New()

	listed, err := s.AddOrder(ctx, models.Order{Total: 1})
	require.NoError(t, err)
	_, err = s.AddOrder(ctx, models.Order{Total: 2})
	require.NoError(t, err)

	n, err := s.CloseDayOrders(ctx, []string{listed.ID, "missing"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	open, err := s.CountOrders(ctx, store.OrderFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, open)
}
