package terminal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos/internal/cart"
	"pos/internal/catalog"
	"pos/internal/checkout"
	"pos/internal/loyalty"
	"pos/internal/member"
	"pos/internal/models"
	"pos/internal/store"
	"pos/internal/store/memory"
)

type env struct {
	store *memory.Store
	term  *Terminal
	rice  models.Product
	tea   models.Product
}

func newEnv(t *testing.T) env {
	t.Helper()
	ctx := context.Background()
	s := memory.New()

	_, err := s.AddModifierGroup(ctx, models.ModifierGroup{ID: "g-size", Name: "Size",
		Options: []models.ModifierOption{{ID: "o-large", Name: "Large", Price: 20}}})
	require.NoError(t, err)
	_, err = s.AddModifierGroup(ctx, models.ModifierGroup{ID: "g-top", Name: "Topping",
		Options: []models.ModifierOption{{ID: "o-egg", Name: "Fried egg", Price: 10}}})
	require.NoError(t, err)
	rice, err := s.AddProduct(ctx, models.Product{Name: "Pork Rice", Category: "Rice", Price: 100,
		ChannelPrices:    map[models.Channel]float64{models.ChannelGrab: 130},
		ModifierGroupIDs: models.StringList{"g-size", "g-top"}})
	require.NoError(t, err)
	tea, err := s.AddProduct(ctx, models.Product{Name: "Thai Tea", Category: "Drinks", Price: 50})
	require.NoError(t, err)

	cat := catalog.NewService(s, nil)
	_, err = cat.Load(ctx)
	require.NoError(t, err)

	cfg := loyalty.Config{
		Rate:  loyalty.PointRate{UnitsOfCurrency: 10, PointsPerUnit: 1},
		Tiers: []loyalty.BonusTier{{MinimumSpend: 200, Multiplier: 2}},
	}
	members := member.NewService(s, s, s, nil)
	orch := checkout.New(cart.New(), s, member.NewLoyaltyEffect(members, cfg), nil)

	return env{store: s, term: New(cat, orch, members, cfg, nil), rice: rice, tea: tea}
}

func TestAddItemMergesAndSplitsByModifier(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.term.AddItem(ctx, e.rice.ID, nil)
	require.NoError(t, err)
	_, err = e.term.AddItem(ctx, e.rice.ID, nil)
	require.NoError(t, err)
	withMods, err := e.term.AddItem(ctx, e.rice.ID, []string{"o-egg", "o-large"})
	require.NoError(t, err)
	again, err := e.term.AddItem(ctx, e.rice.ID, []string{"o-large", "o-egg"})
	require.NoError(t, err)

	assert.Equal(t, withMods.Key, again.Key)
	assert.Equal(t, 130.0, again.UnitPrice)
	assert.Equal(t, "Large, Fried egg", again.Modifier.Name())

	view := e.term.Cart()
	require.Len(t, view.Lines, 2)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.Equal(t, 2, view.Lines[1].Quantity)
	assert.Equal(t, 460.0, view.Total)
}

func TestAddItemRejectsOptionOutsideProduct(t *testing.T) {
	e := newEnv(t)

	_, err := e.term.AddItem(context.Background(), e.tea.ID, []string{"o-large"})
	assert.Error(t, err)
	assert.Empty(t, e.term.Cart().Lines)
}

func TestChannelChangeDoesNotReprice(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.term.SetChannel(models.ChannelGrab))
	grabLine, err := e.term.AddItem(ctx, e.rice.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 130.0, grabLine.UnitPrice)

	require.NoError(t, e.term.SetChannel(models.ChannelPOS))
	line, err := e.term.Increase(grabLine.Key)
	require.NoError(t, err)
	assert.Equal(t, 130.0, line.UnitPrice)

	posLine, err := e.term.AddItem(ctx, e.rice.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 100.0, posLine.UnitPrice)
	assert.Len(t, e.term.Cart().Lines, 2)

	assert.ErrorIs(t, e.term.SetChannel("foodpanda"), ErrInvalidChannel)
}

func TestDecreaseToZeroRemovesLine(t *testing.T) {
	e := newEnv(t)

	line, err := e.term.AddItem(context.Background(), e.tea.ID, nil)
	require.NoError(t, err)
	_, removed, err := e.term.Decrease(line.Key)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, e.term.Cart().Lines)
}

func TestCheckoutWithMemberCreditsPoints(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.store.Insert(ctx, models.Member{Phone: "0812345678", Nickname: "Nok", Tier: models.DefaultTier})
	require.NoError(t, err)

	_, err = e.term.AddItem(ctx, e.rice.ID, nil)
	require.NoError(t, err)
	_, err = e.term.AddItem(ctx, e.rice.ID, nil)
	require.NoError(t, err)
	_, err = e.term.AddItem(ctx, e.tea.ID, nil)
	require.NoError(t, err)

	_, err = e.term.BeginCheckout()
	require.NoError(t, err)

	received := 300.0
	view, err := e.term.UpdateCheckout(ctx, PaymentInput{
		Method:       models.PaymentCash,
		CashReceived: &received,
		MemberPhone:  "081-234-5678",
	})
	require.NoError(t, err)
	assert.Equal(t, MemberAttached, view.Member.Status)
	require.NotNil(t, view.Loyalty)
	assert.Equal(t, 50, view.Loyalty.PointsToEarn)
	assert.Nil(t, view.Loyalty.NextTier)
	assert.True(t, view.Verdict.OK)

	res, err := e.term.Confirm(ctx)
	require.NoError(t, err)
	assert.NoError(t, res.EffectErr)
	assert.Equal(t, 50, res.PointsEarned)
	assert.Equal(t, 50.0, *res.Change)
	assert.Equal(t, "0812345678", res.Order.MemberPhone)

	m, err := e.store.FindByPhone(ctx, "0812345678")
	require.NoError(t, err)
	assert.Equal(t, 50, m.Points)
	assert.Equal(t, 250.0, m.TotalSpent)

	after := e.term.CheckoutView()
	assert.Empty(t, after.Lines)
	assert.Equal(t, checkout.Input{}, after.Input)
	assert.Equal(t, MemberNone, after.Member.Status)

	orders, err := e.store.FetchOrders(ctx, store.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestUnknownMemberCanRegister(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.term.AddItem(ctx, e.tea.ID, nil)
	require.NoError(t, err)
	_, err = e.term.BeginCheckout()
	require.NoError(t, err)

	view, err := e.term.UpdateCheckout(ctx, PaymentInput{Method: models.PaymentPromptPay, MemberPhone: "0899"})
	require.NoError(t, err)
	assert.Equal(t, MemberIncomplete, view.Member.Status)

	view, err = e.term.UpdateCheckout(ctx, PaymentInput{Method: models.PaymentPromptPay, MemberPhone: "0899999999"})
	require.NoError(t, err)
	assert.Equal(t, MemberNotFound, view.Member.Status)
	assert.Empty(t, view.Input.MemberPhone)

	m, err := e.term.RegisterMember(ctx, "0899999999", "Bee")
	require.NoError(t, err)
	assert.Zero(t, m.Points)

	view = e.term.CheckoutView()
	assert.Equal(t, MemberAttached, view.Member.Status)
	assert.Equal(t, "0899999999", view.Input.MemberPhone)
	require.NotNil(t, view.Loyalty)
	require.NotNil(t, view.Loyalty.NextTier)
	assert.Equal(t, 150.0, view.Loyalty.SpendToNext)
}

func TestChangingChannelCancelsCheckout(t *testing.T) {
	e := newEnv(t)

	_, err := e.term.AddItem(context.Background(), e.tea.ID, nil)
	require.NoError(t, err)
	_, err = e.term.BeginCheckout()
	require.NoError(t, err)

	require.NoError(t, e.term.SetChannel(models.ChannelShopee))
	assert.Equal(t, checkout.Cancelled, e.term.CheckoutView().State)
	assert.Len(t, e.term.Cart().Lines, 1)
}
