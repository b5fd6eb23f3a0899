package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pos/internal/cart"
	"pos/internal/mocks"
	"pos/internal/models"
	"pos/internal/pricing"
)

var (
	rice = models.Product{ID: "p-rice", Name: "Pork Rice", Category: "Rice", Price: 100,
		ChannelPrices: map[models.Channel]float64{models.ChannelGrab: 130}}
	tea = models.Product{ID: "p-tea", Name: "Thai Tea", Category: "Drinks", Price: 50}
)

type fixture struct {
	orders *mocks.MockOrderStore
	effect *mocks.MockPostCheckoutEffect
	orch   *Orchestrator
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		orders: mocks.NewMockOrderStore(ctrl),
		effect: mocks.NewMockPostCheckoutEffect(ctrl),
	}
	f.orch = New(cart.New(), f.orders, f.effect, nil)
	return f
}

func (f fixture) fill(t *testing.T, ch models.Channel) {
	t.Helper()
	require.NoError(t, f.orch.Mutate(func(c *cart.Cart) error {
		c.Add(rice, ch, pricing.NoModifier())
		c.Add(rice, ch, pricing.NoModifier())
		c.Add(tea, ch, pricing.NoModifier())
		return nil
	}))
}

func stored(o models.Order) (models.Order, error) {
	o.ID = "order-1"
	return o, nil
}

func TestConfirmPOSCash(t *testing.T) {
	f := newFixture(t)
	f.fill(t, models.ChannelPOS)

	_, err := f.orch.Begin(models.ChannelPOS)
	require.NoError(t, err)
	_, err = f.orch.Update(Input{Method: models.PaymentCash, CashReceived: amount(300)})
	require.NoError(t, err)

	f.orders.EXPECT().AddOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o models.Order) (models.Order, error) {
			assert.Equal(t, 250.0, o.Total)
			assert.True(t, o.IsSettled)
			assert.Equal(t, 250.0, o.ActualAmount)
			assert.Equal(t, models.PaymentCash, o.PaymentMethod)
			assert.Empty(t, o.ReferenceCode)
			assert.Len(t, o.Items, 2)
			return stored(o)
		})

	res, err := f.orch.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "order-1", res.Order.ID)
	require.NotNil(t, res.Change)
	assert.Equal(t, 50.0, *res.Change)
	assert.False(t, res.Effect.Ran, "no member attached")

	v := f.orch.View()
	assert.Equal(t, Confirmed, v.State)
	assert.Empty(t, v.Lines)
	assert.Equal(t, Input{}, v.Input)
}

func TestConfirmBlockedWhenCashShort(t *testing.T) {
	f := newFixture(t)
	f.fill(t, models.ChannelPOS)

	_, err := f.orch.Begin(models.ChannelPOS)
	require.NoError(t, err)
	v, err := f.orch.Update(Input{Method: models.PaymentCash, CashReceived: amount(249)})
	require.NoError(t, err)
	assert.False(t, v.Verdict.OK)

	_, err = f.orch.Confirm(context.Background())
	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, ReasonCashShort, verr.Reason)

	assert.Equal(t, CollectingPaymentDetails, f.orch.State())
	assert.Equal(t, 250.0, f.orch.View().Total)
}

func TestConfirmDeliveryOrderIsUnsettledTransfer(t *testing.T) {
	f := newFixture(t)
	f.fill(t, models.ChannelGrab)

	_, err := f.orch.Begin(models.ChannelGrab)
	require.NoError(t, err)
	_, err = f.orch.Update(Input{ReferenceCode: "4821"})
	require.NoError(t, err)

	f.orders.EXPECT().AddOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o models.Order) (models.Order, error) {
			assert.Equal(t, models.ChannelGrab, o.Channel)
			assert.Equal(t, models.PaymentTransfer, o.PaymentMethod)
			assert.Equal(t, "GF-4821", o.ReferenceCode)
			assert.False(t, o.IsSettled)
			assert.Equal(t, 0.0, o.ActualAmount)
			assert.Equal(t, 310.0, o.Total)
			return stored(o)
		})

	res, err := f.orch.Confirm(context.Background())
	require.NoError(t, err)
	assert.Nil(t, res.Change)
}

func TestConfirmGrabPrefixOnlyIsBlocked(t *testing.T) {
	f := newFixture(t)
	f.fill(t, models.ChannelGrab)

	_, err := f.orch.Begin(models.ChannelGrab)
	require.NoError(t, err)
	_, err = f.orch.Update(Input{ReferenceCode: "GF-"})
	require.NoError(t, err)

	_, err = f.orch.Confirm(context.Background())
	assert.ErrorAs(t, err, &ValidationError{})
}

func TestConfirmStoreFailureKeepsCart(t *testing.T) {
	f := newFixture(t)
	f.fill(t, models.ChannelPOS)

	_, err := f.orch.Begin(models.ChannelPOS)
	require.NoError(t, err)
	_, err = f.orch.Update(Input{Method: models.PaymentPromptPay})
	require.NoError(t, err)

	boom := errors.New("store unreachable")
	f.orders.EXPECT().AddOrder(gomock.Any(), gomock.Any()).Return(models.Order{}, boom)

	_, err = f.orch.Confirm(context.Background())
	var serr SubmitError
	require.True(t, errors.As(err, &serr))
	assert.ErrorIs(t, err, boom)

	v := f.orch.View()
	assert.Equal(t, CollectingPaymentDetails, v.State)
	assert.Len(t, v.Lines, 2)
	assert.Equal(t, models.PaymentPromptPay, v.Input.Method)

	// retry succeeds without re-entering anything
	f.orders.EXPECT().AddOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o models.Order) (models.Order, error) { return stored(o) })
	_, err = f.orch.Confirm(context.Background())
	require.NoError(t, err)
}

func TestBeginResetsStaleInput(t *testing.T) {
	f := newFixture(t)
	f.fill(t, models.ChannelPOS)

	_, err := f.orch.Begin(models.ChannelPOS)
	require.NoError(t, err)
	_, err = f.orch.Update(Input{Method: models.PaymentCash, CashReceived: amount(1000), ReferenceCode: "x"})
	require.NoError(t, err)
	require.NoError(t, f.orch.Cancel())

	v, err := f.orch.Begin(models.ChannelPOS)
	require.NoError(t, err)
	assert.Nil(t, v.Input.CashReceived)
	assert.Empty(t, v.Input.ReferenceCode)
	assert.Equal(t, models.PaymentCash, v.Input.Method)
}

func TestUpdateOutsideCollecting(t *testing.T) {
	f := newFixture(t)

	_, err := f.orch.Update(Input{})
	assert.ErrorIs(t, err, ErrNotCollecting)
	_, err = f.orch.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrNotCollecting)
	assert.ErrorIs(t, f.orch.Cancel(), ErrNotCollecting)
}

func TestOrderSnapshotIsIndependentOfCart(t *testing.T) {
	f := newFixture(t)
	mod := pricing.Selected(pricing.Selection{Options: pricing.NewOptionSet("o-egg"), Name: "Fried egg", Delta: 10})
	require.NoError(t, f.orch.Mutate(func(c *cart.Cart) error {
		c.Add(rice, models.ChannelPOS, mod)
		return nil
	}))

	_, err := f.orch.Begin(models.ChannelPOS)
	require.NoError(t, err)
	_, err = f.orch.Update(Input{Method: models.PaymentPromptPay})
	require.NoError(t, err)

	var captured models.Order
	f.orders.EXPECT().AddOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o models.Order) (models.Order, error) {
			captured = o
			return stored(o)
		})

	_, err = f.orch.Confirm(context.Background())
	require.NoError(t, err)

	require.NoError(t, f.orch.Mutate(func(c *cart.Cart) error {
		c.Add(rice, models.ChannelPOS, mod)
		return nil
	}))

	require.Len(t, captured.Items, 1)
	assert.Equal(t, 1, captured.Items[0].Quantity)
	assert.Equal(t, 110.0, captured.Items[0].UnitPrice)
	require.NotNil(t, captured.Items[0].Modifier)
	assert.Equal(t, []string{"o-egg"}, captured.Items[0].Modifier.OptionIDs)
}

func TestEffectFailureDoesNotFailCheckout(t *testing.T) {
	f := newFixture(t)
	f.fill(t, models.ChannelPOS)

	_, err := f.orch.Begin(models.ChannelPOS)
	require.NoError(t, err)
	_, err = f.orch.Update(Input{Method: models.PaymentPromptPay, MemberPhone: "0812345678"})
	require.NoError(t, err)

	f.orders.EXPECT().AddOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o models.Order) (models.Order, error) {
			assert.Equal(t, "0812345678", o.MemberPhone)
			return stored(o)
		})
	effectErr := errors.New("member store down")
	f.effect.EXPECT().AfterCheckout(gomock.Any(), gomock.Any()).Return(effectErr)

	res, err := f.orch.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "order-1", res.Order.ID)
	assert.True(t, res.Effect.Ran)
	assert.ErrorIs(t, res.Effect.Err, effectErr)
	assert.Equal(t, Confirmed, f.orch.State())
}

func TestEffectPanicIsContained(t *testing.T) {
	f := newFixture(t)
	f.fill(t, models.ChannelPOS)

	_, err := f.orch.Begin(models.ChannelPOS)
	require.NoError(t, err)
	_, err = f.orch.Update(Input{Method: models.PaymentPromptPay, MemberPhone: "0812345678"})
	require.NoError(t, err)

	f.orders.EXPECT().AddOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o models.Order) (models.Order, error) { return stored(o) })
	f.effect.EXPECT().AfterCheckout(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.Order) error { panic("nil member") })

	res, err := f.orch.Confirm(context.Background())
	require.NoError(t, err)
	assert.Error(t, res.Effect.Err)
}

func TestSecondConfirmWhileInFlightIsRejected(t *testing.T) {
	f := newFixture(t)
	f.fill(t, models.ChannelPOS)

	_, err := f.orch.Begin(models.ChannelPOS)
	require.NoError(t, err)
	_, err = f.orch.Update(Input{Method: models.PaymentPromptPay})
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	f.orders.EXPECT().AddOrder(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(
		func(_ context.Context, o models.Order) (models.Order, error) {
			close(entered)
			<-release
			return stored(o)
		})

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = f.orch.Confirm(context.Background())
	}()

	<-entered
	_, err = f.orch.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.ErrorIs(t, f.orch.Mutate(func(*cart.Cart) error { return nil }), ErrSubmissionInFlight)
	assert.True(t, f.orch.View().InFlight)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.False(t, f.orch.View().InFlight)
}

func TestEffectFuncAdapter(t *testing.T) {
	called := false
	var effect PostCheckoutEffect = EffectFunc(func(context.Context, models.Order) error {
		called = true
		return nil
	})

	require.NoError(t, effect.AfterCheckout(context.Background(), models.Order{}))
	assert.True(t, called)
}
