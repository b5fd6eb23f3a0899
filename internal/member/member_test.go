package member

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pos/internal/checkout"
	"pos/internal/loyalty"
	"pos/internal/mocks"
	"pos/internal/models"
	"pos/internal/store"
)

const phone = "0812345678"

type fixture struct {
	members *mocks.MockMemberStore
	rewards *mocks.MockRewardStore
	ledger  *mocks.MockPointLedger
	svc     *Service
	now     time.Time
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		members: mocks.NewMockMemberStore(ctrl),
		rewards: mocks.NewMockRewardStore(ctrl),
		ledger:  mocks.NewMockPointLedger(ctrl),
		now:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(f.members, f.rewards, f.ledger, nil)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func TestLookupNeedsNineDigits(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Lookup(context.Background(), "08123-456")
	assert.ErrorIs(t, err, ErrPhoneIncomplete)
}

func TestLookup(t *testing.T) {
	f := newFixture(t)
	f.members.EXPECT().FindByPhone(gomock.Any(), phone).
		Return(&models.Member{Phone: phone, Nickname: "Nok", Points: 40}, nil)

	m, err := f.svc.Lookup(context.Background(), "081-234-5678")
	require.NoError(t, err)
	assert.Equal(t, "Nok", m.Nickname)
}

func TestLookupNotFound(t *testing.T) {
	f := newFixture(t)
	f.members.EXPECT().FindByPhone(gomock.Any(), phone).Return(nil, nil)

	_, err := f.svc.Lookup(context.Background(), phone)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestLookupExpired(t *testing.T) {
	f := newFixture(t)
	expired := f.now.Add(-time.Hour)
	f.members.EXPECT().FindByPhone(gomock.Any(), phone).
		Return(&models.Member{Phone: phone, ExpiresAt: &expired}, nil)

	_, err := f.svc.Lookup(context.Background(), phone)
	assert.ErrorIs(t, err, ErrMemberExpired)
}

func TestRegisterStartsAtZeroPoints(t *testing.T) {
	f := newFixture(t)
	f.members.EXPECT().FindByPhone(gomock.Any(), phone).Return(nil, nil)
	f.members.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m models.Member) (models.Member, error) {
			assert.Equal(t, 0, m.Points)
			assert.Equal(t, models.DefaultTier, m.Tier)
			assert.Equal(t, f.now, m.CreatedAt)
			return m, nil
		})

	m, err := f.svc.Register(context.Background(), phone, " Nok ")
	require.NoError(t, err)
	assert.Equal(t, "Nok", m.Nickname)
}

func TestRegisterExisting(t *testing.T) {
	f := newFixture(t)
	f.members.EXPECT().FindByPhone(gomock.Any(), phone).Return(&models.Member{Phone: phone}, nil)

	_, err := f.svc.Register(context.Background(), phone, "Nok")
	assert.ErrorIs(t, err, ErrMemberExists)
}

func TestRegisterRace(t *testing.T) {
	f := newFixture(t)
	f.members.EXPECT().FindByPhone(gomock.Any(), phone).Return(nil, nil)
	f.members.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(models.Member{}, errors.Wrap(store.ErrDuplicate, "member"))

	_, err := f.svc.Register(context.Background(), phone, "Nok")
	assert.ErrorIs(t, err, ErrMemberExists)
}

func TestApplyOrderAddsPointsAndSpend(t *testing.T) {
	f := newFixture(t)
	cfg := loyalty.Config{
		Rate:  loyalty.PointRate{UnitsOfCurrency: 10, PointsPerUnit: 1},
		Tiers: []loyalty.BonusTier{{MinimumSpend: 200, Multiplier: 2}},
	}

	f.members.EXPECT().FindByPhone(gomock.Any(), phone).
		Return(&models.Member{Phone: phone, Points: 5, TotalSpent: 100}, nil)
	f.members.EXPECT().Update(gomock.Any(), phone, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, patch store.MemberPatch) (models.Member, error) {
			require.NotNil(t, patch.Points)
			require.NotNil(t, patch.TotalSpent)
			assert.Equal(t, 55, *patch.Points)
			assert.Equal(t, 350.0, *patch.TotalSpent)
			return models.Member{Phone: phone, Points: *patch.Points, TotalSpent: *patch.TotalSpent}, nil
		})
	f.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, h models.PointHistory) (models.PointHistory, error) {
			assert.Equal(t, models.PointsEarned, h.Type)
			assert.Equal(t, 50, h.Points)
			assert.Equal(t, "order-9", h.OrderID)
			return h, nil
		})

	m, earned, err := f.svc.ApplyOrder(context.Background(), models.Order{ID: "order-9", Total: 250, MemberPhone: phone}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 50, earned)
	assert.Equal(t, 55, m.Points)
}

func TestApplyOrderLedgerFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)

	f.members.EXPECT().FindByPhone(gomock.Any(), phone).Return(&models.Member{Phone: phone}, nil)
	f.members.EXPECT().Update(gomock.Any(), phone, gomock.Any()).Return(models.Member{Phone: phone, Points: 9}, nil)
	f.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(models.PointHistory{}, errors.New("ledger down"))

	_, earned, err := f.svc.ApplyOrder(context.Background(), models.Order{Total: 95, MemberPhone: phone}, loyalty.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 9, earned)
}

func TestApplyOrderWithoutMember(t *testing.T) {
	f := newFixture(t)

	_, earned, err := f.svc.ApplyOrder(context.Background(), models.Order{Total: 95}, loyalty.DefaultConfig())
	require.NoError(t, err)
	assert.Zero(t, earned)
}

func TestRedeem(t *testing.T) {
	f := newFixture(t)
	reward := models.Reward{ID: "r1", Name: "Free tea", PointsRequired: 30, IsActive: true}

	f.rewards.EXPECT().FindReward(gomock.Any(), "r1").Return(reward, nil)
	f.members.EXPECT().FindByPhone(gomock.Any(), phone).Return(&models.Member{Phone: phone, Points: 45}, nil)
	f.members.EXPECT().Update(gomock.Any(), phone, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, patch store.MemberPatch) (models.Member, error) {
			assert.Equal(t, 15, *patch.Points)
			assert.Nil(t, patch.TotalSpent)
			return models.Member{Phone: phone, Points: 15}, nil
		})
	f.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, h models.PointHistory) (models.PointHistory, error) {
			assert.Equal(t, models.PointsRedeemed, h.Type)
			assert.Equal(t, "r1", h.RewardID)
			return h, nil
		})

	m, err := f.svc.Redeem(context.Background(), phone, "r1")
	require.NoError(t, err)
	assert.Equal(t, 15, m.Points)
}

func TestRedeemInsufficientPoints(t *testing.T) {
	f := newFixture(t)

	f.rewards.EXPECT().FindReward(gomock.Any(), "r1").Return(models.Reward{ID: "r1", PointsRequired: 30, IsActive: true}, nil)
	f.members.EXPECT().FindByPhone(gomock.Any(), phone).Return(&models.Member{Phone: phone, Points: 29}, nil)

	_, err := f.svc.Redeem(context.Background(), phone, "r1")
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestRedeemInactiveReward(t *testing.T) {
	f := newFixture(t)

	f.rewards.EXPECT().FindReward(gomock.Any(), "r1").Return(models.Reward{ID: "r1", PointsRequired: 1}, nil)

	_, err := f.svc.Redeem(context.Background(), phone, "r1")
	assert.ErrorIs(t, err, ErrRewardInactive)
}

func TestLoyaltyEffectIsPostCheckoutEffect(t *testing.T) {
	f := newFixture(t)
	var effect checkout.PostCheckoutEffect = NewLoyaltyEffect(f.svc, loyalty.DefaultConfig())

	f.members.EXPECT().FindByPhone(gomock.Any(), phone).Return(nil, errors.New("timeout"))

	err := effect.AfterCheckout(context.Background(), models.Order{Total: 100, MemberPhone: phone})
	assert.Error(t, err)
}
