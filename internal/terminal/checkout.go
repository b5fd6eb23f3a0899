package terminal

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos/internal/checkout"
	"pos/internal/loyalty"
	"pos/internal/member"
	"pos/internal/models"
)

// MemberState is the outcome of the last member lookup in this checkout.
type MemberState struct {
	Status string         `json:"status"`
	Phone  string         `json:"phone,omitempty"`
	Member *models.Member `json:"member,omitempty"`
}

// LoyaltyPreview shows what the attached member would earn for the cart.
type LoyaltyPreview struct {
	PointsToEarn int                `json:"pointsToEarn"`
	NextTier     *loyalty.BonusTier `json:"nextTier,omitempty"`
	SpendToNext  float64            `json:"spendToNext,omitempty"`
}

type CheckoutView struct {
	State    checkout.State   `json:"state"`
	Channel  models.Channel   `json:"channel"`
	Lines    []LineView       `json:"lines"`
	Total    float64          `json:"total"`
	Input    checkout.Input   `json:"input"`
	Verdict  checkout.Verdict `json:"verdict"`
	InFlight bool             `json:"inFlight"`
	Member   MemberState      `json:"member"`
	Loyalty  *LoyaltyPreview  `json:"loyalty,omitempty"`
}

// PaymentInput is what the operator enters on the payment screen.
type PaymentInput struct {
	Method        models.PaymentMethod
	CashReceived  *float64
	ReferenceCode string
	MemberPhone   string
}

type ConfirmResult struct {
	Order        models.Order
	Change       *float64
	PointsEarned int
	// EffectErr is set when crediting points failed; the order still stands.
	EffectErr error
}

// BeginCheckout opens the payment screen for the active channel. Any member
// attached to an earlier attempt is dropped.
func (t *Terminal) BeginCheckout() (CheckoutView, error) {
	t.detachMember()
	v, err := t.checkout.Begin(t.Channel())
	if err != nil {
		return CheckoutView{}, err
	}
	return t.decorate(v), nil
}

// UpdateCheckout stores the payment details. A member phone triggers a
// lookup once enough digits are present; lookup problems never block the
// checkout, they only leave the member unattached.
func (t *Terminal) UpdateCheckout(ctx context.Context, in PaymentInput) (CheckoutView, error) {
	if t.checkout.State() != checkout.CollectingPaymentDetails {
		return CheckoutView{}, checkout.ErrNotCollecting
	}

	state := t.resolveMember(ctx, in.MemberPhone)
	t.mu.Lock()
	t.member = state
	t.mu.Unlock()

	input := checkout.Input{
		Method:        in.Method,
		CashReceived:  in.CashReceived,
		ReferenceCode: in.ReferenceCode,
	}
	if state.Status == MemberAttached {
		input.MemberPhone = state.Member.Phone
	}

	v, err := t.checkout.Update(input)
	if err != nil {
		return CheckoutView{}, err
	}
	return t.decorate(v), nil
}

func (t *Terminal) resolveMember(ctx context.Context, raw string) MemberState {
	phone := member.NormalizePhone(raw)
	if phone == "" {
		return MemberState{Status: MemberNone}
	}

	t.mu.RLock()
	current := t.member
	t.mu.RUnlock()
	if current.Status == MemberAttached && current.Phone == phone {
		return current
	}

	m, err := t.members.Lookup(ctx, phone)
	switch {
	case err == nil:
		return MemberState{Status: MemberAttached, Phone: phone, Member: &m}
	case errors.Is(err, member.ErrPhoneIncomplete):
		return MemberState{Status: MemberIncomplete, Phone: phone}
	case errors.Is(err, member.ErrMemberNotFound):
		return MemberState{Status: MemberNotFound, Phone: phone}
	case errors.Is(err, member.ErrMemberExpired):
		return MemberState{Status: MemberExpired, Phone: phone}
	default:
		t.logger.Warn("member lookup failed", zap.String("phone", phone), zap.Error(err))
		return MemberState{Status: MemberUnavailable, Phone: phone}
	}
}

// RegisterMember creates a member and, while a checkout is collecting
// payment details, attaches it.
func (t *Terminal) RegisterMember(ctx context.Context, phone, nickname string) (models.Member, error) {
	m, err := t.members.Register(ctx, phone, nickname)
	if err != nil {
		return m, err
	}

	if t.checkout.State() != checkout.CollectingPaymentDetails {
		return m, nil
	}
	t.mu.Lock()
	t.member = MemberState{Status: MemberAttached, Phone: m.Phone, Member: &m}
	t.mu.Unlock()

	in := t.checkout.View().Input
	in.MemberPhone = m.Phone
	if _, err := t.checkout.Update(in); err != nil && !errors.Is(err, checkout.ErrNotCollecting) {
		return m, err
	}
	return m, nil
}

func (t *Terminal) CheckoutView() CheckoutView {
	return t.decorate(t.checkout.View())
}

func (t *Terminal) decorate(v checkout.View) CheckoutView {
	t.mu.RLock()
	ms := t.member
	t.mu.RUnlock()

	out := CheckoutView{
		State:    v.State,
		Channel:  v.Channel,
		Lines:    lineViews(v.Lines),
		Total:    v.Total,
		Input:    v.Input,
		Verdict:  v.Verdict,
		InFlight: v.InFlight,
		Member:   ms,
	}
	if ms.Status == MemberAttached {
		out.Loyalty = t.preview(v.Total)
	}
	return out
}

func (t *Terminal) preview(total float64) *LoyaltyPreview {
	p := &LoyaltyPreview{PointsToEarn: t.loyalty.Points(total)}
	if next, ok := t.loyalty.Next(total); ok {
		p.NextTier = &next
		p.SpendToNext = decimal.NewFromFloat(next.MinimumSpend).Sub(decimal.NewFromFloat(total)).InexactFloat64()
	}
	return p
}

// Confirm submits the order. The attached member is dropped once the order
// is stored.
func (t *Terminal) Confirm(ctx context.Context) (ConfirmResult, error) {
	res, err := t.checkout.Confirm(ctx)
	if err != nil {
		return ConfirmResult{}, err
	}
	t.detachMember()

	out := ConfirmResult{Order: res.Order, Change: res.Change, EffectErr: res.Effect.Err}
	if res.Effect.Ran && res.Effect.Err == nil {
		out.PointsEarned = t.loyalty.Points(res.Order.Total)
	}
	return out, nil
}

func (t *Terminal) CancelCheckout() error {
	if err := t.checkout.Cancel(); err != nil {
		return err
	}
	t.detachMember()
	return nil
}

func (t *Terminal) detachMember() {
	t.mu.Lock()
	t.member = MemberState{}
	t.mu.Unlock()
}
