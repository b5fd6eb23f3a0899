// Package checkout turns a cart into an order. It owns the checkout state
// machine, the per-channel validation table and the post-checkout effect.
package checkout

//go:generate mockgen -destination=../mocks/checkout_mock.go -package=mocks pos/internal/checkout PostCheckoutEffect

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"pos/internal/cart"
	"pos/internal/models"
)

var (
	// ErrSubmissionInFlight is returned while an order is being submitted.
	ErrSubmissionInFlight = errors.New("checkout submission in progress")
	// ErrNotCollecting is returned when no checkout is collecting payment details.
	ErrNotCollecting = errors.New("checkout is not collecting payment details")
	// ErrUnknownChannel is returned for a channel with no checkout rule.
	ErrUnknownChannel = errors.New("unknown channel")
)

// ValidationError carries the reason the confirm action is blocked.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return "checkout blocked: " + e.Reason
}

// SubmitError wraps an order store failure. Cart and checkout state are
// left as they were so the operator can retry.
type SubmitError struct {
	Err error
}

func (e SubmitError) Error() string {
	return "order submission failed: " + e.Err.Error()
}

func (e SubmitError) Unwrap() error {
	return e.Err
}

type State int

const (
	Idle State = iota
	CollectingPaymentDetails
	Validating
	Confirmed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CollectingPaymentDetails:
		return "collecting_payment_details"
	case Validating:
		return "validating"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Input is the transient payment detail entered during one checkout attempt.
type Input struct {
	Method        models.PaymentMethod `json:"method"`
	CashReceived  *float64             `json:"cashReceived,omitempty"`
	ReferenceCode string               `json:"referenceCode"`
	MemberPhone   string               `json:"memberPhone,omitempty"`
}

// OrderStore is the part of the order store checkout needs.
type OrderStore interface {
	AddOrder(ctx context.Context, o models.Order) (models.Order, error)
}

// PostCheckoutEffect runs after an order has been stored. Its failure is
// reported on the Result but never fails the checkout.
type PostCheckoutEffect interface {
	AfterCheckout(ctx context.Context, order models.Order) error
}

// EffectFunc adapts a function to PostCheckoutEffect.
type EffectFunc func(ctx context.Context, order models.Order) error

func (f EffectFunc) AfterCheckout(ctx context.Context, order models.Order) error {
	return f(ctx, order)
}

// EffectResult reports the post-checkout effect separately from the order.
type EffectResult struct {
	Ran bool
	Err error
}

// Result of a successful confirm.
type Result struct {
	Order  models.Order
	Change *float64
	Effect EffectResult
}

// View is a snapshot of the checkout for display.
type View struct {
	State    State          `json:"state"`
	Channel  models.Channel `json:"channel"`
	Lines    []cart.Line    `json:"-"`
	Total    float64        `json:"total"`
	Input    Input          `json:"input"`
	Verdict  Verdict        `json:"verdict"`
	InFlight bool           `json:"inFlight"`
}

// Orchestrator guards the cart and one checkout attempt at a time.
type Orchestrator struct {
	mu       sync.Mutex
	cart     *cart.Cart
	orders   OrderStore
	effect   PostCheckoutEffect
	logger   *zap.Logger
	state    State
	channel  models.Channel
	input    Input
	inFlight bool
}

// New returns an orchestrator over c. effect may be nil.
func New(c *cart.Cart, orders OrderStore, effect PostCheckoutEffect, logger *zap.Logger) *Orchestrator {
	if c == nil {
		c = cart.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		cart:    c,
		orders:  orders,
		effect:  effect,
		logger:  logger,
		channel: models.ChannelPOS,
	}
}

// Mutate runs fn against the cart. Mutations are refused while an order is
// being submitted.
func (o *Orchestrator) Mutate(fn func(c *cart.Cart) error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inFlight {
		return ErrSubmissionInFlight
	}
	return fn(o.cart)
}

// Read runs fn against the cart without allowing submission to start.
func (o *Orchestrator) Read(fn func(c *cart.Cart)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(o.cart)
}

// Begin starts collecting payment details for ch. Input left over from an
// earlier attempt is discarded.
func (o *Orchestrator) Begin(ch models.Channel) (View, error) {
	rule, ok := RuleFor(ch)
	if !ok {
		return View{}, errors.Wrapf(ErrUnknownChannel, "%q", ch)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inFlight {
		return View{}, ErrSubmissionInFlight
	}
	o.channel = ch
	o.input = Input{Method: rule.DefaultMethod()}
	o.state = CollectingPaymentDetails
	return o.viewLocked(), nil
}

// Update replaces the payment details of the current attempt.
func (o *Orchestrator) Update(in Input) (View, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inFlight {
		return View{}, ErrSubmissionInFlight
	}
	if o.state != CollectingPaymentDetails {
		return View{}, ErrNotCollecting
	}
	if in.CashReceived != nil {
		received := *in.CashReceived
		in.CashReceived = &received
	}
	o.input = in
	return o.viewLocked(), nil
}

// Cancel abandons the current attempt. The cart is kept.
func (o *Orchestrator) Cancel() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inFlight {
		return ErrSubmissionInFlight
	}
	if o.state != CollectingPaymentDetails {
		return ErrNotCollecting
	}
	o.state = Cancelled
	o.input = Input{}
	return nil
}

func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.viewLocked()
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) viewLocked() View {
	v := View{
		State:    o.state,
		Channel:  o.channel,
		Lines:    o.cart.Lines(),
		Total:    o.cart.Total(),
		Input:    o.input,
		InFlight: o.inFlight,
	}
	if o.state == CollectingPaymentDetails {
		rule, _ := RuleFor(o.channel)
		v.Verdict = rule.Validate(v.Total, len(v.Lines), o.input)
	}
	return v
}

// Confirm validates the current input, submits the order and, on success,
// clears the cart and runs the post-checkout effect. A second call while a
// submission is pending returns ErrSubmissionInFlight.
func (o *Orchestrator) Confirm(ctx context.Context) (Result, error) {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return Result{}, ErrSubmissionInFlight
	}
	if o.state != CollectingPaymentDetails {
		o.mu.Unlock()
		return Result{}, ErrNotCollecting
	}

	o.state = Validating
	rule, _ := RuleFor(o.channel)
	total := o.cart.Total()
	verdict := rule.Validate(total, o.cart.Len(), o.input)
	if !verdict.OK {
		o.state = CollectingPaymentDetails
		o.mu.Unlock()
		return Result{}, ValidationError{Reason: verdict.Reason}
	}

	order := buildOrder(o.channel, rule, o.cart.Lines(), total, verdict, o.input.MemberPhone)
	o.inFlight = true
	o.mu.Unlock()

	saved, err := o.orders.AddOrder(ctx, order)

	o.mu.Lock()
	o.inFlight = false
	if err != nil {
		o.state = CollectingPaymentDetails
		o.mu.Unlock()
		o.logger.Error("order submission failed", zap.String("channel", string(order.Channel)), zap.Error(err))
		return Result{}, SubmitError{Err: err}
	}
	o.cart.Clear()
	o.input = Input{}
	o.state = Confirmed
	o.mu.Unlock()

	o.logger.Info("order confirmed",
		zap.String("orderId", saved.ID),
		zap.String("channel", string(saved.Channel)),
		zap.Float64("total", saved.Total),
	)

	return Result{
		Order:  saved,
		Change: verdict.Change,
		Effect: o.runEffect(ctx, saved),
	}, nil
}

func (o *Orchestrator) runEffect(ctx context.Context, order models.Order) (res EffectResult) {
	if o.effect == nil || order.MemberPhone == "" {
		return res
	}
	res.Ran = true

	defer func() {
		if r := recover(); r != nil {
			res.Err = errors.Errorf("post-checkout effect panicked: %v", r)
			o.logger.Error("post-checkout effect panicked", zap.String("orderId", order.ID), zap.Any("panic", r))
		}
	}()

	if err := o.effect.AfterCheckout(ctx, order); err != nil {
		res.Err = err
		o.logger.Warn("post-checkout effect failed",
			zap.String("orderId", order.ID),
			zap.String("memberPhone", order.MemberPhone),
			zap.Error(err),
		)
	}
	return res
}

// buildOrder snapshots lines so later cart changes cannot reach the order.
func buildOrder(ch models.Channel, rule Rule, lines []cart.Line, total float64, v Verdict, memberPhone string) models.Order {
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		item := models.OrderItem{
			ProductID: l.Key.ProductID,
			Name:      l.Name,
			Category:  l.Category,
			Channel:   l.Key.Channel,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
		if sel, ok := l.Modifier.Selection(); ok {
			item.Modifier = &models.OrderModifier{
				OptionIDs: sel.Options.IDs(),
				Name:      sel.Name,
				Delta:     sel.Delta,
			}
		}
		items = append(items, item)
	}

	order := models.Order{
		Channel:       ch,
		Items:         items,
		Total:         total,
		PaymentMethod: v.Method,
		MemberPhone:   memberPhone,
	}
	if rule.Delivery {
		order.PaymentMethod = rule.DefaultMethod()
		order.ReferenceCode = v.ReferenceCode
		order.IsSettled = false
		order.ActualAmount = 0
	} else {
		order.IsSettled = true
		order.ActualAmount = total
	}
	return order
}
