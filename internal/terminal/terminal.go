// Package terminal is the single operator terminal that owns the cart and the
// checkout in progress. Every cart mutation goes through the checkout
// orchestrator so nothing changes while an order is being submitted.
package terminal

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"pos/internal/cart"
	"pos/internal/catalog"
	"pos/internal/checkout"
	"pos/internal/loyalty"
	"pos/internal/member"
	"pos/internal/models"
)

var ErrInvalidChannel = errors.New("invalid channel")

// Member attachment states shown during checkout.
const (
	MemberNone        = ""
	MemberAttached    = "attached"
	MemberIncomplete  = "incomplete"
	MemberNotFound    = "not_found"
	MemberExpired     = "expired"
	MemberUnavailable = "unavailable"
)

type Terminal struct {
	catalog  *catalog.Service
	checkout *checkout.Orchestrator
	members  *member.Service
	loyalty  loyalty.Config
	logger   *zap.Logger

	mu      sync.RWMutex
	channel models.Channel
	member  MemberState
}

func New(cat *catalog.Service, orch *checkout.Orchestrator, members *member.Service, cfg loyalty.Config, logger *zap.Logger) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Terminal{
		catalog:  cat,
		checkout: orch,
		members:  members,
		loyalty:  cfg,
		logger:   logger,
		channel:  models.ChannelPOS,
	}
}

func (t *Terminal) Channel() models.Channel {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.channel
}

// SetChannel switches the channel new items are priced for. Lines already in
// the cart keep the price they were added with. A checkout collecting
// payment details for the old channel is cancelled.
func (t *Terminal) SetChannel(ch models.Channel) error {
	if !ch.Valid() {
		return errors.Wrapf(ErrInvalidChannel, "%q", ch)
	}

	t.mu.Lock()
	changed := t.channel != ch
	t.channel = ch
	t.mu.Unlock()

	if changed && t.checkout.State() == checkout.CollectingPaymentDetails {
		if err := t.checkout.Cancel(); err != nil && !errors.Is(err, checkout.ErrNotCollecting) {
			return err
		}
		t.detachMember()
	}
	return nil
}

// AddItem adds one unit of the product with the given options toggled on.
func (t *Terminal) AddItem(_ context.Context, productID string, optionIDs []string) (cart.Line, error) {
	composer, product, err := t.catalog.Composer(productID)
	if err != nil {
		return cart.Line{}, err
	}
	for _, id := range optionIDs {
		if err := composer.Toggle(id); err != nil {
			return cart.Line{}, err
		}
	}
	mod := composer.Modifier()
	ch := t.Channel()

	var line cart.Line
	err = t.checkout.Mutate(func(c *cart.Cart) error {
		line = c.Add(product, ch, mod)
		return nil
	})
	if err != nil {
		return cart.Line{}, err
	}
	return line, nil
}

func (t *Terminal) Increase(key cart.LineKey) (cart.Line, error) {
	var line cart.Line
	err := t.checkout.Mutate(func(c *cart.Cart) error {
		var err error
		line, err = c.Increase(key)
		return err
	})
	return line, err
}

func (t *Terminal) Decrease(key cart.LineKey) (cart.Line, bool, error) {
	var (
		line    cart.Line
		removed bool
	)
	err := t.checkout.Mutate(func(c *cart.Cart) error {
		var err error
		line, removed, err = c.Decrease(key)
		return err
	})
	return line, removed, err
}

func (t *Terminal) Remove(key cart.LineKey) error {
	return t.checkout.Mutate(func(c *cart.Cart) error {
		return c.Remove(key)
	})
}

func (t *Terminal) ClearCart() error {
	return t.checkout.Mutate(func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

// ModifierView is the display form of a line's modifier selection.
type ModifierView struct {
	OptionIDs []string `json:"optionIds"`
	Name      string   `json:"name"`
	Delta     float64  `json:"delta"`
}

type LineView struct {
	Key       string         `json:"key"`
	ProductID string         `json:"productId"`
	Name      string         `json:"name"`
	Category  string         `json:"category,omitempty"`
	Channel   models.Channel `json:"channel"`
	Modifier  *ModifierView  `json:"modifier,omitempty"`
	UnitPrice float64        `json:"unitPrice"`
	Quantity  int            `json:"quantity"`
	Subtotal  float64        `json:"subtotal"`
}

func NewLineView(l cart.Line) LineView {
	v := LineView{
		Key:       l.Key.Token(),
		ProductID: l.Key.ProductID,
		Name:      l.Name,
		Category:  l.Category,
		Channel:   l.Key.Channel,
		UnitPrice: l.UnitPrice,
		Quantity:  l.Quantity,
		Subtotal:  l.Subtotal(),
	}
	if sel, ok := l.Modifier.Selection(); ok {
		v.Modifier = &ModifierView{OptionIDs: sel.Options.IDs(), Name: sel.Name, Delta: sel.Delta}
	}
	return v
}

func lineViews(lines []cart.Line) []LineView {
	out := make([]LineView, 0, len(lines))
	for _, l := range lines {
		out = append(out, NewLineView(l))
	}
	return out
}

type CartView struct {
	Channel  models.Channel `json:"channel"`
	Lines    []LineView     `json:"lines"`
	Total    float64        `json:"total"`
	Quantity int            `json:"quantity"`
}

func (t *Terminal) Cart() CartView {
	v := CartView{Channel: t.Channel()}
	t.checkout.Read(func(c *cart.Cart) {
		v.Lines = lineViews(c.Lines())
		v.Total = c.Total()
		v.Quantity = c.Quantity()
	})
	return v
}
