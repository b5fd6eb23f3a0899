// Package cart holds the in-progress order lines of a terminal.
package cart

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"pos/internal/models"
	"pos/internal/pricing"
)

var (
	ErrLineNotFound = errors.New("cart line not found")
	ErrMalformedKey = errors.New("malformed cart line key")
)

const keySeparator = "\x00"

// LineKey identifies a cart line. Adding a product whose key already exists
// merges into that line.
type LineKey struct {
	ProductID string
	Channel   models.Channel
	Options   pricing.OptionSet
}

// Token is a URL-safe encoding of the key.
func (k LineKey) Token() string {
	raw := k.ProductID + keySeparator + string(k.Channel) + keySeparator + k.Options.Encoded()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func ParseLineKey(token string) (LineKey, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return LineKey{}, errors.Wrap(ErrMalformedKey, err.Error())
	}
	parts := strings.SplitN(string(raw), keySeparator, 3)
	if len(parts) != 3 || parts[0] == "" {
		return LineKey{}, ErrMalformedKey
	}
	ch, err := models.ParseChannel(parts[1])
	if err != nil {
		return LineKey{}, errors.Wrap(ErrMalformedKey, err.Error())
	}
	opts, err := pricing.ParseOptionSet(parts[2])
	if err != nil {
		return LineKey{}, errors.Wrap(ErrMalformedKey, err.Error())
	}
	return LineKey{ProductID: parts[0], Channel: ch, Options: opts}, nil
}

// Line is one cart entry. UnitPrice is fixed when the line is created.
type Line struct {
	Key       LineKey
	Name      string
	Category  string
	Modifier  pricing.Modifier
	UnitPrice float64
	Quantity  int
}

func (l Line) Subtotal() float64 {
	return decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity))).InexactFloat64()
}

// Cart keeps lines in insertion order. It is not safe for concurrent use;
// the owning terminal serializes access.
type Cart struct {
	lines []*Line
}

func New() *Cart {
	return &Cart{}
}

// Add puts one unit of product on the cart, pricing it for ch plus the
// modifier delta when the line is new.
func (c *Cart) Add(product models.Product, ch models.Channel, mod pricing.Modifier) Line {
	key := LineKey{ProductID: product.ID, Channel: ch, Options: mod.Key()}
	if line := c.find(key); line != nil {
		line.Quantity++
		return *line
	}

	unit := decimal.NewFromFloat(pricing.UnitPrice(product, ch)).Add(decimal.NewFromFloat(mod.Delta()))
	line := &Line{
		Key:       key,
		Name:      product.Name,
		Category:  product.Category,
		Modifier:  mod,
		UnitPrice: unit.InexactFloat64(),
		Quantity:  1,
	}
	c.lines = append(c.lines, line)
	return *line
}

func (c *Cart) Increase(key LineKey) (Line, error) {
	line := c.find(key)
	if line == nil {
		return Line{}, ErrLineNotFound
	}
	line.Quantity++
	return *line, nil
}

// Decrease takes one unit off the line and drops the line when it reaches
// zero. removed reports whether that happened.
func (c *Cart) Decrease(key LineKey) (line Line, removed bool, err error) {
	idx := c.index(key)
	if idx < 0 {
		return Line{}, false, ErrLineNotFound
	}
	c.lines[idx].Quantity--
	line = *c.lines[idx]
	if line.Quantity <= 0 {
		c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
		return line, true, nil
	}
	return line, false, nil
}

// Remove drops the whole line regardless of quantity.
func (c *Cart) Remove(key LineKey) error {
	idx := c.index(key)
	if idx < 0 {
		return ErrLineNotFound
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	return nil
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Total is recomputed from the lines on every call.
func (c *Cart) Total() float64 {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum.InexactFloat64()
}

// Lines returns copies of the lines; changing them does not affect the cart.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		out[i] = *l
	}
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Quantity is the number of units across all lines.
func (c *Cart) Quantity() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Get(key LineKey) (Line, bool) {
	line := c.find(key)
	if line == nil {
		return Line{}, false
	}
	return *line, true
}

func (c *Cart) find(key LineKey) *Line {
	if idx := c.index(key); idx >= 0 {
		return c.lines[idx]
	}
	return nil
}

func (c *Cart) index(key LineKey) int {
	for i, l := range c.lines {
		if l.Key == key {
			return i
		}
	}
	return -1
}
