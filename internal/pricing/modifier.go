package pricing

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"pos/internal/models"
)

var (
	ErrOptionNotOffered   = errors.New("modifier option is not offered for this product")
	errMalformedOptionSet = errors.New("malformed option set")
)

const nameSeparator = ", "

// Selection is a priced combination of modifier options.
type Selection struct {
	Options OptionSet
	Name    string
	Delta   float64
}

// Modifier is either no modifier or exactly one Selection. The zero value is
// no modifier.
type Modifier struct {
	selection Selection
	present   bool
}

func NoModifier() Modifier {
	return Modifier{}
}

// Selected wraps sel. A selection with no options is treated as no modifier.
func Selected(sel Selection) Modifier {
	if sel.Options.IsEmpty() {
		return Modifier{}
	}
	return Modifier{selection: sel, present: true}
}

func (m Modifier) Selection() (Selection, bool) {
	return m.selection, m.present
}

func (m Modifier) IsNone() bool {
	return !m.present
}

// Key is the identity of the selection; empty for no modifier.
func (m Modifier) Key() OptionSet {
	return m.selection.Options
}

func (m Modifier) Delta() float64 {
	if !m.present {
		return 0
	}
	return m.selection.Delta
}

func (m Modifier) Name() string {
	return m.selection.Name
}

// Composer collects a user's option toggles for one product. Only groups the
// product references are offered.
type Composer struct {
	groups   []models.ModifierGroup
	offered  map[string]models.ModifierOption
	selected map[string]struct{}
}

func NewComposer(product models.Product, groups []models.ModifierGroup) *Composer {
	c := &Composer{
		offered:  make(map[string]models.ModifierOption),
		selected: make(map[string]struct{}),
	}
	for _, g := range EligibleGroups(product, groups) {
		c.groups = append(c.groups, g)
		for _, opt := range g.Options {
			c.offered[opt.ID] = opt
		}
	}
	return c
}

// EligibleGroups filters groups to those referenced by the product, keeping
// catalog order.
func EligibleGroups(product models.Product, groups []models.ModifierGroup) []models.ModifierGroup {
	out := make([]models.ModifierGroup, 0, len(product.ModifierGroupIDs))
	for _, g := range groups {
		if product.HasModifierGroup(g.ID) {
			out = append(out, g)
		}
	}
	return out
}

func (c *Composer) Groups() []models.ModifierGroup {
	return c.groups
}

// Toggle selects the option, or deselects it when already selected.
func (c *Composer) Toggle(optionID string) error {
	if _, ok := c.offered[optionID]; !ok {
		return errors.Wrapf(ErrOptionNotOffered, "option %s", optionID)
	}
	if _, ok := c.selected[optionID]; ok {
		delete(c.selected, optionID)
		return nil
	}
	c.selected[optionID] = struct{}{}
	return nil
}

func (c *Composer) IsSelected(optionID string) bool {
	_, ok := c.selected[optionID]
	return ok
}

func (c *Composer) Reset() {
	c.selected = make(map[string]struct{})
}

// Modifier prices the current selection. Names follow catalog order.
func (c *Composer) Modifier() Modifier {
	if len(c.selected) == 0 {
		return NoModifier()
	}
	ids := make([]string, 0, len(c.selected))
	names := make([]string, 0, len(c.selected))
	delta := decimal.Zero
	seen := make(map[string]struct{}, len(c.selected))
	for _, g := range c.groups {
		for _, opt := range g.Options {
			if _, ok := c.selected[opt.ID]; !ok {
				continue
			}
			if _, dup := seen[opt.ID]; dup {
				continue
			}
			seen[opt.ID] = struct{}{}
			ids = append(ids, opt.ID)
			names = append(names, opt.Name)
			delta = delta.Add(decimal.NewFromFloat(opt.Price))
		}
	}
	return Selected(Selection{
		Options: NewOptionSet(ids...),
		Name:    strings.Join(names, nameSeparator),
		Delta:   delta.InexactFloat64(),
	})
}
