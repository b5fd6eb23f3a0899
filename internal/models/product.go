package models

import "time"

// Product is a sellable menu item. Price is the in-store (pos) price; ChannelPrices
// holds optional overrides for the delivery channels.
type Product struct {
	ID               string              `bson:"_id,omitempty" json:"id"`
	Name             string              `bson:"name" json:"name"`
	Category         string              `bson:"category" json:"category"`
	Price            float64             `bson:"price" json:"price"`
	ChannelPrices    map[Channel]float64 `bson:"channelPrices,omitempty" json:"channelPrices,omitempty"`
	ModifierGroupIDs StringList          `bson:"modifierGroupIds" json:"modifierGroupIds"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
}

// HasModifierGroup reports whether the product offers the given modifier group.
func (p Product) HasModifierGroup(groupID string) bool {
	for _, id := range p.ModifierGroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}

// ModifierOption is a single add-on choice with its price delta.
type ModifierOption struct {
	ID    string  `bson:"id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

// ModifierGroup is a named set of independent add-on options.
type ModifierGroup struct {
	ID        string           `bson:"_id,omitempty" json:"id"`
	Name      string           `bson:"name" json:"name"`
	Options   []ModifierOption `bson:"options" json:"options"`
	CreatedAt time.Time        `bson:"createdAt" json:"createdAt"`
}
