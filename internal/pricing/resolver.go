// Package pricing resolves per-channel unit prices and composes priced
// modifier selections for products.
package pricing

import "pos/internal/models"

// UnitPrice returns the price of p on channel ch. A delivery channel uses the
// product's override when one is set and falls back to the base price otherwise.
func UnitPrice(p models.Product, ch models.Channel) float64 {
	if ch == models.ChannelPOS {
		return p.Price
	}
	if price, ok := p.ChannelPrices[ch]; ok {
		return price
	}
	return p.Price
}
