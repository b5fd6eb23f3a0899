package handlers

import (
	"fmt"
	"strings"

	"pos/internal/models"
)

// resolveChannelPrices turns a request's channelPrices object into a patch.
// A number sets the override and null clears it. The pos channel always
// sells at the base price and cannot be overridden.
func resolveChannelPrices(input map[string]*float64) (map[models.Channel]*float64, error) {
	if len(input) == 0 {
		return nil, nil
	}

	out := make(map[models.Channel]*float64, len(input))
	for raw, price := range input {
		ch, err := models.ParseChannel(strings.ToLower(strings.TrimSpace(raw)))
		if err != nil {
			return nil, err
		}
		if ch == models.ChannelPOS {
			return nil, fmt.Errorf("pos price is the base price")
		}
		if price != nil {
			if err := validateChannelPrice(ch, *price); err != nil {
				return nil, err
			}
			v := *price
			price = &v
		}
		out[ch] = price
	}
	return out, nil
}

func validateChannelPrice(ch models.Channel, price float64) error {
	if price <= 0 {
		return fmt.Errorf("%s price must be greater than 0", ch)
	}
	return nil
}

// channelPricesForCreate keeps only the overrides that are set.
func channelPricesForCreate(input map[string]*float64) (map[models.Channel]float64, error) {
	patch, err := resolveChannelPrices(input)
	if err != nil {
		return nil, err
	}
	out := make(map[models.Channel]float64, len(patch))
	for ch, price := range patch {
		if price != nil {
			out[ch] = *price
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
