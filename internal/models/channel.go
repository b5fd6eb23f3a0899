package models

import "fmt"

// Channel is the sales route an order goes through. Each channel has its own pricing.
type Channel string

const (
	ChannelPOS     Channel = "pos"
	ChannelGrab    Channel = "grab"
	ChannelLineman Channel = "lineman"
	ChannelShopee  Channel = "shopee"
)

// Channels lists every channel in display order.
func Channels() []Channel {
	return []Channel{ChannelPOS, ChannelGrab, ChannelLineman, ChannelShopee}
}

func (c Channel) Valid() bool {
	switch c {
	case ChannelPOS, ChannelGrab, ChannelLineman, ChannelShopee:
		return true
	}
	return false
}

func ParseChannel(raw string) (Channel, error) {
	ch := Channel(raw)
	if !ch.Valid() {
		return "", fmt.Errorf("unknown channel %q", raw)
	}
	return ch, nil
}

// PaymentMethod records how an order was paid.
type PaymentMethod string

const (
	PaymentCash      PaymentMethod = "cash"
	PaymentPromptPay PaymentMethod = "promptpay"
	PaymentTransfer  PaymentMethod = "transfer"
)
