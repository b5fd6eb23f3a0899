package models

import (
	"time"
)

// OrderModifier is the persisted form of a modifier selection on an order line.
type OrderModifier struct {
	OptionIDs []string `bson:"optionIds" json:"optionIds"`
	Name      string   `bson:"name" json:"name"`
	Delta     float64  `bson:"delta" json:"delta"`
}

// OrderItem is a snapshot of a cart line at the time the order was placed.
type OrderItem struct {
	ProductID string         `bson:"productId" json:"productId"`
	Name      string         `bson:"name" json:"name"`
	Category  string         `bson:"category,omitempty" json:"category,omitempty"`
	Channel   Channel        `bson:"channel" json:"channel"`
	UnitPrice float64        `bson:"unitPrice" json:"unitPrice"`
	Quantity  int            `bson:"quantity" json:"quantity"`
	Modifier  *OrderModifier `bson:"modifier,omitempty" json:"modifier,omitempty"`
}

// Order defines the persisted order document. Everything except ActualAmount and
// IsSettled is immutable after creation.
type Order struct {
	ID            string        `bson:"_id,omitempty" json:"id"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	Channel       Channel       `bson:"channel" json:"channel"`
	Items         []OrderItem   `bson:"items" json:"items"`
	Total         float64       `bson:"total" json:"total"`
	PaymentMethod PaymentMethod `bson:"paymentMethod" json:"paymentMethod"`
	ReferenceCode string        `bson:"referenceCode" json:"referenceCode"`
	IsSettled     bool          `bson:"isSettled" json:"isSettled"`
	ActualAmount  float64       `bson:"actualAmount" json:"actualAmount"`
	MemberPhone   string        `bson:"memberPhone,omitempty" json:"memberPhone,omitempty"`
	IsHistory     bool          `bson:"isHistory" json:"-"`
}
