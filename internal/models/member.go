package models

import (
	"time"
)

const DefaultTier = "Standard"

// Member is a loyalty customer identified by phone number.
type Member struct {
	Phone      string     `bson:"_id" json:"phone"`
	Nickname   string     `bson:"nickname" json:"nickname"`
	Points     int        `bson:"points" json:"points"`
	Tier       string     `bson:"tier" json:"tier"`
	TotalSpent float64    `bson:"totalSpent" json:"totalSpent"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	ExpiresAt  *time.Time `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}

// Expired reports whether the membership has lapsed at the given time.
func (m Member) Expired(at time.Time) bool {
	return m.ExpiresAt != nil && !at.Before(*m.ExpiresAt)
}

// Reward is something a member can redeem points for.
type Reward struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	Name           string    `bson:"name" json:"name"`
	PointsRequired int       `bson:"pointsRequired" json:"pointsRequired"`
	Description    string    `bson:"description,omitempty" json:"description,omitempty"`
	IsActive       bool      `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

const (
	PointsEarned   = "earn"
	PointsRedeemed = "redeem"
)

// PointHistory is one movement on a member's points balance.
type PointHistory struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	MemberPhone string    `bson:"memberPhone" json:"memberPhone"`
	Type        string    `bson:"type" json:"type"`
	Points      int       `bson:"points" json:"points"`
	Note        string    `bson:"note,omitempty" json:"note,omitempty"`
	RewardID    string    `bson:"rewardId,omitempty" json:"rewardId,omitempty"`
	OrderID     string    `bson:"orderId,omitempty" json:"orderId,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
