// Package store defines the persistence contracts the terminal consumes.
// Drivers live in internal/database (MongoDB) and internal/store/memory.
package store

//go:generate mockgen -destination=../mocks/store_mock.go -package=mocks pos/internal/store OrderStore,MemberStore,RewardStore,PointLedger

import (
	"context"

	"github.com/pkg/errors"

	"pos/internal/models"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("record already exists")
	// ErrConflict is returned when a conditional write finds the record in
	// another state than the one it requires.
	ErrConflict = errors.New("record state changed")
)

// ProductStore persists sellable menu items.
type ProductStore interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
	FindProduct(ctx context.Context, id string) (models.Product, error)
	AddProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// CategoryStore persists menu categories.
type CategoryStore interface {
	FetchCategories(ctx context.Context) ([]models.Category, error)
	AddCategory(ctx context.Context, c models.Category) (models.Category, error)
	UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// ModifierGroupStore persists modifier groups together with their options.
type ModifierGroupStore interface {
	FetchModifierGroups(ctx context.Context) ([]models.ModifierGroup, error)
	FindModifierGroup(ctx context.Context, id string) (models.ModifierGroup, error)
	AddModifierGroup(ctx context.Context, g models.ModifierGroup) (models.ModifierGroup, error)
	// SaveModifierGroup replaces the name and options of an existing group.
	SaveModifierGroup(ctx context.Context, g models.ModifierGroup) (models.ModifierGroup, error)
	// DeleteModifierGroup removes the group and detaches it from every product.
	DeleteModifierGroup(ctx context.Context, id string) error
}

// Catalog is everything the menu is built from.
type Catalog interface {
	ProductStore
	CategoryStore
	ModifierGroupStore
}

// OrderStore persists orders. Open orders have IsHistory=false.
type OrderStore interface {
	// AddOrder assigns ID and CreatedAt and returns the stored order.
	AddOrder(ctx context.Context, o models.Order) (models.Order, error)
	FindOrder(ctx context.Context, id string) (models.Order, error)
	// SettleOrder records the amount received for an open, unsettled order in
	// one conditional write. It returns ErrConflict when the order is already
	// settled or archived.
	SettleOrder(ctx context.Context, id string, actualAmount float64) (models.Order, error)
	// FetchOrders returns matching orders, newest first.
	FetchOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	CountOrders(ctx context.Context, filter OrderFilter) (int64, error)
	DeleteOrder(ctx context.Context, id string) error
	// ClearOrders deletes every open order.
	ClearOrders(ctx context.Context) (int64, error)
	// CloseDayOrders archives the listed orders that are still open.
	CloseDayOrders(ctx context.Context, ids []string) (int64, error)
}

// MemberStore persists loyalty members keyed by phone.
type MemberStore interface {
	// FindByPhone returns nil without error when no member has the phone.
	FindByPhone(ctx context.Context, phone string) (*models.Member, error)
	Insert(ctx context.Context, m models.Member) (models.Member, error)
	Update(ctx context.Context, phone string, patch MemberPatch) (models.Member, error)
	Delete(ctx context.Context, phone string) error
	FetchMembers(ctx context.Context) ([]models.Member, error)
}

// RewardStore persists redeemable rewards.
type RewardStore interface {
	FetchRewards(ctx context.Context, activeOnly bool) ([]models.Reward, error)
	FindReward(ctx context.Context, id string) (models.Reward, error)
	AddReward(ctx context.Context, r models.Reward) (models.Reward, error)
	UpdateReward(ctx context.Context, id string, patch RewardPatch) (models.Reward, error)
	DeleteReward(ctx context.Context, id string) error
}

// PointLedger records every change to a member's points.
type PointLedger interface {
	Record(ctx context.Context, h models.PointHistory) (models.PointHistory, error)
	History(ctx context.Context, phone string) ([]models.PointHistory, error)
}

// OrderFilter narrows FetchOrders and CountOrders. Zero Limit means no limit.
type OrderFilter struct {
	IncludeHistory bool
	UnsettledOnly  bool
	Skip           int64
	Limit          int64
}

// Matches reports whether o passes the filter, ignoring Skip and Limit.
func (f OrderFilter) Matches(o models.Order) bool {
	if o.IsHistory && !f.IncludeHistory {
		return false
	}
	if f.UnsettledOnly && o.IsSettled {
		return false
	}
	return true
}

type MemberPatch struct {
	Nickname   *string
	Points     *int
	TotalSpent *float64
	Tier       *string
}

type ProductPatch struct {
	Name             *string
	Category         *string
	Price            *float64
	ChannelPrices    map[models.Channel]*float64
	ModifierGroupIDs *[]string
}

// Apply writes the patch onto p. A nil entry in ChannelPrices clears that override.
func (pp ProductPatch) Apply(p *models.Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if len(pp.ChannelPrices) > 0 {
		if p.ChannelPrices == nil {
			p.ChannelPrices = map[models.Channel]float64{}
		}
		for ch, price := range pp.ChannelPrices {
			if price == nil {
				delete(p.ChannelPrices, ch)
				continue
			}
			p.ChannelPrices[ch] = *price
		}
	}
	if pp.ModifierGroupIDs != nil {
		p.ModifierGroupIDs = append(models.StringList{}, (*pp.ModifierGroupIDs)...)
	}
}

type CategoryPatch struct {
	Name      *string
	SortOrder *int64
}

type RewardPatch struct {
	Name           *string
	PointsRequired *int
	Description    *string
	IsActive       *bool
}

func (rp RewardPatch) Apply(r *models.Reward) {
	if rp.Name != nil {
		r.Name = *rp.Name
	}
	if rp.PointsRequired != nil {
		r.PointsRequired = *rp.PointsRequired
	}
	if rp.Description != nil {
		r.Description = *rp.Description
	}
	if rp.IsActive != nil {
		r.IsActive = *rp.IsActive
	}
}

func (mp MemberPatch) Apply(m *models.Member) {
	if mp.Nickname != nil {
		m.Nickname = *mp.Nickname
	}
	if mp.Points != nil {
		m.Points = *mp.Points
	}
	if mp.TotalSpent != nil {
		m.TotalSpent = *mp.TotalSpent
	}
	if mp.Tier != nil {
		m.Tier = *mp.Tier
	}
}

// Set bundles the stores of one driver.
type Set struct {
	Catalog Catalog
	Orders  OrderStore
	Members MemberStore
	Rewards RewardStore
	Ledger  PointLedger
}
