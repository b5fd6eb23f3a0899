// Package memory is an in-process store used when no database is configured
// and in tests. Records are lost on restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"pos/internal/models"
	"pos/internal/store"
)

type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	products map[string]models.Product
	cats     map[string]models.Category
	groups   map[string]models.ModifierGroup
	orders   map[string]models.Order
	seq      map[string]uint64
	next     uint64
	members  map[string]models.Member
	rewards  map[string]models.Reward
	history  []models.PointHistory
}

var (
	_ store.Catalog     = (*Store)(nil)
	_ store.OrderStore  = (*Store)(nil)
	_ store.MemberStore = (*Store)(nil)
	_ store.RewardStore = (*Store)(nil)
	_ store.PointLedger = (*Store)(nil)
)

func New() *Store {
	return &Store{
		now:      time.Now,
		products: map[string]models.Product{},
		cats:     map[string]models.Category{},
		groups:   map[string]models.ModifierGroup{},
		orders:   map[string]models.Order{},
		seq:      map[string]uint64{},
		members:  map[string]models.Member{},
		rewards:  map[string]models.Reward{},
	}
}

// WithClock replaces the time source; tests use it to order records.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func newID() string {
	return uuid.NewString()
}

/* products */

func (s *Store) FetchProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) FindProduct(_ context.Context, id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, errors.Wrapf(store.ErrNotFound, "product %s", id)
	}
	return cloneProduct(p), nil
}

func (s *Store) AddProduct(_ context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = newID()
	} else if _, exists := s.products[p.ID]; exists {
		return models.Product{}, errors.Wrapf(store.ErrDuplicate, "product %s", p.ID)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	s.products[p.ID] = cloneProduct(p)
	return cloneProduct(p), nil
}

func (s *Store) UpdateProduct(_ context.Context, id string, patch store.ProductPatch) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, errors.Wrapf(store.ErrNotFound, "product %s", id)
	}
	p = cloneProduct(p)
	patch.Apply(&p)
	s.products[id] = p
	return cloneProduct(p), nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return errors.Wrapf(store.ErrNotFound, "product %s", id)
	}
	delete(s.products, id)
	return nil
}

/* categories */

func (s *Store) FetchCategories(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, 0, len(s.cats))
	for _, c := range s.cats {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) AddCategory(_ context.Context, c models.Category) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.cats {
		if strings.EqualFold(existing.Name, c.Name) {
			return models.Category{}, errors.Wrapf(store.ErrDuplicate, "category %q", c.Name)
		}
	}
	c.ID = newID()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	s.cats[c.ID] = c
	return c, nil
}

func (s *Store) UpdateCategory(_ context.Context, id string, patch store.CategoryPatch) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cats[id]
	if !ok {
		return models.Category{}, errors.Wrapf(store.ErrNotFound, "category %s", id)
	}
	if patch.Name != nil {
		for otherID, existing := range s.cats {
			if otherID != id && strings.EqualFold(existing.Name, *patch.Name) {
				return models.Category{}, errors.Wrapf(store.ErrDuplicate, "category %q", *patch.Name)
			}
		}
		c.Name = *patch.Name
	}
	if patch.SortOrder != nil {
		c.SortOrder = *patch.SortOrder
	}
	s.cats[id] = c
	return c, nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cats[id]; !ok {
		return errors.Wrapf(store.ErrNotFound, "category %s", id)
	}
	delete(s.cats, id)
	return nil
}

/* modifier groups */

func (s *Store) FetchModifierGroups(_ context.Context) ([]models.ModifierGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ModifierGroup, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, cloneGroup(g))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) FindModifierGroup(_ context.Context, id string) (models.ModifierGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[id]
	if !ok {
		return models.ModifierGroup{}, errors.Wrapf(store.ErrNotFound, "modifier group %s", id)
	}
	return cloneGroup(g), nil
}

func (s *Store) AddModifierGroup(_ context.Context, g models.ModifierGroup) (models.ModifierGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g.ID == "" {
		g.ID = newID()
	} else if _, exists := s.groups[g.ID]; exists {
		return models.ModifierGroup{}, errors.Wrapf(store.ErrDuplicate, "modifier group %s", g.ID)
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = s.now()
	}
	s.groups[g.ID] = cloneGroup(g)
	return cloneGroup(g), nil
}

func (s *Store) SaveModifierGroup(_ context.Context, g models.ModifierGroup) (models.ModifierGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.groups[g.ID]
	if !ok {
		return models.ModifierGroup{}, errors.Wrapf(store.ErrNotFound, "modifier group %s", g.ID)
	}
	existing.Name = g.Name
	existing.Options = append([]models.ModifierOption(nil), g.Options...)
	s.groups[g.ID] = existing
	return cloneGroup(existing), nil
}

func (s *Store) DeleteModifierGroup(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[id]; !ok {
		return errors.Wrapf(store.ErrNotFound, "modifier group %s", id)
	}
	delete(s.groups, id)

	for pid, p := range s.products {
		if !p.HasModifierGroup(id) {
			continue
		}
		kept := make(models.StringList, 0, len(p.ModifierGroupIDs))
		for _, gid := range p.ModifierGroupIDs {
			if gid != id {
				kept = append(kept, gid)
			}
		}
		p = cloneProduct(p)
		p.ModifierGroupIDs = kept
		s.products[pid] = p
	}
	return nil
}

/* orders */

func (s *Store) AddOrder(_ context.Context, o models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = newID()
	o.CreatedAt = s.now()
	s.next++
	s.seq[o.ID] = s.next
	s.orders[o.ID] = cloneOrder(o)
	return cloneOrder(o), nil
}

func (s *Store) FindOrder(_ context.Context, id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return models.Order{}, errors.Wrapf(store.ErrNotFound, "order %s", id)
	}
	return cloneOrder(o), nil
}

func (s *Store) SettleOrder(_ context.Context, id string, actualAmount float64) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return models.Order{}, errors.Wrapf(store.ErrNotFound, "order %s", id)
	}
	if o.IsSettled || o.IsHistory {
		return models.Order{}, errors.Wrapf(store.ErrConflict, "order %s", id)
	}
	o.ActualAmount = actualAmount
	o.IsSettled = true
	s.orders[id] = o
	return cloneOrder(o), nil
}

func (s *Store) FetchOrders(_ context.Context, filter store.OrderFilter) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if filter.Matches(o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return s.seq[out[i].ID] > s.seq[out[j].ID]
	})

	if filter.Skip > 0 {
		if filter.Skip >= int64(len(out)) {
			return []models.Order{}, nil
		}
		out = out[filter.Skip:]
	}
	if filter.Limit > 0 && filter.Limit < int64(len(out)) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *Store) CountOrders(_ context.Context, filter store.OrderFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, o := range s.orders {
		if filter.Matches(o) {
			n++
		}
	}
	return n, nil
}

func (s *Store) DeleteOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return errors.Wrapf(store.ErrNotFound, "order %s", id)
	}
	delete(s.orders, id)
	delete(s.seq, id)
	return nil
}

func (s *Store) ClearOrders(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, o := range s.orders {
		if !o.IsHistory {
			delete(s.orders, id)
			delete(s.seq, id)
			n++
		}
	}
	return n, nil
}

func (s *Store) CloseDayOrders(_ context.Context, ids []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, id := range ids {
		o, ok := s.orders[id]
		if ok && !o.IsHistory {
			o.IsHistory = true
			s.orders[id] = o
			n++
		}
	}
	return n, nil
}

/* members */

func (s *Store) FindByPhone(_ context.Context, phone string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[phone]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *Store) Insert(_ context.Context, m models.Member) (models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.members[m.Phone]; exists {
		return models.Member{}, errors.Wrapf(store.ErrDuplicate, "member %s", m.Phone)
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now()
	}
	s.members[m.Phone] = m
	return m, nil
}

func (s *Store) Update(_ context.Context, phone string, patch store.MemberPatch) (models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[phone]
	if !ok {
		return models.Member{}, errors.Wrapf(store.ErrNotFound, "member %s", phone)
	}
	patch.Apply(&m)
	s.members[phone] = m
	return m, nil
}

func (s *Store) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[phone]; !ok {
		return errors.Wrapf(store.ErrNotFound, "member %s", phone)
	}
	delete(s.members, phone)
	return nil
}

func (s *Store) FetchMembers(_ context.Context) ([]models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

/* rewards */

func (s *Store) FetchRewards(_ context.Context, activeOnly bool) ([]models.Reward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Reward, 0, len(s.rewards))
	for _, r := range s.rewards {
		if activeOnly && !r.IsActive {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PointsRequired < out[j].PointsRequired })
	return out, nil
}

func (s *Store) FindReward(_ context.Context, id string) (models.Reward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rewards[id]
	if !ok {
		return models.Reward{}, errors.Wrapf(store.ErrNotFound, "reward %s", id)
	}
	return r, nil
}

func (s *Store) AddReward(_ context.Context, r models.Reward) (models.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = newID()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	s.rewards[r.ID] = r
	return r, nil
}

func (s *Store) UpdateReward(_ context.Context, id string, patch store.RewardPatch) (models.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rewards[id]
	if !ok {
		return models.Reward{}, errors.Wrapf(store.ErrNotFound, "reward %s", id)
	}
	patch.Apply(&r)
	s.rewards[id] = r
	return r, nil
}

func (s *Store) DeleteReward(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rewards[id]; !ok {
		return errors.Wrapf(store.ErrNotFound, "reward %s", id)
	}
	delete(s.rewards, id)
	return nil
}

/* point history */

func (s *Store) Record(_ context.Context, h models.PointHistory) (models.PointHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h.ID = newID()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = s.now()
	}
	s.history = append(s.history, h)
	return h, nil
}

func (s *Store) History(_ context.Context, phone string) ([]models.PointHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.PointHistory{}
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].MemberPhone == phone {
			out = append(out, s.history[i])
		}
	}
	return out, nil
}

func cloneProduct(p models.Product) models.Product {
	if p.ChannelPrices != nil {
		prices := make(map[models.Channel]float64, len(p.ChannelPrices))
		for ch, v := range p.ChannelPrices {
			prices[ch] = v
		}
		p.ChannelPrices = prices
	}
	p.ModifierGroupIDs = append(models.StringList(nil), p.ModifierGroupIDs...)
	return p
}

func cloneGroup(g models.ModifierGroup) models.ModifierGroup {
	g.Options = append([]models.ModifierOption(nil), g.Options...)
	return g
}

func cloneOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	for i, it := range o.Items {
		if it.Modifier != nil {
			mod := *it.Modifier
			mod.OptionIDs = append([]string(nil), mod.OptionIDs...)
			it.Modifier = &mod
		}
		items[i] = it
	}
	o.Items = items
	return o
}

// Set exposes the store through every contract.
func (s *Store) Set() store.Set {
	return store.Set{Catalog: s, Orders: s, Members: s, Rewards: s, Ledger: s}
}

// Ping always succeeds; the store lives in process.
func (s *Store) Ping(context.Context) error {
	return nil
}
