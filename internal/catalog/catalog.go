// Package catalog keeps the menu snapshot the terminal sells from and
// applies admin edits to the catalog store.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"pos/internal/models"
	"pos/internal/pricing"
	"pos/internal/store"
)

// DefaultCategory is assigned to products saved without one.
const DefaultCategory = "General"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrGroupNotFound   = errors.New("modifier group not found")
	ErrOptionNotFound  = errors.New("modifier option not found")
)

// InputError rejects an admin edit before it reaches the store.
type InputError struct {
	Msg string
}

func (e InputError) Error() string {
	return e.Msg
}

func invalid(format string, args ...any) error {
	return InputError{Msg: fmt.Sprintf(format, args...)}
}

// Snapshot is the catalog as last loaded.
type Snapshot struct {
	Products       []models.Product       `json:"products"`
	Categories     []models.Category      `json:"categories"`
	ModifierGroups []models.ModifierGroup `json:"modifierGroups"`
}

type Service struct {
	store  store.Catalog
	logger *zap.Logger

	mu       sync.RWMutex
	snap     Snapshot
	products map[string]models.Product
}

func NewService(s store.Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: s, logger: logger, products: map[string]models.Product{}}
}

// Load fetches the whole catalog and replaces the snapshot. Categories used by
// products but missing from the category list are added back best-effort.
func (s *Service) Load(ctx context.Context) (Snapshot, error) {
	products, err := s.store.FetchProducts(ctx)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "fetch products")
	}
	categories, err := s.store.FetchCategories(ctx)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "fetch categories")
	}
	groups, err := s.store.FetchModifierGroups(ctx)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "fetch modifier groups")
	}

	snap := Snapshot{
		Products:       products,
		Categories:     s.repairCategories(ctx, products, categories),
		ModifierGroups: groups,
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	s.mu.Lock()
	s.snap = snap
	s.products = byID
	s.mu.Unlock()

	return s.Snapshot(), nil
}

func (s *Service) repairCategories(ctx context.Context, products []models.Product, categories []models.Category) []models.Category {
	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		known[strings.ToLower(c.Name)] = struct{}{}
	}

	out := append([]models.Category(nil), categories...)
	for _, p := range products {
		name := strings.TrimSpace(p.Category)
		if name == "" {
			continue
		}
		if _, ok := known[strings.ToLower(name)]; ok {
			continue
		}
		known[strings.ToLower(name)] = struct{}{}

		saved, err := s.store.AddCategory(ctx, models.Category{Name: name, SortOrder: int64(len(out))})
		if err != nil {
			s.logger.Warn("category repair failed", zap.String("category", name), zap.Error(err))
			saved = models.Category{Name: name, SortOrder: int64(len(out))}
		} else {
			s.logger.Info("category repaired", zap.String("category", name))
		}
		out = append(out, saved)
	}
	return out
}

// refresh reloads after an admin edit. The edit already succeeded, so a
// failed reload is only logged.
func (s *Service) refresh(ctx context.Context) {
	if _, err := s.Load(ctx); err != nil {
		s.logger.Warn("catalog reload failed", zap.Error(err))
	}
}

func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Products:       append([]models.Product(nil), s.snap.Products...),
		Categories:     append([]models.Category(nil), s.snap.Categories...),
		ModifierGroups: append([]models.ModifierGroup(nil), s.snap.ModifierGroups...),
	}
}

func (s *Service) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	return p, ok
}

// Composer returns a modifier composer for the product, offering only the
// groups the product references.
func (s *Service) Composer(productID string) (*pricing.Composer, models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, models.Product{}, errors.Wrapf(ErrProductNotFound, "id %s", productID)
	}
	return pricing.NewComposer(p, s.snap.ModifierGroups), p, nil
}

func (s *Service) groupExists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.snap.ModifierGroups {
		if g.ID == id {
			return true
		}
	}
	return false
}

func (s *Service) categoryExists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.snap.Categories {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

/* products */

func (s *Service) validateProduct(p models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name is required")
	}
	if p.Price < 0 {
		return invalid("price must not be negative")
	}
	for ch, price := range p.ChannelPrices {
		if !ch.Valid() || ch == models.ChannelPOS {
			return invalid("channel %q cannot carry a price override", ch)
		}
		if price <= 0 {
			return invalid("%s price must be greater than 0", ch)
		}
	}
	for _, id := range p.ModifierGroupIDs {
		if !s.groupExists(id) {
			return invalid("unknown modifier group %s", id)
		}
	}
	return nil
}

// ensureCategory adds the category of a saved product when it is new.
func (s *Service) ensureCategory(ctx context.Context, name string) {
	if s.categoryExists(name) {
		return
	}
	if _, err := s.store.AddCategory(ctx, models.Category{Name: name}); err != nil && !errors.Is(err, store.ErrDuplicate) {
		s.logger.Warn("category not added", zap.String("category", name), zap.Error(err))
	}
}

func (s *Service) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	p.ID = ""
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if p.ModifierGroupIDs == nil {
		p.ModifierGroupIDs = models.StringList{}
	}
	if err := s.validateProduct(p); err != nil {
		return models.Product{}, err
	}

	saved, err := s.store.AddProduct(ctx, p)
	if err != nil {
		return models.Product{}, errors.Wrap(err, "add product")
	}
	s.ensureCategory(ctx, saved.Category)
	s.refresh(ctx)
	return saved, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, patch store.ProductPatch) (models.Product, error) {
	current, err := s.store.FindProduct(ctx, id)
	if err != nil {
		return models.Product{}, errors.Wrap(err, "find product")
	}
	if patch.Category != nil {
		trimmed := strings.TrimSpace(*patch.Category)
		if trimmed == "" {
			trimmed = DefaultCategory
		}
		patch.Category = &trimmed
	}

	preview := current
	patch.Apply(&preview)
	if err := s.validateProduct(preview); err != nil {
		return models.Product{}, err
	}

	saved, err := s.store.UpdateProduct(ctx, id, patch)
	if err != nil {
		return models.Product{}, errors.Wrap(err, "update product")
	}
	s.ensureCategory(ctx, saved.Category)
	s.refresh(ctx)
	return saved, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return errors.Wrap(err, "delete product")
	}
	s.refresh(ctx)
	return nil
}

/* categories */

func (s *Service) CreateCategory(ctx context.Context, name string, sortOrder int64) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, invalid("name is required")
	}
	saved, err := s.store.AddCategory(ctx, models.Category{Name: name, SortOrder: sortOrder})
	if err != nil {
		return models.Category{}, errors.Wrap(err, "add category")
	}
	s.refresh(ctx)
	return saved, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, patch store.CategoryPatch) (models.Category, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return models.Category{}, invalid("name cannot be empty")
		}
		patch.Name = &trimmed
	}
	if patch.Name == nil && patch.SortOrder == nil {
		return models.Category{}, invalid("no fields to update")
	}
	saved, err := s.store.UpdateCategory(ctx, id, patch)
	if err != nil {
		return models.Category{}, errors.Wrap(err, "update category")
	}
	s.refresh(ctx)
	return saved, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return errors.Wrap(err, "delete category")
	}
	s.refresh(ctx)
	return nil
}

/* modifier groups */

func normalizeOption(o models.ModifierOption) (models.ModifierOption, error) {
	o.Name = strings.TrimSpace(o.Name)
	if o.Name == "" {
		return o, invalid("option name is required")
	}
	if o.Price < 0 {
		return o, invalid("option price must not be negative")
	}
	if strings.TrimSpace(o.ID) == "" {
		o.ID = uuid.NewString()
	}
	return o, nil
}

func (s *Service) CreateModifierGroup(ctx context.Context, name string, options []models.ModifierOption) (models.ModifierGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ModifierGroup{}, invalid("name is required")
	}
	g := models.ModifierGroup{Name: name, Options: make([]models.ModifierOption, 0, len(options))}
	for _, o := range options {
		opt, err := normalizeOption(o)
		if err != nil {
			return models.ModifierGroup{}, err
		}
		g.Options = append(g.Options, opt)
	}

	saved, err := s.store.AddModifierGroup(ctx, g)
	if err != nil {
		return models.ModifierGroup{}, errors.Wrap(err, "add modifier group")
	}
	s.refresh(ctx)
	return saved, nil
}

func (s *Service) RenameModifierGroup(ctx context.Context, id, name string) (models.ModifierGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ModifierGroup{}, invalid("name is required")
	}
	return s.editGroup(ctx, id, func(g *models.ModifierGroup) error {
		g.Name = name
		return nil
	})
}

func (s *Service) AddOption(ctx context.Context, groupID string, o models.ModifierOption) (models.ModifierGroup, error) {
	opt, err := normalizeOption(o)
	if err != nil {
		return models.ModifierGroup{}, err
	}
	return s.editGroup(ctx, groupID, func(g *models.ModifierGroup) error {
		for _, existing := range g.Options {
			if existing.ID == opt.ID {
				return invalid("option %s already exists", opt.ID)
			}
		}
		g.Options = append(g.Options, opt)
		return nil
	})
}

func (s *Service) UpdateOption(ctx context.Context, groupID string, o models.ModifierOption) (models.ModifierGroup, error) {
	opt, err := normalizeOption(o)
	if err != nil {
		return models.ModifierGroup{}, err
	}
	return s.editGroup(ctx, groupID, func(g *models.ModifierGroup) error {
		for i := range g.Options {
			if g.Options[i].ID == opt.ID {
				g.Options[i] = opt
				return nil
			}
		}
		return ErrOptionNotFound
	})
}

func (s *Service) RemoveOption(ctx context.Context, groupID, optionID string) (models.ModifierGroup, error) {
	return s.editGroup(ctx, groupID, func(g *models.ModifierGroup) error {
		for i := range g.Options {
			if g.Options[i].ID == optionID {
				g.Options = append(g.Options[:i], g.Options[i+1:]...)
				return nil
			}
		}
		return ErrOptionNotFound
	})
}

func (s *Service) editGroup(ctx context.Context, id string, edit func(g *models.ModifierGroup) error) (models.ModifierGroup, error) {
	g, err := s.store.FindModifierGroup(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.ModifierGroup{}, ErrGroupNotFound
	}
	if err != nil {
		return models.ModifierGroup{}, errors.Wrap(err, "find modifier group")
	}
	if err := edit(&g); err != nil {
		return models.ModifierGroup{}, err
	}
	saved, err := s.store.SaveModifierGroup(ctx, g)
	if err != nil {
		return models.ModifierGroup{}, errors.Wrap(err, "save modifier group")
	}
	s.refresh(ctx)
	return saved, nil
}

// DeleteModifierGroup removes the group; products offering it lose the reference.
func (s *Service) DeleteModifierGroup(ctx context.Context, id string) error {
	if err := s.store.DeleteModifierGroup(ctx, id); err != nil {
		return errors.Wrap(err, "delete modifier group")
	}
	s.refresh(ctx)
	return nil
}
