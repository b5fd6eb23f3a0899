package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pos/internal/models"
	"pos/internal/store"
)

type CatalogStore struct {
	db *mongo.Database
}

var _ store.Catalog = (*CatalogStore)(nil)

func NewCatalogStore(db *mongo.Database) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) products() *mongo.Collection {
	return s.db.Collection(ProductsCollection)
}

func (s *CatalogStore) categories() *mongo.Collection {
	return s.db.Collection(CategoriesCollection)
}

func (s *CatalogStore) groups() *mongo.Collection {
	return s.db.Collection(ModifierGroupsCollection)
}

func (s *CatalogStore) FetchProducts(ctx context.Context) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := s.products().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate(err, "find products")
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, translate(err, "decode products")
	}
	return products, nil
}

func (s *CatalogStore) FindProduct(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := s.products().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, translate(err, "product "+id)
}

func (s *CatalogStore) AddProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.ModifierGroupIDs == nil {
		p.ModifierGroupIDs = models.StringList{}
	}
	if _, err := s.products().InsertOne(ctx, p); err != nil {
		return models.Product{}, translate(err, "insert product")
	}
	return p, nil
}

func (s *CatalogStore) UpdateProduct(ctx context.Context, id string, patch store.ProductPatch) (models.Product, error) {
	set := bson.M{}
	unset := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	for ch, price := range patch.ChannelPrices {
		field := "channelPrices." + string(ch)
		if price == nil {
			unset[field] = ""
			continue
		}
		set[field] = *price
	}
	if patch.ModifierGroupIDs != nil {
		set["modifierGroupIds"] = append([]string{}, (*patch.ModifierGroupIDs)...)
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if len(update) == 0 {
		return s.FindProduct(ctx, id)
	}

	var updated models.Product
	err := s.products().FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	return updated, translate(err, "update product "+id)
}

func (s *CatalogStore) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.products().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "delete product "+id)
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments, "product "+id)
	}
	return nil
}

func (s *CatalogStore) FetchCategories(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := s.categories().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate(err, "find categories")
	}
	defer cursor.Close(ctx)

	categories := make([]models.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, translate(err, "decode categories")
	}
	return categories, nil
}

func (s *CatalogStore) AddCategory(ctx context.Context, c models.Category) (models.Category, error) {
	c.ID = primitive.NewObjectID().Hex()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if _, err := s.categories().InsertOne(ctx, c); err != nil {
		return models.Category{}, translate(err, "insert category "+c.Name)
	}
	return c, nil
}

func (s *CatalogStore) UpdateCategory(ctx context.Context, id string, patch store.CategoryPatch) (models.Category, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.SortOrder != nil {
		set["sortOrder"] = *patch.SortOrder
	}

	var updated models.Category
	err := s.categories().FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	return updated, translate(err, "update category "+id)
}

func (s *CatalogStore) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.categories().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "delete category "+id)
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments, "category "+id)
	}
	return nil
}

func (s *CatalogStore) FetchModifierGroups(ctx context.Context) ([]models.ModifierGroup, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.groups().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate(err, "find modifier groups")
	}
	defer cursor.Close(ctx)

	groups := make([]models.ModifierGroup, 0)
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, translate(err, "decode modifier groups")
	}
	return groups, nil
}

func (s *CatalogStore) FindModifierGroup(ctx context.Context, id string) (models.ModifierGroup, error) {
	var g models.ModifierGroup
	err := s.groups().FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	return g, translate(err, "modifier group "+id)
}

func (s *CatalogStore) AddModifierGroup(ctx context.Context, g models.ModifierGroup) (models.ModifierGroup, error) {
	if g.ID == "" {
		g.ID = primitive.NewObjectID().Hex()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	if g.Options == nil {
		g.Options = []models.ModifierOption{}
	}
	if _, err := s.groups().InsertOne(ctx, g); err != nil {
		return models.ModifierGroup{}, translate(err, "insert modifier group")
	}
	return g, nil
}

func (s *CatalogStore) SaveModifierGroup(ctx context.Context, g models.ModifierGroup) (models.ModifierGroup, error) {
	if g.Options == nil {
		g.Options = []models.ModifierOption{}
	}
	var updated models.ModifierGroup
	err := s.groups().FindOneAndUpdate(
		ctx,
		bson.M{"_id": g.ID},
		bson.M{"$set": bson.M{"name": g.Name, "options": g.Options}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	return updated, translate(err, "save modifier group "+g.ID)
}

// DeleteModifierGroup removes the group and pulls its id from every product.
func (s *CatalogStore) DeleteModifierGroup(ctx context.Context, id string) error {
	res, err := s.groups().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "delete modifier group "+id)
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments, "modifier group "+id)
	}

	_, err = s.products().UpdateMany(
		ctx,
		bson.M{"modifierGroupIds": id},
		bson.M{"$pull": bson.M{"modifierGroupIds": id}},
	)
	return translate(err, "detach modifier group "+id)
}
