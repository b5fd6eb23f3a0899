package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names.
const (
	ProductsCollection       = "products"
	CategoriesCollection     = "categories"
	ModifierGroupsCollection = "modifier_groups"
	OrdersCollection         = "orders"
	MembersCollection        = "members"
	RewardsCollection        = "rewards"
	PointHistoryCollection   = "point_history"
)

type indexSpec struct {
	collection string
	model      mongo.IndexModel
}

func indexSpecs() []indexSpec {
	return []indexSpec{
		{
			collection: OrdersCollection,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "isHistory", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("open_orders"),
			},
		},
		{
			collection: OrdersCollection,
			model: mongo.IndexModel{
				Keys: bson.D{{Key: "memberPhone", Value: 1}},
				Options: options.Index().
					SetName("memberPhone_index").
					SetPartialFilterExpression(bson.M{
						"memberPhone": bson.M{
							"$exists": true,
						},
					}),
			},
		},
		{
			collection: CategoriesCollection,
			model: mongo.IndexModel{
				Keys: bson.D{{Key: "name", Value: 1}},
				Options: options.Index().
					SetName("name_unique").
					SetUnique(true).
					SetCollation(&options.Collation{Locale: "en", Strength: 2}),
			},
		},
		{
			collection: ProductsCollection,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}},
				Options: options.Index().SetName("category_name"),
			},
		},
		{
			collection: PointHistoryCollection,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "memberPhone", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("member_history"),
			},
		},
	}
}

// EnsureIndexes creates the indexes the stores query by. Members are keyed
// by phone in _id and need no extra index.
func EnsureIndexes(db *mongo.Database, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, spec := range indexSpecs() {
		name := ""
		if spec.model.Options != nil && spec.model.Options.Name != nil {
			name = *spec.model.Options.Name
		}
		logger.Info("creating index", zap.String("collection", spec.collection), zap.String("index", name))

		if _, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, spec.model); err != nil {
			logger.Error("index error", zap.String("collection", spec.collection), zap.String("index", name), zap.Error(err))
			return err
		}
	}
	return nil
}
