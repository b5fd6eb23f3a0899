package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pos/internal/models"
	"pos/internal/store"
)

type OrderStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ store.OrderStore = (*OrderStore)(nil)

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{coll: db.Collection(OrdersCollection), now: time.Now}
}

func orderFilter(f store.OrderFilter) bson.M {
	filter := bson.M{}
	if !f.IncludeHistory {
		filter["isHistory"] = bson.M{"$ne": true}
	}
	if f.UnsettledOnly {
		filter["isSettled"] = false
	}
	return filter
}

func (s *OrderStore) AddOrder(ctx context.Context, o models.Order) (models.Order, error) {
	o.ID = primitive.NewObjectID().Hex()
	o.CreatedAt = s.now().UTC()
	o.IsHistory = false
	if o.Items == nil {
		o.Items = []models.OrderItem{}
	}
	if _, err := s.coll.InsertOne(ctx, o); err != nil {
		return models.Order{}, translate(err, "insert order")
	}
	return o, nil
}

func (s *OrderStore) FindOrder(ctx context.Context, id string) (models.Order, error) {
	var o models.Order
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	return o, translate(err, "order "+id)
}

func (s *OrderStore) SettleOrder(ctx context.Context, id string, actualAmount float64) (models.Order, error) {
	var updated models.Order
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "isSettled": false, "isHistory": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"actualAmount": actualAmount, "isSettled": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// the order is missing or no longer open for settlement
		if _, findErr := s.FindOrder(ctx, id); findErr != nil {
			return models.Order{}, findErr
		}
		return models.Order{}, errors.Wrapf(store.ErrConflict, "settle order %s", id)
	}
	return updated, translate(err, "settle order "+id)
}

func (s *OrderStore) FetchOrders(ctx context.Context, f store.OrderFilter) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if f.Skip > 0 {
		opts.SetSkip(f.Skip)
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cursor, err := s.coll.Find(ctx, orderFilter(f), opts)
	if err != nil {
		return nil, translate(err, "find orders")
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, translate(err, "decode orders")
	}
	return orders, nil
}

func (s *OrderStore) CountOrders(ctx context.Context, f store.OrderFilter) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, orderFilter(f))
	return n, translate(err, "count orders")
}

func (s *OrderStore) DeleteOrder(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "delete order "+id)
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments, "order "+id)
	}
	return nil
}

func (s *OrderStore) ClearOrders(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, orderFilter(store.OrderFilter{}))
	if err != nil {
		return 0, translate(err, "clear orders")
	}
	return res.DeletedCount, nil
}

func (s *OrderStore) CloseDayOrders(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	filter := orderFilter(store.OrderFilter{})
	filter["_id"] = bson.M{"$in": ids}
	res, err := s.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"isHistory": true}})
	if err != nil {
		return 0, translate(err, "close day")
	}
	return res.ModifiedCount, nil
}
