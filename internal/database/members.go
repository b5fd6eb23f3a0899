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

// MemberStore keeps members keyed by phone in _id.
type MemberStore struct {
	coll *mongo.Collection
}

var _ store.MemberStore = (*MemberStore)(nil)

func NewMemberStore(db *mongo.Database) *MemberStore {
	return &MemberStore{coll: db.Collection(MembersCollection)}
}

func (s *MemberStore) FindByPhone(ctx context.Context, phone string) (*models.Member, error) {
	var m models.Member
	err := s.coll.FindOne(ctx, bson.M{"_id": phone}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "member "+phone)
	}
	return &m, nil
}

func (s *MemberStore) Insert(ctx context.Context, m models.Member) (models.Member, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if _, err := s.coll.InsertOne(ctx, m); err != nil {
		return models.Member{}, translate(err, "insert member "+m.Phone)
	}
	return m, nil
}

func (s *MemberStore) Update(ctx context.Context, phone string, patch store.MemberPatch) (models.Member, error) {
	set := bson.M{}
	if patch.Nickname != nil {
		set["nickname"] = *patch.Nickname
	}
	if patch.Points != nil {
		set["points"] = *patch.Points
	}
	if patch.TotalSpent != nil {
		set["totalSpent"] = *patch.TotalSpent
	}
	if patch.Tier != nil {
		set["tier"] = *patch.Tier
	}

	var updated models.Member
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": phone},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	return updated, translate(err, "update member "+phone)
}

func (s *MemberStore) Delete(ctx context.Context, phone string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": phone})
	if err != nil {
		return translate(err, "delete member "+phone)
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments, "member "+phone)
	}
	return nil
}

func (s *MemberStore) FetchMembers(ctx context.Context) ([]models.Member, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, translate(err, "find members")
	}
	defer cursor.Close(ctx)

	members := make([]models.Member, 0)
	if err := cursor.All(ctx, &members); err != nil {
		return nil, translate(err, "decode members")
	}
	return members, nil
}

type RewardStore struct {
	coll *mongo.Collection
}

var _ store.RewardStore = (*RewardStore)(nil)

func NewRewardStore(db *mongo.Database) *RewardStore {
	return &RewardStore{coll: db.Collection(RewardsCollection)}
}

func (s *RewardStore) FetchRewards(ctx context.Context, activeOnly bool) ([]models.Reward, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "pointsRequired", Value: 1}}))
	if err != nil {
		return nil, translate(err, "find rewards")
	}
	defer cursor.Close(ctx)

	rewards := make([]models.Reward, 0)
	if err := cursor.All(ctx, &rewards); err != nil {
		return nil, translate(err, "decode rewards")
	}
	return rewards, nil
}

func (s *RewardStore) FindReward(ctx context.Context, id string) (models.Reward, error) {
	var r models.Reward
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	return r, translate(err, "reward "+id)
}

func (s *RewardStore) AddReward(ctx context.Context, r models.Reward) (models.Reward, error) {
	r.ID = primitive.NewObjectID().Hex()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if _, err := s.coll.InsertOne(ctx, r); err != nil {
		return models.Reward{}, translate(err, "insert reward")
	}
	return r, nil
}

func (s *RewardStore) UpdateReward(ctx context.Context, id string, patch store.RewardPatch) (models.Reward, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.PointsRequired != nil {
		set["pointsRequired"] = *patch.PointsRequired
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.IsActive != nil {
		set["isActive"] = *patch.IsActive
	}
	if len(set) == 0 {
		return s.FindReward(ctx, id)
	}

	var updated models.Reward
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	return updated, translate(err, "update reward "+id)
}

func (s *RewardStore) DeleteReward(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "delete reward "+id)
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments, "reward "+id)
	}
	return nil
}

type PointLedger struct {
	coll *mongo.Collection
}

var _ store.PointLedger = (*PointLedger)(nil)

func NewPointLedger(db *mongo.Database) *PointLedger {
	return &PointLedger{coll: db.Collection(PointHistoryCollection)}
}

func (l *PointLedger) Record(ctx context.Context, h models.PointHistory) (models.PointHistory, error) {
	h.ID = primitive.NewObjectID().Hex()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	if _, err := l.coll.InsertOne(ctx, h); err != nil {
		return models.PointHistory{}, translate(err, "insert point history")
	}
	return h, nil
}

func (l *PointLedger) History(ctx context.Context, phone string) ([]models.PointHistory, error) {
	cursor, err := l.coll.Find(ctx, bson.M{"memberPhone": phone}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, translate(err, "find point history")
	}
	defer cursor.Close(ctx)

	history := make([]models.PointHistory, 0)
	if err := cursor.All(ctx, &history); err != nil {
		return nil, translate(err, "decode point history")
	}
	return history, nil
}
