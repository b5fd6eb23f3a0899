package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"pos/internal/store"
)

func Connect(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongo ping")
	}
	return client, nil
}

// Pinger reports whether the database is reachable.
type Pinger struct {
	client *mongo.Client
}

func NewPinger(client *mongo.Client) Pinger {
	return Pinger{client: client}
}

func (p Pinger) Ping(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return p.client.Ping(checkCtx, readpref.Primary())
}

// translate maps driver errors onto the store sentinels.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return errors.Wrap(store.ErrNotFound, what)
	case mongo.IsDuplicateKeyError(err):
		return errors.Wrap(store.ErrDuplicate, what)
	}
	return errors.Wrap(err, what)
}

// NewStores returns the MongoDB implementation of every store contract.
func NewStores(db *mongo.Database) store.Set {
	return store.Set{
		Catalog: NewCatalogStore(db),
		Orders:  NewOrderStore(db),
		Members: NewMemberStore(db),
		Rewards: NewRewardStore(db),
		Ledger:  NewPointLedger(db),
	}
}
