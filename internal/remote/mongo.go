package remote

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dmitrijs2005/fleetsync/internal/common"
	"github.com/dmitrijs2005/fleetsync/internal/models"
)

// Connect opens a client against the remote document store and verifies
// reachability with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to remote store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping remote store: %w", err)
	}
	return client, nil
}

// MongoCollection implements Collection[T] over one mongo collection, using
// enc/dec to translate between the plain model and its wire document.
type MongoCollection[T any, D any] struct {
	coll *mongo.Collection
	enc  func(T) D
	dec  func(D) T
}

func NewEntryCollection(db *mongo.Database) *MongoCollection[models.Entry, entryDoc] {
	return &MongoCollection[models.Entry, entryDoc]{
		coll: db.Collection("entries"), enc: encodeEntry, dec: decodeEntry,
	}
}

func NewExpenseCollection(db *mongo.Database) *MongoCollection[models.Expense, expenseDoc] {
	return &MongoCollection[models.Expense, expenseDoc]{
		coll: db.Collection("expenses"), enc: encodeExpense, dec: decodeExpense,
	}
}

func NewDriverCollection(db *mongo.Database) *MongoCollection[models.Driver, driverDoc] {
	return &MongoCollection[models.Driver, driverDoc]{
		coll: db.Collection("drivers"), enc: encodeDriver, dec: decodeDriver,
	}
}

func NewVehicleCollection(db *mongo.Database) *MongoCollection[models.Vehicle, vehicleDoc] {
	return &MongoCollection[models.Vehicle, vehicleDoc]{
		coll: db.Collection("vehicles"), enc: encodeVehicle, dec: decodeVehicle,
	}
}

// ownerFilter translates a Filter into the wire query. Every document
// carries a user_id ownership field; the policy layer decides when the
// filter may be left empty.
func ownerFilter(f Filter) bson.M {
	if f.OwnerID == "" {
		return bson.M{}
	}
	return bson.M{"user_id": f.OwnerID}
}

func (c *MongoCollection[T, D]) Get(ctx context.Context, id string) (*T, error) {
	var d D
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	v := c.dec(d)
	return &v, nil
}

func (c *MongoCollection[T, D]) Query(ctx context.Context, f Filter) ([]T, error) {
	cur, err := c.coll.Find(ctx, ownerFilter(f))
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}
	defer cur.Close(ctx)

	var result []T
	for cur.Next(ctx) {
		var d D
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		result = append(result, c.dec(d))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return result, nil
}

func (c *MongoCollection[T, D]) Set(ctx context.Context, id string, v T) error {
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, c.enc(v),
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}
	return nil
}

func (c *MongoCollection[T, D]) Delete(ctx context.Context, id string) error {
	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// Subscribe opens a change stream and re-runs the filtered query on every
// event, emitting full snapshots. The first snapshot is the current state.
// The channel closes when the stream ends; the consumer owns the restart
// decision.
func (c *MongoCollection[T, D]) Subscribe(ctx context.Context, f Filter) (<-chan []T, error) {
	stream, err := c.coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("failed to open change stream: %w", err)
	}

	out := make(chan []T, 1)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		emit := func() bool {
			snap, err := c.Query(ctx, f)
			if err != nil {
				// transient read failure: skip this event, the next
				// change re-queries anyway
				return true
			}
			select {
			case out <- snap:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}
		for stream.Next(ctx) {
			if !emit() {
				return
			}
		}
	}()
	return out, nil
}
