package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/xavierca1/vida-ativa-leads/internal/entity"
)

// MongoLeadRepository stores one document per lead. Mongo's own _id is left
// to the server; lookups go through the unique "id" field.
type MongoLeadRepository struct {
	Coll    *mongo.Collection
	Timeout time.Duration
}

var _ entity.LeadRepositoryInterface = (*MongoLeadRepository)(nil)

func NewMongoLeadRepository(coll *mongo.Collection, timeout time.Duration) *MongoLeadRepository {
	return &MongoLeadRepository{Coll: coll, Timeout: timeout}
}

func (r *MongoLeadRepository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("id_unique"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: 1}},
			Options: options.Index().SetName("created_at_desc_id"),
		},
	}

	if _, err := r.Coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("ensure lead indexes: %w", err)
	}
	return nil
}

func (r *MongoLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.Coll.InsertOne(ctx, lead); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *MongoLeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoLeadRepository) findOne(ctx context.Context, filter bson.M) (*entity.Lead, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var lead entity.Lead
	err := r.Coll.FindOne(ctx, filter).Decode(&lead)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return &lead, nil
}

func (r *MongoLeadRepository) List(ctx context.Context, skip, limit int) ([]*entity.Lead, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.Coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	leads := make([]*entity.Lead, 0, limit)
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	return leads, nil
}

func (r *MongoLeadRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if !since.IsZero() {
		filter["created_at"] = bson.M{"$gte": since}
	}

	count, err := r.Coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return count, nil
}

func (r *MongoLeadRepository) SetFlag(ctx context.Context, id string, flag entity.LeadFlag, at time.Time) error {
	if !flag.Valid() {
		return entity.ErrInvalidFlag
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{string(flag): true, "updated_at": at}}
	res, err := r.Coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *MongoLeadRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.Coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *MongoLeadRepository) Ping(ctx context.Context) error {
	return r.Coll.Database().Client().Ping(ctx, readpref.Primary())
}

func (r *MongoLeadRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.Timeout)
}
