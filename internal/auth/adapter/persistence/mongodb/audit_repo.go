package mongodb

import (
	"context"
	"time"

	"wellness-admin/internal/auth/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// auditRetention is the TTL on audit documents. 90 days keeps the collection
// bounded without losing the window operators actually look at.
const auditRetention = 90 * 24 * time.Hour

// MongoAuditRepository persists authentication events to MongoDB.
type MongoAuditRepository struct {
	events *mongo.Collection
}

// NewMongoAuditRepository creates the audit repository and its indexes.
func NewMongoAuditRepository(db *mongo.Database, collectionName string) (*MongoAuditRepository, error) {
	repo := &MongoAuditRepository{
		events: db.Collection(collectionName),
	}

	ctx := context.Background()

	kindIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "kind", Value: 1}, {Key: "at", Value: -1}},
	}
	if _, err := repo.events.Indexes().CreateOne(ctx, kindIndex); err != nil {
		return nil, err
	}

	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetSparse(true),
	}
	if _, err := repo.events.Indexes().CreateOne(ctx, emailIndex); err != nil {
		return nil, err
	}

	ttlIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(auditRetention.Seconds())),
	}
	if _, err := repo.events.Indexes().CreateOne(ctx, ttlIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// Record inserts one audit event.
func (r *MongoAuditRepository) Record(ctx context.Context, event *repository.AuthEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}

	_, err := r.events.InsertOne(ctx, event)
	return err
}

// RecentByEmail returns the latest events for one account, newest first.
// Operator tooling uses this to answer "why can't this person log in".
func (r *MongoAuditRepository) RecentByEmail(ctx context.Context, email string, limit int64) ([]*repository.AuthEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	cursor, err := r.events.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*repository.AuthEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

var _ repository.AuditRepository = (*MongoAuditRepository)(nil)
