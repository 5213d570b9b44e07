package repository

import (
	"context"
	"errors"
	"time"

	"patroltrack-service/internal/domain/entity"
	"patroltrack-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWorkerLocationRepository implements WorkerLocationRepository
type MongoWorkerLocationRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkerLocationRepository creates a new worker location repository
func NewMongoWorkerLocationRepository(db *mongo.Database) repository.WorkerLocationRepository {
	collection := db.Collection("worker_locations")

	// Create unique index on workerId
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"workerId": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoWorkerLocationRepository{
		collection: collection,
	}
}

// Upsert creates or updates the worker's last-known position
func (r *MongoWorkerLocationRepository) Upsert(ctx context.Context, location *entity.WorkerLocation) error {
	location.UpdatedAt = time.Now()

	// For new records
	if location.ID == "" {
		location.ID = primitive.NewObjectID().Hex()
	}

	updateDoc := bson.M{
		"workerId":  location.WorkerID,
		"latitude":  location.Latitude,
		"longitude": location.Longitude,
		"updatedAt": location.UpdatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"workerId": location.WorkerID}

	result, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{"$set": updateDoc},
		opts,
	)
	if err != nil {
		return err
	}

	// If it was an insert, we need to get the new ID
	if result.UpsertedCount > 0 && result.UpsertedID != nil {
		if id, ok := result.UpsertedID.(primitive.ObjectID); ok {
			location.ID = id.Hex()
		}
	}

	return nil
}

// FindByWorker finds the last-known position for a worker
func (r *MongoWorkerLocationRepository) FindByWorker(ctx context.Context, workerID uint) (*entity.WorkerLocation, error) {
	var location entity.WorkerLocation
	err := r.collection.FindOne(ctx, bson.M{"workerId": workerID}).Decode(&location)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}
