package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jemis-lakhani/points-go-backend/internal/domain/entity"
	"github.com/jemis-lakhani/points-go-backend/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightRepository implements FlightRepository on a flights
// collection.
type MongoFlightRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRepository creates the flight repository and its
// indexes.
func NewMongoFlightRepository(db *mongo.Database) repository.FlightRepository {
	collection := db.Collection("flights")

	// Index on createdAt for the newest-first listing
	ctx := context.Background()
	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}
	collection.Indexes().CreateOne(ctx, createdAtIndex)

	return &MongoFlightRepository{
		collection: collection,
	}
}

// Create inserts a new record and fills in its assigned id.
func (r *MongoFlightRepository) Create(ctx context.Context, record *entity.FlightRecord) error {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindByID returns the record, or nil when the id is unknown.
func (r *MongoFlightRepository) FindByID(ctx context.Context, id string) (*entity.FlightRecord, error) {
	var record entity.FlightRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindAll returns every record, newest creation first.
func (r *MongoFlightRepository) FindAll(ctx context.Context) ([]*entity.FlightRecord, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]*entity.FlightRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateProgram sets the program field and refreshes lastUpdated,
// returning the updated record or nil when the id is unknown.
func (r *MongoFlightRepository) UpdateProgram(ctx context.Context, id string, program *string, now time.Time) (*entity.FlightRecord, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{
		"program":     program,
		"lastUpdated": now,
	}}

	var record entity.FlightRecord
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// PatchAvailability applies the patch as one UpdateOne with dotted
// $set paths per (date, field), so two writers touching disjoint
// date-keys or disjoint fields of the same key never clobber each
// other. Whole-map overwrites are deliberately avoided.
func (r *MongoFlightRepository) PatchAvailability(ctx context.Context, id string, patch entity.AvailabilityPatch, ensure []string, now time.Time) (bool, error) {
	set := bson.M{"lastUpdated": now}

	for _, date := range ensure {
		fields := patch[date]
		if !fields.Economy.Set && !fields.Business.Set {
			// New date with an empty fragment still gets an entry.
			set[fmt.Sprintf("availability.%s", date)] = entity.AvailabilityEntry{}
		}
	}
	for date, fields := range patch {
		if fields.Economy.Set {
			set[fmt.Sprintf("availability.%s.economy", date)] = fields.Economy.Value
		}
		if fields.Business.Set {
			set[fmt.Sprintf("availability.%s.business", date)] = fields.Business.Value
		}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// DeleteByID removes the record, reporting whether it existed.
func (r *MongoFlightRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
