package participantRepo

import (
	"context"
	"fmt"
	"time"

	"panelwise/database"
	"panelwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoParticipantRepo implements ParticipantRepository using MongoDB.
type MongoParticipantRepo struct {
	coll *mongo.Collection
}

// NewMongoParticipantRepo creates a new ParticipantRepository backed by
// the panelwise participants collection.
func NewMongoParticipantRepo() ParticipantRepository {
	coll := database.MongoClient.Database("panelwise").Collection("participants")
	repo := &MongoParticipantRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoParticipantRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a participant by its unique ID.
func (r *MongoParticipantRepo) GetByID(ctx context.Context, id string) (*models.Participant, error) {
	var p models.Participant
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to fetch participant with id %s: %w", id, err)
	}
	return &p, nil
}

// Lookup retrieves the participants for the given ids, preserving the
// order of ids and omitting ids with no matching record.
func (r *MongoParticipantRepo) Lookup(ctx context.Context, ids []string) ([]models.Participant, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to look up participants: %w", err)
	}
	defer cursor.Close(ctx)

	byID := make(map[string]models.Participant, len(ids))
	for cursor.Next(ctx) {
		var p models.Participant
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode participant: %w", err)
		}
		byID[p.ID] = p
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("participant lookup cursor failed: %w", err)
	}

	participants := make([]models.Participant, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			participants = append(participants, p)
		}
	}
	return participants, nil
}
