package timetable

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	Collection *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{Collection: collection}
}

func (s *MongoStore) ListTrains(ctx context.Context) ([]*TrainRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	trains := []*TrainRecord{}
	for cursor.Next(ctx) {
		var train *TrainRecord
		if err := cursor.Decode(&train); err != nil {
			log.Error().Err(err).Msg("Failed to decode Train")
			continue
		}

		trains = append(trains, train)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return trains, nil
}

func (s *MongoStore) GetTrain(ctx context.Context, trainNo int) (*TrainRecord, error) {
	var train *TrainRecord
	err := s.Collection.FindOne(ctx, bson.M{"trainNo": trainNo}).Decode(&train)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTrain, trainNo)
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return train, nil
}

func (s *MongoStore) CreateTrain(ctx context.Context, train *TrainRecord) error {
	_, err := s.Collection.InsertOne(ctx, train)

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %d", ErrDuplicateTrain, train.TrainNo)
	} else if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// ReplaceTrains upserts every train by trainNo and only then prunes the
// records that are not in trains. A failed write leaves the previous
// timetable in place instead of an empty collection.
func (s *MongoStore) ReplaceTrains(ctx context.Context, trains []*TrainRecord) error {
	trainNumbers := make([]int, 0, len(trains))
	models := make([]mongo.WriteModel, 0, len(trains))
	for _, train := range trains {
		trainNumbers = append(trainNumbers, train.TrainNo)
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"trainNo": train.TrainNo}).
			SetReplacement(train).
			SetUpsert(true))
	}

	if len(models) > 0 {
		if _, err := s.Collection.BulkWrite(ctx, models); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	result, err := s.Collection.DeleteMany(ctx, bson.M{"trainNo": bson.M{"$nin": trainNumbers}})
	if err != nil {
		log.Error().Err(err).Msg("Trains upserted but stale records could not be removed")
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	log.Debug().Int("upserted", len(models)).Int64("removed", result.DeletedCount).Msg("Replaced trains")

	return nil
}
