package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/controlroom/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var Instance *MongoInstance

const defaultConnectionString = "mongodb://localhost:27017/"
const defaultDatabase = "controlroom"

func Connect() error {
	env := util.GetEnvironmentVariables()

	connectionString := defaultConnectionString
	dbName := defaultDatabase

	if env["CONTROLROOM_MONGODB_CONNECTION"] != "" {
		connectionString = env["CONTROLROOM_MONGODB_CONNECTION"]
	}

	if env["CONTROLROOM_MONGODB_DATABASE"] != "" {
		dbName = env["CONTROLROOM_MONGODB_DATABASE"]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Instance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	createIndexes()

	log.Info().Str("database", dbName).Msg("Connected to MongoDB")

	return nil
}

func Disconnect() {
	if Instance == nil {
		return
	}

	if err := Instance.Client.Disconnect(context.Background()); err != nil {
		log.Error().Err(err).Msg("Disconnecting from MongoDB")
	}
}

func GetCollection(collectionName string) *mongo.Collection {
	return Instance.Database.Collection(collectionName)
}
