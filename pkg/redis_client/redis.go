package redis_client

import (
	"context"
	"strconv"

	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/controlroom/pkg/util"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionAddress = "localhost:6379"
const defaultDatabase = 0

// Configured reports whether Redis has been set up for this environment
func Configured() bool {
	return util.GetEnvironmentVariables()["CONTROLROOM_REDIS_ADDRESS"] != ""
}

func Connect() error {
	address := defaultConnectionAddress
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["CONTROLROOM_REDIS_ADDRESS"] != "" {
		address = env["CONTROLROOM_REDIS_ADDRESS"]
	}

	if env["CONTROLROOM_REDIS_DATABASE"] != "" {
		n, err := strconv.Atoi(env["CONTROLROOM_REDIS_DATABASE"])
		if err != nil {
			return err
		}
		database = n
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: env["CONTROLROOM_REDIS_PASSWORD"],
		DB:       database,
	})

	if err := Client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	errChan := make(chan error, 10)
	go logQueueErrors(errChan)

	var err error
	QueueConnection, err = rmq.OpenConnectionWithRedisClient("controlroom", Client, errChan)
	if err != nil {
		return err
	}

	log.Info().Str("address", address).Msg("Connected to Redis")

	return nil
}

func logQueueErrors(errChan <-chan error) {
	for err := range errChan {
		log.Error().Err(err).Msg("Redis queue error")
	}
}
