package routes

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/controlroom/pkg/timetable"
)

type trainsHandler struct {
	store timetable.Store
	cache *timetable.SummaryCache
}

// TrainsRouter serves the train selection list and record creation. cache
// may be nil, in which case every list request goes to the store.
func TrainsRouter(router fiber.Router, store timetable.Store, cache *timetable.SummaryCache) {
	handler := &trainsHandler{store: store, cache: cache}

	router.Get("/", handler.listTrains)
	router.Post("/", handler.createTrain)
}

func (h *trainsHandler) listTrains(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if h.cache != nil {
		if payload, ok := h.cache.Get(ctx); ok {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(payload)
		}
	}

	trains, err := h.store.ListTrains(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list trains")

		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Error fetching trains",
		})
	}
	if trains == nil {
		trains = []*timetable.TrainRecord{}
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"summary"},
	}, trains)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce trains",
		})
	}

	payload, err := json.Marshal(reduced)
	if err != nil {
		return err
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, string(payload)); err != nil {
			log.Warn().Err(err).Msg("Failed to cache train list")
		}
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

func (h *trainsHandler) createTrain(c *fiber.Ctx) error {
	var train timetable.TrainRecord
	if err := c.BodyParser(&train); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"success": false,
			"error":   "Invalid train body",
		})
	}

	train.ApplyDefaults()
	if err := train.Validate(); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	ctx := c.UserContext()

	err := h.store.CreateTrain(ctx, &train)
	switch {
	case errors.Is(err, timetable.ErrDuplicateTrain):
		c.Status(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"success": false,
			"error":   "Train already exists",
		})
	case err != nil:
		log.Error().Err(err).Int("trainNo", train.TrainNo).Msg("Failed to create train")

		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"success": false,
			"error":   "Error creating train",
		})
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to invalidate train list cache")
		}
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"success": true,
		"created": train,
	})
}
