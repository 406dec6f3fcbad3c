package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/controlroom/pkg/advisory"
	"github.com/travigo/controlroom/pkg/snapshot"
	"github.com/travigo/controlroom/pkg/timetable"
)

type recommendBody struct {
	DisruptionTrainID int    `json:"disruptionTrainId"`
	Cause             string `json:"cause"`
}

type decisionBody struct {
	TrainNo int    `json:"trainNo"`
	Cause   string `json:"cause"`
}

// AdvisoryRouter serves the recommendation proxy at /ai/recommend and the
// rule table lookup at /decision
func AdvisoryRouter(router fiber.Router, schedule *snapshot.Service, provider advisory.Provider) {
	router.Post("/ai/recommend", func(c *fiber.Ctx) error {
		return recommend(c, schedule, provider)
	})
	router.Post("/decision", func(c *fiber.Ctx) error {
		return decision(c, schedule.Store)
	})
}

func recommend(c *fiber.Ctx, schedule *snapshot.Service, provider advisory.Provider) error {
	var body recommendBody
	if err := c.BodyParser(&body); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"success": false,
			"error":   "Invalid recommendation request",
		})
	}

	ctx := c.UserContext()

	records, err := schedule.Records(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load trains for recommendation")

		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"success": false,
			"error":   "Error fetching trains",
		})
	}

	request, err := advisory.NewRequest(body.DisruptionTrainID, body.Cause, records)
	if err != nil {
		return err
	}

	recommendations, err := provider.Recommend(ctx, request)
	if err != nil {
		log.Error().Err(err).Int("trainNo", body.DisruptionTrainID).Str("cause", body.Cause).Msg("Advisory provider failed")

		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"success": false,
			"error":   "AI service error",
		})
	}

	if recommendations == nil {
		recommendations = []advisory.Recommendation{}
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"recommendations": recommendations,
	})
}

func decision(c *fiber.Ctx, store timetable.Store) error {
	var body decisionBody
	if err := c.BodyParser(&body); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"suggestion": "Invalid decision request",
		})
	}

	train, err := store.GetTrain(c.UserContext(), body.TrainNo)
	switch {
	case errors.Is(err, timetable.ErrUnknownTrain):
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"suggestion": "Train not found",
		})
	case err != nil:
		log.Error().Err(err).Int("trainNo", body.TrainNo).Msg("Failed to load train for decision")

		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"suggestion": "Error generating decision",
		})
	}

	return c.JSON(fiber.Map{
		"suggestion": advisory.DecisionText(train, body.Cause),
	})
}
