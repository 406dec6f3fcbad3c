package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/controlroom/pkg/controlroom"
	"github.com/travigo/controlroom/pkg/position"
	"github.com/travigo/controlroom/pkg/snapshot"
	"github.com/travigo/controlroom/pkg/timetable"
)

func SimulationRouter(router fiber.Router, schedule *snapshot.Service) {
	router.Get("/positions", func(c *fiber.Ctx) error {
		clock := controlroom.DefaultStartMinutes

		if clockQuery := c.Query("clock"); clockQuery != "" {
			parsed, err := strconv.Atoi(clockQuery)
			if err != nil || parsed < 0 || parsed >= timetable.MinutesPerDay {
				c.Status(fiber.StatusBadRequest)
				return c.JSON(fiber.Map{
					"error": "clock must be minutes since midnight",
				})
			}
			clock = parsed
		}

		trains, err := schedule.GetSchedule(c.UserContext())
		if err != nil {
			log.Error().Err(err).Msg("Failed to build schedule snapshot for positions")

			c.Status(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Error fetching trains",
			})
		}

		return c.JSON(fiber.Map{
			"clock":   clock,
			"markers": position.Markers(trains, clock),
		})
	})
}
