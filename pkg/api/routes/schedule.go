package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/controlroom/pkg/snapshot"
	"github.com/travigo/controlroom/pkg/timetable"
)

func ScheduleRouter(router fiber.Router, schedule *snapshot.Service) {
	router.Get("/", func(c *fiber.Ctx) error {
		trains, err := schedule.GetSchedule(c.UserContext())
		if err != nil {
			log.Error().Err(err).Msg("Failed to build schedule snapshot")

			c.Status(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Error fetching trains",
			})
		}

		if trains == nil {
			trains = []*timetable.LiveTrainView{}
		}

		return c.JSON(fiber.Map{
			"data": fiber.Map{
				"trains": trains,
			},
		})
	})
}
