package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/controlroom/pkg/reports"
	"github.com/travigo/controlroom/pkg/snapshot"
)

// ReportsRouter serves KPIs for a fresh snapshot. Each snapshot is also
// handed to publisher when one is configured.
func ReportsRouter(router fiber.Router, schedule *snapshot.Service, publisher reports.SnapshotPublisher) {
	router.Get("/kpis", func(c *fiber.Ctx) error {
		trains, err := schedule.GetSchedule(c.UserContext())
		if err != nil {
			log.Error().Err(err).Msg("Failed to build schedule snapshot for KPIs")

			c.Status(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Error fetching trains",
			})
		}

		kpis := reports.Calculate(trains, time.Now())

		if publisher != nil {
			if err := publisher.Publish(kpis); err != nil {
				log.Warn().Err(err).Msg("Failed to publish KPI snapshot")
			}
		}

		return c.JSON(kpis)
	})
}
