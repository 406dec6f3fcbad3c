package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/controlroom/pkg/advisory"
	"github.com/travigo/controlroom/pkg/api/routes"
	"github.com/travigo/controlroom/pkg/reports"
	"github.com/travigo/controlroom/pkg/snapshot"
	"github.com/travigo/controlroom/pkg/timetable"
)

// Options are the collaborators behind the web API. SummaryCache and
// KPIPublisher are optional.
type Options struct {
	Schedule *snapshot.Service
	Provider advisory.Provider

	SummaryCache *timetable.SummaryCache
	KPIPublisher reports.SnapshotPublisher
}

func NewApp(options Options) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/api")

	group.Get("version", routes.APIVersion)

	routes.ScheduleRouter(group.Group("/schedule"), options.Schedule)
	routes.TrainsRouter(group.Group("/trains"), options.Schedule.Store, options.SummaryCache)
	routes.AdvisoryRouter(group, options.Schedule, options.Provider)
	routes.ReportsRouter(group.Group("/reports"), options.Schedule, options.KPIPublisher)
	routes.SimulationRouter(group.Group("/simulation"), options.Schedule)

	return webApp
}

func SetupServer(listen string, options Options) error {
	return NewApp(options).Listen(listen)
}
