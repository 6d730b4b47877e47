package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/ecnhealth/clinic_console/config"
	"github.com/ecnhealth/clinic_console/internal/api/http/handler"
	"github.com/ecnhealth/clinic_console/internal/service/assessment"
	"github.com/ecnhealth/clinic_console/internal/service/dashboard"
	"github.com/ecnhealth/clinic_console/internal/service/roster"
	"github.com/ecnhealth/clinic_console/internal/service/treatment"
	"github.com/ecnhealth/clinic_console/pkg/studyapi"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg           *config.Config
	API           *studyapi.Client
	RosterSvc     roster.Service
	AssessmentSvc assessment.Service
	TreatmentSvc  treatment.Service
	DashboardSvc  dashboard.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Handlers
	patientH := handler.NewPatientHandler(r.p.RosterSvc)
	assessmentH := handler.NewAssessmentHandler(r.p.AssessmentSvc)
	treatmentH := handler.NewTreatmentHandler(r.p.TreatmentSvc)
	dashboardH := handler.NewDashboardHandler(r.p.DashboardSvc)

	api := app.Group("/api/v1")

	// 3. Delegate to sub-files
	r.registerDashboardRoutes(api, dashboardH)
	r.registerPatientRoutes(api, patientH)
	r.registerAssessmentRoutes(api, assessmentH)
	r.registerTreatmentRoutes(api, treatmentH)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	// readiness follows the upstream study API: the console serves
	// nothing useful while the backend is down
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
			defer cancel()
			return r.p.API.Health(ctx) == nil
		},
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
