package http

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"

	"github.com/ecnhealth/clinic_console/config"
	"github.com/ecnhealth/clinic_console/internal/api/http/router"
	"github.com/ecnhealth/clinic_console/internal/app"
)

func Start(cfg *config.Config, timeout time.Duration) {
	fx.New(
		fx.Supply(cfg),
		app.InfraModule,
		app.ServiceModule,
		router.Module,
		Module,

		// force creation of the fiber.App so its OnStart hook runs
		fx.Invoke(func(*fiber.App) {}),

		fx.StopTimeout(timeout),
	).Run()
}
