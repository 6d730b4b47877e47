package app

import (
	"go.uber.org/fx"

	"github.com/ecnhealth/clinic_console/internal/service/assessment"
	"github.com/ecnhealth/clinic_console/internal/service/dashboard"
	"github.com/ecnhealth/clinic_console/internal/service/roster"
	"github.com/ecnhealth/clinic_console/internal/service/treatment"
	"github.com/ecnhealth/clinic_console/pkg/studyapi"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideRosterService,
		ProvideAssessmentService,
		ProvideTreatmentService,
		ProvideDashboardService,
	),
)

func ProvideRosterService(api *studyapi.Client) roster.Service {
	return roster.New(api)
}

func ProvideAssessmentService(api *studyapi.Client) assessment.Service {
	return assessment.New(api)
}

func ProvideTreatmentService(api *studyapi.Client) treatment.Service {
	return treatment.New(api)
}

func ProvideDashboardService(api *studyapi.Client) dashboard.Service {
	return dashboard.New(api)
}
