package inventory

import (
	"embed"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/infrastructure/persistence"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/presentation/controllers"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/services"
	"github.com/fieldgrid-io/fieldgrid/pkg/application"
)

//go:embed infrastructure/persistence/schema/inventory-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	regions := persistence.NewRegionRepository()
	districts := persistence.NewDistrictRepository()
	landmarks := persistence.NewLandmarkRepository()
	poles := persistence.NewPoleRepository()
	junctionBoxes := persistence.NewJunctionBoxRepository()
	components := persistence.NewComponentRepository()
	credentials := persistence.NewCredentialRepository()
	workbooks := persistence.NewWorkbookRepository()

	archive := services.NewArchiveService(workbooks, app.EventPublisher())

	app.RegisterServices(
		archive,
		services.NewImportService(
			archive,
			regions,
			districts,
			landmarks,
			poles,
			junctionBoxes,
			components,
			credentials,
			app.EventPublisher(),
		),
		services.NewRegionService(regions),
		services.NewDistrictService(districts),
		services.NewLandmarkService(landmarks),
		services.NewPoleService(poles),
		services.NewJunctionBoxService(junctionBoxes),
		services.NewComponentService(components, credentials),
		services.NewCredentialService(credentials),
		services.NewExcelService(workbooks),
		services.NewSearchService(
			regions,
			districts,
			landmarks,
			poles,
			junctionBoxes,
			components,
			credentials,
			workbooks,
		),
	)

	app.RegisterControllers(
		controllers.NewImportController(app),
		controllers.NewEntitiesController(app),
		controllers.NewExcelController(app),
		controllers.NewSearchController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "inventory"
}
