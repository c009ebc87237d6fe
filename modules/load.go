package modules

import (
	"github.com/fieldgrid-io/fieldgrid/modules/inventory"
	"github.com/fieldgrid-io/fieldgrid/pkg/application"
)

var BuiltInModules = []application.Module{
	inventory.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
