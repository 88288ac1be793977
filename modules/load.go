package modules

import (
	"github.com/evergreen-centers/evergreen/modules/content"
	"github.com/evergreen-centers/evergreen/pkg/application"
)

func BuiltInModules() []application.Module {
	return []application.Module{
		content.NewModule(),
	}
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range append(BuiltInModules(), externalModules...) {
		if err := module.Register(app); err != nil {
			return err
		}
		app.Logger().WithField("module", module.Name()).Info("module registered")
	}
	return nil
}
