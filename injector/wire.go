//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/lixenwraith/retain/config"
	"github.com/lixenwraith/retain/window"
)

// InitializeApplication builds an Application and returns its cleanup
func InitializeApplication(cfg config.Config) (*window.Application, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
