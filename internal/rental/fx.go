package rental

import (
	"github.com/smallbiznis/derent/internal/rental/repository"
	"github.com/smallbiznis/derent/internal/rental/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rental.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
