package platform

import (
	"github.com/smallbiznis/derent/internal/platform/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("platform.repository",
	fx.Provide(repository.Provide),
)
