package token

import (
	"github.com/smallbiznis/derent/internal/token/service"
	"go.uber.org/fx"
)

var Module = fx.Module("token.ledger",
	fx.Provide(service.NewLedger),
)
