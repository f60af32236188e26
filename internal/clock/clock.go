package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock supplies the current time to the ledger. Order timestamps are
// environment input, never generated deeper in the core.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// NewSystemClock returns a Clock backed by the wall clock.
func NewSystemClock() Clock {
	return systemClock{}
}

// Module provides the system clock.
var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)
