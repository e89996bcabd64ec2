package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wyvernchess/coldiron/pkg/engine"
)

func TestDefaultTimeControlGuaranteedTimePerMove(t *testing.T) {
	// 40 moves in 600 seconds, no increment: 15s/move.
	require.Equal(t, 15*time.Second, engine.DefaultTimeControl.GuaranteedTimePerMove())
}

func TestTimeControlWithIncrement(t *testing.T) {
	tc := engine.TimeControl{Period: 40, SecondsPerPeriod: 400, Increment: 2}
	require.Equal(t, 12*time.Second, tc.GuaranteedTimePerMove())
}

func TestTimeControlSuddenDeath(t *testing.T) {
	tc := engine.TimeControl{Period: 0, SecondsPerPeriod: 0, Increment: 5}
	require.Equal(t, 5*time.Second, tc.GuaranteedTimePerMove())
}
