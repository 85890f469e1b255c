package persist

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestScheduler_ReplacesPendingTask(t *testing.T) {
	fc := clockwork.NewFakeClock()
	s := NewScheduler(fc)

	var first, second atomic.Int32
	s.Schedule(time.Second, func() { first.Add(1) })
	s.Schedule(time.Second, func() { second.Add(1) })
	require.True(t, s.Pending())

	fc.Advance(time.Second)
	require.Eventually(t, func() bool { return second.Load() == 1 }, waitFor, tick)
	require.Equal(t, int32(0), first.Load())
	require.False(t, s.Pending())
}

func TestScheduler_Cancel(t *testing.T) {
	fc := clockwork.NewFakeClock()
	s := NewScheduler(fc)

	var ran atomic.Int32
	s.Schedule(time.Second, func() { ran.Add(1) })
	require.True(t, s.Cancel())
	require.False(t, s.Cancel())

	fc.Advance(2 * time.Second)
	require.Never(t, func() bool { return ran.Load() > 0 }, 50*time.Millisecond, tick)
}
