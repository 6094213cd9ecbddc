package shutdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShutdown_Order(t *testing.T) {
	var order []string
	AddHook("second", func() { order = append(order, "second") })
	AddHookWithPriority("db", PriorityDatabase, func() { order = append(order, "db") })
	AddHookWithPriority("jobs", PriorityJobs, func() { order = append(order, "jobs") })
	AddHook("panics", func() { panic("boom") })
	AddHook("third", func() { order = append(order, "third") })

	Shutdown()
	assert.Equal(t, []string{"jobs", "second", "third", "db"}, order)

	Shutdown()
	assert.Len(t, order, 4, "hooks run once")
}

func TestWithSignals_CancelFunc(t *testing.T) {
	ctx, cancel := WithSignals(context.Background())
	assert.NoError(t, ctx.Err())
	cancel()
	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
