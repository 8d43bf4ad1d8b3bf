package jobs

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_ReplacesByName(t *testing.T) {
	s := NewScheduler(0)
	noop := func(ctx context.Context) error { return nil }

	require.NoError(t, s.Add("cleanup", "@daily", noop))
	require.NoError(t, s.Add("promo", "0 0 10 * * *", noop))
	require.NoError(t, s.Add("cleanup", "@hourly", noop))

	names := s.Names()
	sort.Strings(names)
	assert.Equal(t, []string{"cleanup", "promo"}, names)
	assert.Len(t, s.cron.Entries(), 2)

	s.Remove("promo")
	assert.Equal(t, []string{"cleanup"}, s.Names())
}

func TestAdd_InvalidSchedule(t *testing.T) {
	s := NewScheduler(0)

	err := s.Add("broken", "every tuesday", func(ctx context.Context) error { return nil })

	assert.Error(t, err)
	assert.Empty(t, s.Names())
}

func TestRun_PassesDeadline(t *testing.T) {
	s := NewScheduler(time.Minute)

	var hadDeadline bool
	s.Run("probe", func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return errors.New("logged, not returned")
	})

	assert.True(t, hadDeadline)
}
