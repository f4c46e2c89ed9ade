package turn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver consumes one pending monster intent per pipeline run.
type fakeDriver struct {
	runs    int
	pending int
	onRun   func()
}

func (d *fakeDriver) RunPipeline() {
	d.runs++
	if d.pending > 0 && d.runs > 1 {
		d.pending--
	}
	if d.onRun != nil {
		d.onRun()
	}
}

func (d *fakeDriver) MonstersPending() bool { return d.pending > 0 }

func TestTickWithoutInputDoesNothing(t *testing.T) {
	d := &fakeDriver{pending: 1}
	s := NewScheduler(d, nil)

	passes, err := s.Tick(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, passes)
	assert.Equal(t, 0, d.runs)
	assert.Equal(t, AwaitingInput, s.State())
}

func TestTickRunsMonsterPassWhenIntentPending(t *testing.T) {
	d := &fakeDriver{pending: 1}
	s := NewScheduler(d, nil)

	passes, err := s.Tick(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, passes)
	assert.Equal(t, 2, d.runs)
	assert.Equal(t, AwaitingInput, s.State())
}

func TestTickSkipsMonsterPassWhenNothingPending(t *testing.T) {
	d := &fakeDriver{}
	s := NewScheduler(d, nil)

	passes, err := s.Tick(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, passes)
	assert.Equal(t, AwaitingInput, s.State())
}

func TestConsecutiveTicks(t *testing.T) {
	d := &fakeDriver{}
	s := NewScheduler(d, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		passes, err := s.Tick(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, 1, passes)
	}
	assert.Equal(t, 3, d.runs)
}

func TestTickRunawayResetsState(t *testing.T) {
	d := &fakeDriver{}
	s := NewScheduler(d, nil)
	// Rewinding mid-pass leaves the machine where resolve cannot fire.
	d.onRun = func() { s.machine.SetState(AwaitingInput) }

	_, err := s.Tick(context.Background(), true)
	require.ErrorIs(t, err, ErrRunaway)
	assert.Equal(t, AwaitingInput, s.State())
}

func TestTickRecoversAfterRunaway(t *testing.T) {
	d := &fakeDriver{}
	s := NewScheduler(d, nil)
	s.machine.SetState(MonsterTurn)

	passes, err := s.Tick(context.Background(), false)
	require.NoError(t, err, "a stranded monster turn settles on the next tick")
	assert.Equal(t, 0, passes)
	assert.Equal(t, AwaitingInput, s.State())

	passes, err = s.Tick(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, passes)
}
