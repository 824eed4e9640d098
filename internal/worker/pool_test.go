package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsAllTasksBeforeStop(t *testing.T) {
	p := NewPool(4)
	var n atomic.Int64
	for i := 0; i < 100; i++ {
		p.Submit(func() { n.Add(1) })
	}
	p.Stop()
	assert.EqualValues(t, 100, n.Load())
}

func TestPoolSurvivesPanickingTask(t *testing.T) {
	p := NewPool(1)
	var ran atomic.Bool
	p.Submit(func() { panic("boom") })
	p.Submit(func() { ran.Store(true) })
	p.Stop()
	assert.True(t, ran.Load())
}

func TestStopIsIdempotent(t *testing.T) {
	p := NewPool(0)
	p.Stop()
	assert.NotPanics(t, p.Stop)
}

func TestSubmitAfterStopIsDropped(t *testing.T) {
	p := NewPool(1)
	assert.True(t, p.Submit(func() {}))
	p.Stop()

	var ran atomic.Bool
	assert.NotPanics(t, func() {
		assert.False(t, p.Submit(func() { ran.Store(true) }))
	})
	assert.False(t, ran.Load())
}
