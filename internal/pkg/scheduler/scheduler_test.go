package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerScheduler_ArmFires(t *testing.T) {
	s := NewTimerScheduler(nil)
	defer s.Stop()

	fired := make(chan struct{})
	s.Arm("txn-1", time.Now().UTC().Add(10*time.Millisecond), func() {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}

	assert.Equal(t, 0, s.Armed())
}

func TestTimerScheduler_PastDeadlineFiresImmediately(t *testing.T) {
	s := NewTimerScheduler(nil)
	defer s.Stop()

	fired := make(chan struct{})
	s.Arm("txn-1", time.Now().UTC().Add(-time.Minute), func() {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("past deadline did not fire")
	}
}

func TestTimerScheduler_CancelPreventsFire(t *testing.T) {
	s := NewTimerScheduler(nil)
	defer s.Stop()

	var fired int32
	s.Arm("txn-1", time.Now().UTC().Add(20*time.Millisecond), func() {
		atomic.AddInt32(&fired, 1)
	})
	s.Cancel("txn-1")

	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
	assert.Equal(t, 0, s.Armed())
}

func TestTimerScheduler_RearmReplacesDeadline(t *testing.T) {
	s := NewTimerScheduler(nil)
	defer s.Stop()

	var firstFired int32
	second := make(chan struct{})

	s.Arm("txn-1", time.Now().UTC().Add(20*time.Millisecond), func() {
		atomic.AddInt32(&firstFired, 1)
	})
	s.Arm("txn-1", time.Now().UTC().Add(50*time.Millisecond), func() {
		close(second)
	})

	assert.Equal(t, 1, s.Armed())

	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatal("re-armed timer did not fire")
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(&firstFired))
}

func TestTimerScheduler_StopCancelsAll(t *testing.T) {
	s := NewTimerScheduler(nil)

	s.Arm("txn-1", time.Now().UTC().Add(time.Hour), func() {})
	s.Arm("txn-2", time.Now().UTC().Add(time.Hour), func() {})
	assert.Equal(t, 2, s.Armed())

	s.Stop()

	assert.Equal(t, 0, s.Armed())
}
