package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduleItem struct {
	key   string
	dueAt *time.Time
}

func createTestSchedule() Schedule[scheduleItem] {
	return CreateSchedule[scheduleItem](
		func(item scheduleItem) string { return item.key },
		func(item scheduleItem) *time.Time { return item.dueAt },
	)
}

func dueIn(offset time.Duration) *time.Time {
	due := time.Now().Add(offset)
	return &due
}

func TestSchedule_PopsInDueOrder(t *testing.T) {
	schedule := createTestSchedule()

	schedule.Schedule(&scheduleItem{key: "b", dueAt: dueIn(-time.Minute)})
	schedule.Schedule(&scheduleItem{key: "a", dueAt: dueIn(-2 * time.Minute)})
	schedule.Schedule(&scheduleItem{key: "c", dueAt: dueIn(time.Hour)})

	first := schedule.TryPop()
	require.NotNil(t, first)
	assert.Equal(t, "a", first.key)

	second := schedule.TryPop()
	require.NotNil(t, second)
	assert.Equal(t, "b", second.key)

	// "c" is not due yet
	assert.Nil(t, schedule.TryPop())
	assert.Equal(t, 1, schedule.Len())
}

func TestSchedule_IgnoresItemsWithoutDueTime(t *testing.T) {
	schedule := createTestSchedule()

	schedule.Schedule(&scheduleItem{key: "a"})

	assert.False(t, schedule.IsScheduled("a"))
	assert.Zero(t, schedule.Len())
}

func TestSchedule_Remove(t *testing.T) {
	schedule := createTestSchedule()

	schedule.Schedule(&scheduleItem{key: "a", dueAt: dueIn(-time.Minute)})
	schedule.Remove("a")

	assert.False(t, schedule.IsScheduled("a"))
	assert.Nil(t, schedule.TryPop())
}

func TestSchedule_RescheduleMovesItem(t *testing.T) {
	schedule := createTestSchedule()

	item := &scheduleItem{key: "a", dueAt: dueIn(-time.Minute)}
	schedule.Schedule(item)

	item.dueAt = dueIn(time.Hour)
	schedule.Reschedule(item)

	assert.True(t, schedule.IsScheduled("a"))
	assert.Nil(t, schedule.TryPop())
}

func TestSchedule_RescheduleClearsWhenDueTimeRemoved(t *testing.T) {
	schedule := createTestSchedule()

	item := &scheduleItem{key: "a", dueAt: dueIn(time.Hour)}
	schedule.Schedule(item)

	item.dueAt = nil
	schedule.Reschedule(item)

	assert.False(t, schedule.IsScheduled("a"))
	assert.Zero(t, schedule.Len())
}
