package utils

import (
	"sort"
	"sync"
	"time"
)

type (
	// Schedule An ordered set of items with a due time, keyed by a unique string.
	// Items become available via TryPop once their due time has passed.
	Schedule[T any] interface {
		Schedule(item *T)
		Reschedule(item *T)
		IsScheduled(key string) bool

		Remove(key string)

		TryPop() *T
		Len() int
	}

	schedule[T any] struct {
		items    []*T
		itemsMap map[string]*T

		mutex *sync.Mutex

		keyGetter  func(T) string
		timeGetter func(T) *time.Time
	}
)

func CreateSchedule[T any](keyGetter func(T) string, timeGetter func(T) *time.Time) Schedule[T] {
	return &schedule[T]{
		items:      make([]*T, 0),
		itemsMap:   make(map[string]*T),
		mutex:      &sync.Mutex{},
		keyGetter:  keyGetter,
		timeGetter: timeGetter,
	}
}

func (s *schedule[T]) Schedule(item *T) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Items without a due time are never scheduled
	if s.timeGetter(*item) == nil {
		return
	}

	s.insert(s.keyGetter(*item), item)
}

func (s *schedule[T]) Reschedule(item *T) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.remove(s.keyGetter(*item))

	if s.timeGetter(*item) != nil {
		s.insert(s.keyGetter(*item), item)
	}
}

func (s *schedule[T]) IsScheduled(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	_, ok := s.itemsMap[key]
	return ok
}

func (s *schedule[T]) Remove(key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.remove(key)
}

func (s *schedule[T]) TryPop() *T {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.items) == 0 || s.timeGetter(*s.items[0]).After(time.Now()) {
		return nil
	}

	item := s.items[0]
	s.items = s.items[1:]
	delete(s.itemsMap, s.keyGetter(*item))

	return item
}

func (s *schedule[T]) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.items)
}

func (s *schedule[T]) remove(key string) {
	item, isScheduled := s.itemsMap[key]
	if !isScheduled {
		return
	}

	delete(s.itemsMap, key)
	for i, candidate := range s.items {
		if candidate == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *schedule[T]) insert(key string, item *T) {
	itemTime := s.timeGetter(*item).Unix()
	insertIndex := sort.Search(len(s.items), func(i int) bool {
		return s.timeGetter(*s.items[i]).Unix() >= itemTime
	})

	s.items = append(s.items, nil)
	copy(s.items[insertIndex+1:], s.items[insertIndex:])
	s.items[insertIndex] = item
	s.itemsMap[key] = item
}
