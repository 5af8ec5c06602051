package viewcache

import "sync"

// Keys emitted when a course's completion state changes. An external
// rendering cache must drop both before the next read.
const CoursesListKey = "courses-list"

// CourseDetailKey returns the invalidation key for a single course view.
func CourseDetailKey(courseID string) string {
	return "course-detail:" + courseID
}

// Invalidator receives cache-invalidation signals for rendered views.
type Invalidator interface {
	Invalidate(keys ...string)
}

// Memory is an in-process Invalidator that tracks an epoch per key. A
// rendering layer compares the epoch it rendered at against the current
// one to decide whether its copy is stale.
type Memory struct {
	mu     sync.Mutex
	epochs map[string]uint64
}

func NewMemory() *Memory {
	return &Memory{epochs: make(map[string]uint64)}
}

// Invalidate bumps the epoch for each key.
func (m *Memory) Invalidate(keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		m.epochs[k]++
	}
}

// Epoch returns the current epoch for a key; zero means the key has never
// been invalidated.
func (m *Memory) Epoch(key string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epochs[key]
}
