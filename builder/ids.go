package builder

import "fmt"

// idAllocator hands out edge IDs that are unique within one build. The base
// ID is derived from the endpoints and relationship kind; a colliding base
// gets an incrementing numeric suffix.
type idAllocator struct {
	used map[string]bool
}

func newIDAllocator() *idAllocator {
	return &idAllocator{
		used: map[string]bool{},
	}
}

func (allocator *idAllocator) Allocate(base string) string {
	if !allocator.used[base] {
		allocator.used[base] = true
		return base
	}

	for suffix := 1; ; suffix++ {
		candidate := fmt.Sprintf("%s-%d", base, suffix)
		if !allocator.used[candidate] {
			allocator.used[candidate] = true
			return candidate
		}
	}
}
