package lighting

// Stack is a bounded, ordered collection of lights. Order is insertion order
// and is preserved by removal.
type Stack[T any] struct {
	lights   []T
	capacity int
}

// NewStack creates an empty stack holding at most capacity lights.
func NewStack[T any](capacity int) *Stack[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Stack[T]{
		lights:   make([]T, 0, capacity),
		capacity: capacity,
	}
}

// Add appends a light. Returns false if the stack is full.
func (s *Stack[T]) Add(light T) bool {
	if len(s.lights) >= s.capacity {
		return false
	}
	s.lights = append(s.lights, light)
	return true
}

// RemoveAt removes the light at index i, keeping the order of the rest.
// Returns false if i is out of range.
func (s *Stack[T]) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.lights) {
		return false
	}
	copy(s.lights[i:], s.lights[i+1:])
	var zero T
	s.lights[len(s.lights)-1] = zero
	s.lights = s.lights[:len(s.lights)-1]
	return true
}

// Clear removes all lights.
func (s *Stack[T]) Clear() {
	clear(s.lights)
	s.lights = s.lights[:0]
}

// Len returns the number of active lights.
func (s *Stack[T]) Len() int {
	return len(s.lights)
}

// Cap returns the maximum number of lights.
func (s *Stack[T]) Cap() int {
	return s.capacity
}

// All returns the active lights. The slice must not be modified.
func (s *Stack[T]) All() []T {
	return s.lights
}
