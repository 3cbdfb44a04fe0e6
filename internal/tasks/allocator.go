package tasks

// Allocator issues increasing task ids.
type Allocator struct {
	next int
}

// NewAllocator returns an allocator whose first id is start (or 1).
func NewAllocator(start int) *Allocator {
	if start < 1 {
		start = 1
	}
	return &Allocator{next: start}
}

// Next returns the current counter and advances it.
func (a *Allocator) Next() int {
	id := a.next
	a.next++
	return id
}

// Peek returns the id the next call to Next will return.
func (a *Allocator) Peek() int { return a.next }

// Recover positions the counter after maxID. Used when no counter was saved.
func (a *Allocator) Recover(maxID int) {
	a.next = maxID + 1
}

// Reset starts counting from 1 again.
func (a *Allocator) Reset() { a.next = 1 }
