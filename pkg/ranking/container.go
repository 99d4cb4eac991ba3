package ranking

import "sync"

// Container is the fixed target whose whole content is replaced on every
// render.
type Container interface {
	Replace(markup []byte) error
}

// ContainerFunc adapts a function to the Container interface.
type ContainerFunc func(markup []byte) error

func (f ContainerFunc) Replace(markup []byte) error {
	return f(markup)
}

// Buffer is an in-memory Container.
type Buffer struct {
	mu       sync.RWMutex
	content  []byte
	replaced int
}

var _ Container = (*Buffer)(nil)

func (b *Buffer) Replace(markup []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.content = append(b.content[:0:0], markup...)
	b.replaced++
	return nil
}

// Bytes returns a copy of the current content.
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]byte(nil), b.content...)
}

// String returns the current content.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Replaced counts how many times the content was rebuilt.
func (b *Buffer) Replaced() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.replaced
}
