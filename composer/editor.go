package composer

import "sync"

// BufferEditor is a plain in-memory Editor. UI embeddings wrap their widget
// in the same interface; tests and headless callers use this one directly.
type BufferEditor struct {
	mu      sync.Mutex
	content string
	focused bool
}

var _ Editor = (*BufferEditor)(nil)

func NewBufferEditor() *BufferEditor {
	return &BufferEditor{}
}

func (e *BufferEditor) Content() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.content
}

func (e *BufferEditor) SetContent(content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.content = content
}

func (e *BufferEditor) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.content = ""
}

func (e *BufferEditor) Focus() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.focused = true
}

// Focused reports whether Focus has been called.
func (e *BufferEditor) Focused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focused
}
