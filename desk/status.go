package desk

import "sync"

// StatusLine is the human-readable outcome of one action. Each action owns its line.
type StatusLine struct {
	mu   sync.RWMutex
	text string
}

func (s *StatusLine) Set(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

func (s *StatusLine) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}
