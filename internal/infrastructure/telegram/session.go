package telegram

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/gotd/td/session"
)

// memorySession implements session.Storage over an in-memory byte slice.
// Each scoped connection gets its own instance seeded from the stored blob,
// so concurrent connections never share vendor session state.
type memorySession struct {
	mu   sync.Mutex
	data []byte
}

// LoadSession loads session data
func (s *memorySession) LoadSession(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.data) == 0 {
		return nil, session.ErrNotFound
	}

	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// StoreSession stores session data
func (s *memorySession) StoreSession(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}

// snapshot returns a copy of the current session bytes
func (s *memorySession) snapshot() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// decodeBlob decodes a stored session blob. Empty blob means a fresh session.
func decodeBlob(blob string) ([]byte, error) {
	if blob == "" {
		return nil, nil
	}

	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("corrupt session blob: %w", err)
	}

	return data, nil
}

// encodeBlob encodes session bytes into the opaque stored form
func encodeBlob(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// Ensure memorySession implements session.Storage interface
var _ session.Storage = (*memorySession)(nil)
