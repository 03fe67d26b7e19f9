// Package localstate persists small client-side state as a single durable
// key-value slot on disk (the localStorage analog for the cart).
package localstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Slot is one versionless serialized value at a fixed path. There is no
// migration strategy: an incompatible stored shape must be treated as empty by
// the caller, never as fatal.
type Slot struct {
	path string
}

func NewSlot(path string) *Slot {
	return &Slot{path: path}
}

// Load reads the slot into v. found is false when the slot does not exist or
// holds nothing; a decode error is returned for the caller to degrade on.
func (s *Slot) Load(v any) (bool, error) {
	if s == nil || s.path == "" {
		return false, nil
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("localstate: read %s: %w", s.path, err)
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("localstate: decode %s: %w", s.path, err)
	}
	return true, nil
}

// Save writes v atomically (temp file + rename) so a crash mid-write never
// leaves a truncated slot behind.
func (s *Slot) Save(v any) error {
	if s == nil || s.path == "" {
		return errors.New("localstate: slot path is empty")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("localstate: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("localstate: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".slot-*")
	if err != nil {
		return fmt.Errorf("localstate: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("localstate: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("localstate: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("localstate: rename to %s: %w", s.path, err)
	}
	return nil
}
