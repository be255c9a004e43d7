package leads

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Journal appends leads to a JSON lines file, one lead per line.
type Journal struct {
	path string
	mu   sync.Mutex
}

var _ Sink = (*Journal)(nil)

// NewJournal creates a journal writing to path, creating parent directories.
func NewJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("leads: ensure journal dir: %w", err)
	}
	return &Journal{path: path}, nil
}

// Name identifies the sink in logs.
func (j *Journal) Name() string { return "journal" }

// Path returns the file backing this journal.
func (j *Journal) Path() string {
	if j == nil {
		return ""
	}
	return j.path
}

// Deliver appends lead as a single line.
func (j *Journal) Deliver(ctx context.Context, lead Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	line, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("encode lead: %w", err)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	file, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()
	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append journal: %w", err)
	}
	return nil
}

// Tail returns up to maxLeads of the most recent leads, oldest first. Lines
// that do not decode are skipped.
func (j *Journal) Tail(maxLeads int) ([]Lead, error) {
	if j == nil || maxLeads <= 0 {
		return nil, nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	file, err := os.Open(j.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("leads: open journal: %w", err)
	}
	defer file.Close()

	var out []Lead
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var lead Lead
		if err := json.Unmarshal(scanner.Bytes(), &lead); err != nil {
			continue
		}
		out = append(out, lead)
		if len(out) > maxLeads {
			out = out[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("leads: read journal: %w", err)
	}
	return out, nil
}
