package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage provides the local run-history abstraction.

// RunRecord describes one completed digest cycle.
type RunRecord struct {
	RanAt        time.Time `json:"ran_at"`
	Filename     string    `json:"filename"`
	Origin       string    `json:"origin"`
	ArticleCount int       `json:"article_count"`
}

// Store records completed digest runs.
type Store interface {
	Close() error
	RecordRun(rec RunRecord) error
	LastRun() (RunRecord, bool, error)
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	MaxRuns int
}

const defaultMaxRuns = 500

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.MaxRuns <= 0 {
		opts.MaxRuns = defaultMaxRuns
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                    { return nil }
func (noopStore) RecordRun(RunRecord) error       { return nil }
func (noopStore) LastRun() (RunRecord, bool, error) { return RunRecord{}, false, nil }
