package kv

import (
	"fmt"

	"github.com/jonboulle/clockwork"
)

// Options selects and configures a backend for Open.
type Options struct {
	Backend  string // memory, file, redis
	Path     string // file backend
	RedisURL string // redis backend
	Clock    clockwork.Clock
}

// Open builds the Store named by opts.Backend.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemory(opts.Clock), nil
	case BackendFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("file backend requires a path")
		}
		return NewFile(opts.Path, opts.Clock)
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis backend requires a URL")
		}
		return NewRedis(opts.RedisURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
