// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package store

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"unsafe"

	"github.com/pbnjay/memory"
)

// DefaultPath is the backing file used when Config.Path is empty.
const DefaultPath = "sortview.bin"

// Config selects and parameterizes a backing store.
type Config struct {
	// Kind selects the backing. The zero value is KindHeap.
	Kind Kind

	// Path is the backing file for KindFile, and for KindAuto when it
	// falls back to a file. Empty means DefaultPath.
	Path string

	// FreeMemory reports the bytes of memory available to the process for
	// KindAuto. Nil uses the host's free memory. A result of zero means
	// unknown and selects the heap.
	FreeMemory func() uint64
}

// Store is a contiguous region holding the value array followed by the
// pixel canvas. See the package documentation for the layout.
//
// Store is not safe for concurrent Close; the owner closes it once all
// users are done.
type Store struct {
	layout Layout
	kind   Kind
	path   string
	data   []byte
	file   *os.File
	closed bool
}

// Open acquires a store for l as described by cfg.
func Open(cfg Config, l Layout) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}

	switch cfg.Kind {
	case KindHeap:
		return OpenHeap(l)
	case KindFile:
		return OpenFile(path, l)
	case KindAuto:
		free := cfg.FreeMemory
		if free == nil {
			free = memory.FreeMemory
		}
		avail := free()
		if avail == 0 || uint64(l.Size()) <= avail {
			Logger().Debug("store: auto selected heap",
				slog.Int64("size", l.Size()), slog.Uint64("free", avail))
			return OpenHeap(l)
		}
		Logger().Info("store: region exceeds free memory, using file",
			slog.Int64("size", l.Size()), slog.Uint64("free", avail), slog.String("path", path))
		return OpenFile(path, l)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, cfg.Kind)
	}
}

// OpenHeap acquires an anonymous region of l.Size() bytes.
func OpenHeap(l Layout) (*Store, error) {
	size, err := regionSize(l)
	if err != nil {
		return nil, err
	}

	data, err := mapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("%w: anonymous region of %d bytes: %w", ErrMap, size, err)
	}

	Logger().Info("store: heap region acquired", slog.Int("size", size), slog.Int("count", l.Count))
	return &Store{layout: l, kind: KindHeap, data: data}, nil
}

// OpenFile creates or truncates path to exactly l.Size() bytes and maps it
// shared read/write. Existing contents are discarded.
func OpenFile(path string, l Layout) (*Store, error) {
	size, err := regionSize(l)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreate, path, err)
	}

	if err := f.Truncate(int64(size)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s to %d bytes: %w", ErrResize, path, size, err)
	}

	data, err := mapFile(f, size)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s (%d bytes): %w", ErrMap, path, size, err)
	}

	Logger().Info("store: file region mapped",
		slog.String("path", path), slog.Int("size", size), slog.Int("count", l.Count))
	return &Store{layout: l, kind: KindFile, path: path, data: data, file: f}, nil
}

func regionSize(l Layout) (int, error) {
	if l.Count < 0 || uint64(l.Count) > MaxCount || l.Side != CanvasSide(l.Count) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidLayout, l)
	}
	size := l.Size()
	if size > math.MaxInt {
		return 0, fmt.Errorf("%w: %d bytes exceeds address space", ErrInvalidLayout, size)
	}
	return int(size), nil
}

// Layout returns the store's layout.
func (s *Store) Layout() Layout {
	return s.layout
}

// Kind returns KindHeap or KindFile. KindAuto is resolved at Open.
func (s *Store) Kind() Kind {
	return s.kind
}

// Path returns the backing file path, or "" for heap stores.
func (s *Store) Path() string {
	return s.path
}

// Bytes returns the whole region. It is nil after Close.
func (s *Store) Bytes() []byte {
	return s.data
}

// Values returns the array segment as Count uint32 values.
// The slice aliases the region and is invalid after Close.
func (s *Store) Values() []uint32 {
	if s.layout.Count == 0 || len(s.data) == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&s.data[0])), s.layout.Count)
}

// Pixels returns the canvas segment. The slice aliases the region and is
// invalid after Close.
func (s *Store) Pixels() []byte {
	if len(s.data) == 0 {
		return nil
	}
	lo, hi := s.layout.ArrayBytes(), s.layout.Size()
	return s.data[lo:hi:hi]
}

// Sync flushes a file-backed region to disk. It is a no-op for heap stores.
func (s *Store) Sync() error {
	if s.closed || s.kind != KindFile {
		return nil
	}
	if err := syncRegion(s.data); err != nil {
		return fmt.Errorf("store: sync %s: %w", s.path, err)
	}
	return nil
}

// Close releases the region and, for file stores, closes the file.
// Close is safe to call multiple times.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := unmap(s.data); err != nil {
		errs = append(errs, fmt.Errorf("store: unmap: %w", err))
	}
	s.data = nil

	if s.file != nil {
		if err := s.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: close %s: %w", s.path, err))
		}
		s.file = nil
	}

	Logger().Debug("store: closed", slog.String("kind", s.kind.String()))
	return errors.Join(errs...)
}
