// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build unix

package store

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

func TestOpenFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")
	s, err := OpenFile(path, mustLayout(t, 100))
	if err != nil {
		t.Fatalf("OpenFile error = %v", err)
	}
	defer s.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat error = %v", err)
	}
	if info.Size() != 800 {
		t.Errorf("file size = %d, want 800", info.Size())
	}
	if s.Kind() != KindFile || s.Path() != path {
		t.Errorf("Kind() = %v, Path() = %q", s.Kind(), s.Path())
	}
}

func TestOpenFileTruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")
	junk := make([]byte, 4096)
	for i := range junk {
		junk[i] = 0xEE
	}
	if err := os.WriteFile(path, junk, 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenFile(path, mustLayout(t, 16))
	if err != nil {
		t.Fatalf("OpenFile error = %v", err)
	}
	defer s.Close()

	if got := len(s.Bytes()); got != 16*4+16*4 {
		t.Fatalf("len(Bytes()) = %d, want 128", got)
	}
	for i, b := range s.Bytes() {
		if b != 0 {
			t.Fatalf("Bytes()[%d] = %#x, want 0 after truncation", i, b)
		}
	}
}

func TestOpenFileWritesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")
	s, err := OpenFile(path, mustLayout(t, 4))
	if err != nil {
		t.Fatalf("OpenFile error = %v", err)
	}

	v := s.Values()
	for i := range v {
		v[i] = uint32(100 + i)
	}
	px := s.Pixels()
	px[0], px[1], px[2], px[3] = 1, 2, 3, 4

	if err := s.Sync(); err != nil {
		t.Fatalf("Sync error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 4*4+2*2*4 {
		t.Fatalf("file length = %d, want 32", len(raw))
	}
	for i := 0; i < 4; i++ {
		if got := binary.NativeEndian.Uint32(raw[i*4:]); got != uint32(100+i) {
			t.Errorf("value[%d] = %d, want %d", i, got, 100+i)
		}
	}
	if raw[16] != 1 || raw[19] != 4 {
		t.Errorf("pixel bytes = %v, want [1 2 3 4]", raw[16:20])
	}
}

func TestOpenFileCreateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "region.bin")
	_, err := OpenFile(path, mustLayout(t, 4))
	if !errors.Is(err, ErrCreate) {
		t.Fatalf("OpenFile error = %v, want ErrCreate", err)
	}
	if errors.Is(err, ErrResize) || errors.Is(err, ErrMap) {
		t.Errorf("create failure must not match other startup errors: %v", err)
	}
}

func TestOpenFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	s, err := OpenFile(path, mustLayout(t, 0))
	if err != nil {
		t.Fatalf("OpenFile(0) error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("size = %d, want 0", info.Size())
	}
}

func TestOpenAutoFallsBackToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auto.bin")
	cfg := Config{
		Kind:       KindAuto,
		Path:       path,
		FreeMemory: func() uint64 { return 100 },
	}
	s, err := Open(cfg, mustLayout(t, 100))
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	defer s.Close()
	if s.Kind() != KindFile {
		t.Errorf("Kind() = %v, want file", s.Kind())
	}
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
}

func TestOpenFileResizeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fifo")
	if err := unix.Mkfifo(path, 0o644); err != nil {
		t.Skipf("Mkfifo: %v", err)
	}
	_, err := OpenFile(path, mustLayout(t, 4))
	if !errors.Is(err, ErrResize) {
		t.Fatalf("OpenFile error = %v, want ErrResize", err)
	}
	if errors.Is(err, ErrCreate) || errors.Is(err, ErrMap) {
		t.Errorf("resize failure must not match other startup errors: %v", err)
	}
}

func TestOpenMapError(t *testing.T) {
	errNoMem := unix.ENOMEM
	orig := mmap
	mmap = func(int, int64, int, int, int) ([]byte, error) { return nil, errNoMem }
	t.Cleanup(func() { mmap = orig })

	tests := []struct {
		name string
		open func() (*Store, error)
	}{
		{"file", func() (*Store, error) {
			return OpenFile(filepath.Join(t.TempDir(), "region.bin"), mustLayout(t, 4))
		}},
		{"heap", func() (*Store, error) { return OpenHeap(mustLayout(t, 4)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.open()
			if s != nil {
				t.Error("store returned with error")
			}
			if !errors.Is(err, ErrMap) {
				t.Fatalf("error = %v, want ErrMap", err)
			}
			if !errors.Is(err, errNoMem) {
				t.Errorf("error = %v, want cause ENOMEM kept", err)
			}
			if errors.Is(err, ErrCreate) || errors.Is(err, ErrResize) {
				t.Errorf("map failure must not match other startup errors: %v", err)
			}
		})
	}
}
