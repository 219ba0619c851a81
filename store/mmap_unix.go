// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build unix

package store

import (
	"os"

	"golang.org/x/sys/unix"
)

// mmap is replaced in tests to exercise mapping failures.
var mmap = unix.Mmap

func mapAnon(size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	return mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

func mapFile(f *os.File, size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	return mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

func unmap(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return unix.Munmap(b)
}

func syncRegion(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return unix.Msync(b, unix.MS_SYNC)
}
