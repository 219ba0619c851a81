// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !unix

package store

import (
	"errors"
	"os"
)

// errNoFileMapping is wrapped in ErrMap where shared file mappings are not
// implemented.
var errNoFileMapping = errors.New("file mapping not supported on this platform")

func mapAnon(size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	return make([]byte, size), nil
}

func mapFile(*os.File, int) ([]byte, error) {
	return nil, errNoFileMapping
}

func unmap([]byte) error { return nil }

func syncRegion([]byte) error { return nil }
