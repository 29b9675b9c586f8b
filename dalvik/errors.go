// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dalvik

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMagic reports a byte image that does not start with the
	// DEX magic.
	ErrInvalidMagic = errors.New("dalvik: invalid magic number")
	// ErrUnexpectedEOF reports a section offset or read that runs past
	// the end of the image.
	ErrUnexpectedEOF = errors.New("dalvik: unexpected end of image")
	// ErrBadString reports a malformed modified-UTF-8 sequence.
	ErrBadString = errors.New("dalvik: malformed MUTF-8 string")
)

// OutOfBoundsError reports a table lookup with an index past the table's
// size.
type OutOfBoundsError struct {
	Table string
	Index uint32
	Size  int
}

func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf("dalvik: %s index %d out of bounds (size %d)", e.Table, e.Index, e.Size)
}
