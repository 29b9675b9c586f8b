// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package callgraph

import (
	"fmt"
)

// DexError wraps a method-level failure with the owning class and method
// name for diagnostics.
type DexError struct {
	ClassName  string
	MethodName string
	Err        error
}

func (e *DexError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.ClassName, e.MethodName, e.Err)
}

func (e *DexError) Unwrap() error {
	return e.Err
}
