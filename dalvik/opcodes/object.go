// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opcodes

var (
	MonitorEnter = newOp(0x1d, "monitor-enter", K11x)
	MonitorExit  = newOp(0x1e, "monitor-exit", K11x)

	CheckCast   = newOp(0x1f, "check-cast", K21c)
	InstanceOf  = newOp(0x20, "instance-of", K22c)
	ArrayLength = newOp(0x21, "array-length", K12x)
	NewInstance = newOp(0x22, "new-instance", K21c)
	NewArray    = newOp(0x23, "new-array", K22c)

	FilledNewArray      = newOp(0x24, "filled-new-array", K35c)
	FilledNewArrayRange = newOp(0x25, "filled-new-array/range", K3rc)
	FillArrayData       = newOp(0x26, "fill-array-data", K31t)

	Throw = newOp(0x27, "throw", K11x)
)
