// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opcodes

var (
	Goto   = newOp(0x28, "goto", K10t)
	Goto16 = newOp(0x29, "goto/16", K20t)
	Goto32 = newOp(0x2a, "goto/32", K30t)

	PackedSwitch = newOp(0x2b, "packed-switch", K31t)
	SparseSwitch = newOp(0x2c, "sparse-switch", K31t)

	CmplFloat  = newOp(0x2d, "cmpl-float", K23x)
	CmpgFloat  = newOp(0x2e, "cmpg-float", K23x)
	CmplDouble = newOp(0x2f, "cmpl-double", K23x)
	CmpgDouble = newOp(0x30, "cmpg-double", K23x)
	CmpLong    = newOp(0x31, "cmp-long", K23x)

	IfEq = newOp(0x32, "if-eq", K22t)
	IfNe = newOp(0x33, "if-ne", K22t)
	IfLt = newOp(0x34, "if-lt", K22t)
	IfGe = newOp(0x35, "if-ge", K22t)
	IfGt = newOp(0x36, "if-gt", K22t)
	IfLe = newOp(0x37, "if-le", K22t)

	IfEqz = newOp(0x38, "if-eqz", K21t)
	IfNez = newOp(0x39, "if-nez", K21t)
	IfLtz = newOp(0x3a, "if-ltz", K21t)
	IfGez = newOp(0x3b, "if-gez", K21t)
	IfGtz = newOp(0x3c, "if-gtz", K21t)
	IfLez = newOp(0x3d, "if-lez", K21t)
)
