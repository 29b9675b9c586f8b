// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opcodes

var (
	Const4         = newOp(0x12, "const/4", K11n)
	Const16        = newOp(0x13, "const/16", K21s)
	Const          = newOp(0x14, "const", K31i)
	ConstHigh16    = newOp(0x15, "const/high16", K21h)
	ConstWide16    = newOp(0x16, "const-wide/16", K21s)
	ConstWide32    = newOp(0x17, "const-wide/32", K31i)
	ConstWide      = newOp(0x18, "const-wide", K51l)
	ConstWideHigh16 = newOp(0x19, "const-wide/high16", K21h)

	ConstString      = newOp(0x1a, "const-string", K21c)
	ConstStringJumbo = newOp(0x1b, "const-string/jumbo", K31c)
	ConstClass       = newOp(0x1c, "const-class", K21c)

	ConstMethodHandle = newOp(0xfe, "const-method-handle", K21c)
	ConstMethodType   = newOp(0xff, "const-method-type", K21c)
)
