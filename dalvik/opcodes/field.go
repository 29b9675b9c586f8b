// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opcodes

var (
	Aget        = newOp(0x44, "aget", K23x)
	AgetWide    = newOp(0x45, "aget-wide", K23x)
	AgetObject  = newOp(0x46, "aget-object", K23x)
	AgetBoolean = newOp(0x47, "aget-boolean", K23x)
	AgetByte    = newOp(0x48, "aget-byte", K23x)
	AgetChar    = newOp(0x49, "aget-char", K23x)
	AgetShort   = newOp(0x4a, "aget-short", K23x)
	Aput        = newOp(0x4b, "aput", K23x)
	AputWide    = newOp(0x4c, "aput-wide", K23x)
	AputObject  = newOp(0x4d, "aput-object", K23x)
	AputBoolean = newOp(0x4e, "aput-boolean", K23x)
	AputByte    = newOp(0x4f, "aput-byte", K23x)
	AputChar    = newOp(0x50, "aput-char", K23x)
	AputShort   = newOp(0x51, "aput-short", K23x)

	Iget        = newOp(0x52, "iget", K22c)
	IgetWide    = newOp(0x53, "iget-wide", K22c)
	IgetObject  = newOp(0x54, "iget-object", K22c)
	IgetBoolean = newOp(0x55, "iget-boolean", K22c)
	IgetByte    = newOp(0x56, "iget-byte", K22c)
	IgetChar    = newOp(0x57, "iget-char", K22c)
	IgetShort   = newOp(0x58, "iget-short", K22c)
	Iput        = newOp(0x59, "iput", K22c)
	IputWide    = newOp(0x5a, "iput-wide", K22c)
	IputObject  = newOp(0x5b, "iput-object", K22c)
	IputBoolean = newOp(0x5c, "iput-boolean", K22c)
	IputByte    = newOp(0x5d, "iput-byte", K22c)
	IputChar    = newOp(0x5e, "iput-char", K22c)
	IputShort   = newOp(0x5f, "iput-short", K22c)

	Sget        = newOp(0x60, "sget", K21c)
	SgetWide    = newOp(0x61, "sget-wide", K21c)
	SgetObject  = newOp(0x62, "sget-object", K21c)
	SgetBoolean = newOp(0x63, "sget-boolean", K21c)
	SgetByte    = newOp(0x64, "sget-byte", K21c)
	SgetChar    = newOp(0x65, "sget-char", K21c)
	SgetShort   = newOp(0x66, "sget-short", K21c)
	Sput        = newOp(0x67, "sput", K21c)
	SputWide    = newOp(0x68, "sput-wide", K21c)
	SputObject  = newOp(0x69, "sput-object", K21c)
	SputBoolean = newOp(0x6a, "sput-boolean", K21c)
	SputByte    = newOp(0x6b, "sput-byte", K21c)
	SputChar    = newOp(0x6c, "sput-char", K21c)
	SputShort   = newOp(0x6d, "sput-short", K21c)
)
