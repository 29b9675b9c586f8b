// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opcodes

var (
	NegInt        = newOp(0x7b, "neg-int", K12x)
	NotInt        = newOp(0x7c, "not-int", K12x)
	NegLong       = newOp(0x7d, "neg-long", K12x)
	NotLong       = newOp(0x7e, "not-long", K12x)
	NegFloat      = newOp(0x7f, "neg-float", K12x)
	NegDouble     = newOp(0x80, "neg-double", K12x)
	IntToLong     = newOp(0x81, "int-to-long", K12x)
	IntToFloat    = newOp(0x82, "int-to-float", K12x)
	IntToDouble   = newOp(0x83, "int-to-double", K12x)
	LongToInt     = newOp(0x84, "long-to-int", K12x)
	LongToFloat   = newOp(0x85, "long-to-float", K12x)
	LongToDouble  = newOp(0x86, "long-to-double", K12x)
	FloatToInt    = newOp(0x87, "float-to-int", K12x)
	FloatToLong   = newOp(0x88, "float-to-long", K12x)
	FloatToDouble = newOp(0x89, "float-to-double", K12x)
	DoubleToInt   = newOp(0x8a, "double-to-int", K12x)
	DoubleToLong  = newOp(0x8b, "double-to-long", K12x)
	DoubleToFloat = newOp(0x8c, "double-to-float", K12x)
	IntToByte     = newOp(0x8d, "int-to-byte", K12x)
	IntToChar     = newOp(0x8e, "int-to-char", K12x)
	IntToShort    = newOp(0x8f, "int-to-short", K12x)

	AddInt   = newOp(0x90, "add-int", K23x)
	SubInt   = newOp(0x91, "sub-int", K23x)
	MulInt   = newOp(0x92, "mul-int", K23x)
	DivInt   = newOp(0x93, "div-int", K23x)
	RemInt   = newOp(0x94, "rem-int", K23x)
	AndInt   = newOp(0x95, "and-int", K23x)
	OrInt    = newOp(0x96, "or-int", K23x)
	XorInt   = newOp(0x97, "xor-int", K23x)
	ShlInt   = newOp(0x98, "shl-int", K23x)
	ShrInt   = newOp(0x99, "shr-int", K23x)
	UshrInt  = newOp(0x9a, "ushr-int", K23x)
	AddLong  = newOp(0x9b, "add-long", K23x)
	SubLong  = newOp(0x9c, "sub-long", K23x)
	MulLong  = newOp(0x9d, "mul-long", K23x)
	DivLong  = newOp(0x9e, "div-long", K23x)
	RemLong  = newOp(0x9f, "rem-long", K23x)
	AndLong  = newOp(0xa0, "and-long", K23x)
	OrLong   = newOp(0xa1, "or-long", K23x)
	XorLong  = newOp(0xa2, "xor-long", K23x)
	ShlLong  = newOp(0xa3, "shl-long", K23x)
	ShrLong  = newOp(0xa4, "shr-long", K23x)
	UshrLong = newOp(0xa5, "ushr-long", K23x)

	AddFloat  = newOp(0xa6, "add-float", K23x)
	SubFloat  = newOp(0xa7, "sub-float", K23x)
	MulFloat  = newOp(0xa8, "mul-float", K23x)
	DivFloat  = newOp(0xa9, "div-float", K23x)
	RemFloat  = newOp(0xaa, "rem-float", K23x)
	AddDouble = newOp(0xab, "add-double", K23x)
	SubDouble = newOp(0xac, "sub-double", K23x)
	MulDouble = newOp(0xad, "mul-double", K23x)
	DivDouble = newOp(0xae, "div-double", K23x)
	RemDouble = newOp(0xaf, "rem-double", K23x)

	AddInt2Addr   = newOp(0xb0, "add-int/2addr", K12x)
	SubInt2Addr   = newOp(0xb1, "sub-int/2addr", K12x)
	MulInt2Addr   = newOp(0xb2, "mul-int/2addr", K12x)
	DivInt2Addr   = newOp(0xb3, "div-int/2addr", K12x)
	RemInt2Addr   = newOp(0xb4, "rem-int/2addr", K12x)
	AndInt2Addr   = newOp(0xb5, "and-int/2addr", K12x)
	OrInt2Addr    = newOp(0xb6, "or-int/2addr", K12x)
	XorInt2Addr   = newOp(0xb7, "xor-int/2addr", K12x)
	ShlInt2Addr   = newOp(0xb8, "shl-int/2addr", K12x)
	ShrInt2Addr   = newOp(0xb9, "shr-int/2addr", K12x)
	UshrInt2Addr  = newOp(0xba, "ushr-int/2addr", K12x)
	AddLong2Addr  = newOp(0xbb, "add-long/2addr", K12x)
	SubLong2Addr  = newOp(0xbc, "sub-long/2addr", K12x)
	MulLong2Addr  = newOp(0xbd, "mul-long/2addr", K12x)
	DivLong2Addr  = newOp(0xbe, "div-long/2addr", K12x)
	RemLong2Addr  = newOp(0xbf, "rem-long/2addr", K12x)
	AndLong2Addr  = newOp(0xc0, "and-long/2addr", K12x)
	OrLong2Addr   = newOp(0xc1, "or-long/2addr", K12x)
	XorLong2Addr  = newOp(0xc2, "xor-long/2addr", K12x)
	ShlLong2Addr  = newOp(0xc3, "shl-long/2addr", K12x)
	ShrLong2Addr  = newOp(0xc4, "shr-long/2addr", K12x)
	UshrLong2Addr = newOp(0xc5, "ushr-long/2addr", K12x)

	AddFloat2Addr  = newOp(0xc6, "add-float/2addr", K12x)
	SubFloat2Addr  = newOp(0xc7, "sub-float/2addr", K12x)
	MulFloat2Addr  = newOp(0xc8, "mul-float/2addr", K12x)
	DivFloat2Addr  = newOp(0xc9, "div-float/2addr", K12x)
	RemFloat2Addr  = newOp(0xca, "rem-float/2addr", K12x)
	AddDouble2Addr = newOp(0xcb, "add-double/2addr", K12x)
	SubDouble2Addr = newOp(0xcc, "sub-double/2addr", K12x)
	MulDouble2Addr = newOp(0xcd, "mul-double/2addr", K12x)
	DivDouble2Addr = newOp(0xce, "div-double/2addr", K12x)
	RemDouble2Addr = newOp(0xcf, "rem-double/2addr", K12x)

	AddIntLit16 = newOp(0xd0, "add-int/lit16", K22s)
	RsubInt     = newOp(0xd1, "rsub-int", K22s)
	MulIntLit16 = newOp(0xd2, "mul-int/lit16", K22s)
	DivIntLit16 = newOp(0xd3, "div-int/lit16", K22s)
	RemIntLit16 = newOp(0xd4, "rem-int/lit16", K22s)
	AndIntLit16 = newOp(0xd5, "and-int/lit16", K22s)
	OrIntLit16  = newOp(0xd6, "or-int/lit16", K22s)
	XorIntLit16 = newOp(0xd7, "xor-int/lit16", K22s)

	AddIntLit8  = newOp(0xd8, "add-int/lit8", K22b)
	RsubIntLit8 = newOp(0xd9, "rsub-int/lit8", K22b)
	MulIntLit8  = newOp(0xda, "mul-int/lit8", K22b)
	DivIntLit8  = newOp(0xdb, "div-int/lit8", K22b)
	RemIntLit8  = newOp(0xdc, "rem-int/lit8", K22b)
	AndIntLit8  = newOp(0xdd, "and-int/lit8", K22b)
	OrIntLit8   = newOp(0xde, "or-int/lit8", K22b)
	XorIntLit8  = newOp(0xdf, "xor-int/lit8", K22b)
	ShlIntLit8  = newOp(0xe0, "shl-int/lit8", K22b)
	ShrIntLit8  = newOp(0xe1, "shr-int/lit8", K22b)
	UshrIntLit8 = newOp(0xe2, "ushr-int/lit8", K22b)
)
