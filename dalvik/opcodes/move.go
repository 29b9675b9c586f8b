// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opcodes

var (
	Nop = newOp(0x00, "nop", K10x)

	Move             = newOp(0x01, "move", K12x)
	MoveFrom16       = newOp(0x02, "move/from16", K22x)
	Move16           = newOp(0x03, "move/16", K32x)
	MoveWide         = newOp(0x04, "move-wide", K12x)
	MoveWideFrom16   = newOp(0x05, "move-wide/from16", K22x)
	MoveWide16       = newOp(0x06, "move-wide/16", K32x)
	MoveObject       = newOp(0x07, "move-object", K12x)
	MoveObjectFrom16 = newOp(0x08, "move-object/from16", K22x)
	MoveObject16     = newOp(0x09, "move-object/16", K32x)

	MoveResult       = newOp(0x0a, "move-result", K11x)
	MoveResultWide   = newOp(0x0b, "move-result-wide", K11x)
	MoveResultObject = newOp(0x0c, "move-result-object", K11x)
	MoveException    = newOp(0x0d, "move-exception", K11x)

	ReturnVoid   = newOp(0x0e, "return-void", K10x)
	Return       = newOp(0x0f, "return", K11x)
	ReturnWide   = newOp(0x10, "return-wide", K11x)
	ReturnObject = newOp(0x11, "return-object", K11x)
)
