// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opcodes

var (
	InvokeVirtual   = newOp(0x6e, "invoke-virtual", K35c)
	InvokeSuper     = newOp(0x6f, "invoke-super", K35c)
	InvokeDirect    = newOp(0x70, "invoke-direct", K35c)
	InvokeStatic    = newOp(0x71, "invoke-static", K35c)
	InvokeInterface = newOp(0x72, "invoke-interface", K35c)

	InvokeVirtualRange   = newOp(0x74, "invoke-virtual/range", K3rc)
	InvokeSuperRange     = newOp(0x75, "invoke-super/range", K3rc)
	InvokeDirectRange    = newOp(0x76, "invoke-direct/range", K3rc)
	InvokeStaticRange    = newOp(0x77, "invoke-static/range", K3rc)
	InvokeInterfaceRange = newOp(0x78, "invoke-interface/range", K3rc)

	InvokePolymorphic      = newOp(0xfa, "invoke-polymorphic", K45cc)
	InvokePolymorphicRange = newOp(0xfb, "invoke-polymorphic/range", K4rcc)
	InvokeCustom           = newOp(0xfc, "invoke-custom", K35c)
	InvokeCustomRange      = newOp(0xfd, "invoke-custom/range", K3rc)
)
