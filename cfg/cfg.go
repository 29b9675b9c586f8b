// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cfg builds per-method control-flow graphs from decoded Dalvik
// instructions: basic blocks with successor and predecessor edges,
// dominator sets, and natural loops.
//
// Construction is two-pass. Pass 1 (Add) discovers block leaders and
// records switch origin/payload relationships; switch branch targets are
// resolved when the inline payload table is reached in the stream. Pass 2
// (BasicBlocks) sorts the leaders, carves the instruction list into
// blocks, and links the edges.
package cfg

import (
	"sort"

	"github.com/dexflow/dexflow/dalvik/opcodes"
	"github.com/dexflow/dexflow/disasm"
)

// BasicBlock is a maximal straight-line instruction sequence. Start and
// End are addresses in code units from method start; End is the address
// of the block's last instruction (inclusive). Edges are dense block
// indices, not addresses.
type BasicBlock struct {
	Start        uint32
	End          uint32
	Instructions []disasm.Instruction
	Successors   []int
	Predecessors []int
	Dominators   map[int]struct{}
}

type addrInstruction struct {
	addr uint32
	ins  disasm.Instruction
}

// Builder accumulates a method's decoded instruction stream and the
// leader/switch bookkeeping needed to carve it into basic blocks.
type Builder struct {
	instructions   []addrInstruction
	leaders        map[uint32]struct{}
	payloadOrigins map[uint32][]uint32
	switchTargets  map[uint32][]uint32
}

// NewBuilder returns an empty control-flow-graph builder.
func NewBuilder() *Builder {
	return &Builder{
		leaders:        make(map[uint32]struct{}),
		payloadOrigins: make(map[uint32][]uint32),
		switchTargets:  make(map[uint32][]uint32),
	}
}

func target(addr uint32, off int32) uint32 {
	return uint32(int32(addr) + off)
}

// Add records the instruction at the given address (in code units from
// method start) and updates the leader set.
//
// A SwitchPayload must be preceded by the packed-switch or sparse-switch
// instruction that references it; otherwise Add fails with a
// MissingSwitchOriginError.
func (b *Builder) Add(addr uint32, ins disasm.Instruction) error {
	switch ins := ins.(type) {
	case *disasm.Regular:
		switch ins.Op.Code {
		case opcodes.Goto, opcodes.Goto16, opcodes.Goto32:
			off, _ := ins.Format.BranchOffset()
			b.leaders[target(addr, off)] = struct{}{}
		case opcodes.PackedSwitch, opcodes.SparseSwitch:
			off, _ := ins.Format.BranchOffset()
			b.leaders[addr+uint32(ins.Format.Len())] = struct{}{}
			payload := target(addr, off)
			b.payloadOrigins[payload] = append(b.payloadOrigins[payload], addr)
		case opcodes.FillArrayData:
			// References a data payload, not a branch target.
		default:
			if off, ok := ins.Format.BranchOffset(); ok {
				b.leaders[target(addr, off)] = struct{}{}
				b.leaders[addr+uint32(ins.Format.Len())] = struct{}{}
			}
		}
		b.instructions = append(b.instructions, addrInstruction{addr: addr, ins: ins})
		if len(b.instructions) == 1 {
			b.leaders[addr] = struct{}{}
		}

	case *disasm.SwitchPayload:
		origins, ok := b.payloadOrigins[addr]
		if !ok {
			return MissingSwitchOriginError(addr)
		}
		delete(b.payloadOrigins, addr)
		offsets := make([]int32, 0, len(ins.KV))
		for _, v := range ins.KV {
			offsets = append(offsets, v)
		}
		sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
		for _, origin := range origins {
			for _, v := range offsets {
				t := target(origin, v)
				b.leaders[t] = struct{}{}
				b.switchTargets[origin] = append(b.switchTargets[origin], t)
			}
		}

	case *disasm.FillArrayPayload:
		// Pure data, contributes nothing to control flow.
	}
	return nil
}

// BasicBlocks consumes the builder and carves the instruction stream
// into basic blocks with successor and predecessor edges. Block 0 is the
// entry block. Edges whose target address has no block are dropped with a
// warning.
func (b *Builder) BasicBlocks() ([]*BasicBlock, error) {
	if len(b.instructions) == 0 {
		return nil, nil
	}
	max := b.instructions[len(b.instructions)-1].addr

	sorted := make([]uint32, 0, len(b.leaders))
	for l := range b.leaders {
		sorted = append(sorted, l)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	blocks := make([]*BasicBlock, 0, len(sorted))
	succAddrs := make([][]uint32, 0, len(sorted))
	predsByAddr := make(map[uint32][]int)

	next := 0 // cursor into b.instructions, which is address-ordered
	for i, start := range sorted {
		end := max
		if i < len(sorted)-1 {
			end = sorted[i+1] - 1
		}
		var local []addrInstruction
		for next < len(b.instructions) && b.instructions[next].addr <= end {
			if b.instructions[next].addr >= start {
				local = append(local, b.instructions[next])
			}
			next++
		}

		idx := len(blocks)
		var succs []uint32
		for j, ai := range local {
			reg, ok := ai.ins.(*disasm.Regular)
			if !ok {
				logger.Printf("cfg: unexpected instruction at %d", ai.addr)
				continue
			}
			switch reg.Op.Code {
			case opcodes.Goto, opcodes.Goto16, opcodes.Goto32:
				off, _ := reg.Format.BranchOffset()
				succs = append(succs, target(ai.addr, off))
			case opcodes.PackedSwitch, opcodes.SparseSwitch:
				resolved, ok := b.switchTargets[ai.addr]
				if !ok {
					return nil, MissingSwitchOriginError(ai.addr)
				}
				succs = append(succs, resolved...)
				succs = append(succs, ai.addr+uint32(reg.Format.Len()))
			case opcodes.FillArrayData, opcodes.ReturnVoid, opcodes.Return,
				opcodes.ReturnWide, opcodes.ReturnObject, opcodes.Throw:
				// Terminators: no successors.
			default:
				if off, ok := reg.Format.BranchOffset(); ok {
					succs = append(succs, target(ai.addr, off))
					succs = append(succs, ai.addr+uint32(reg.Format.Len()))
				} else if j == len(local)-1 {
					succs = append(succs, ai.addr+uint32(reg.Format.Len()))
				}
			}
		}
		for _, s := range succs {
			predsByAddr[s] = append(predsByAddr[s], idx)
		}

		instructions := make([]disasm.Instruction, len(local))
		blockEnd := start
		for j, ai := range local {
			instructions[j] = ai.ins
			blockEnd = ai.addr
		}
		blocks = append(blocks, &BasicBlock{
			Start:        start,
			End:          blockEnd,
			Instructions: instructions,
		})
		succAddrs = append(succAddrs, succs)
	}

	startToIdx := make(map[uint32]int, len(blocks))
	for i, blk := range blocks {
		startToIdx[blk.Start] = i
	}
	for i, blk := range blocks {
		for _, addr := range succAddrs[i] {
			t, ok := startToIdx[addr]
			if !ok {
				logger.Printf("cfg: dropping edge %d -> %d: no block starts at %d", blk.Start, addr, addr)
				continue
			}
			blk.Successors = append(blk.Successors, t)
		}
		if preds, ok := predsByAddr[blk.Start]; ok {
			blk.Predecessors = preds
		}
	}
	return blocks, nil
}
