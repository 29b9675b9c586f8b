// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

// ComputeDominators fills the Dominators set of every block by the
// classical iterative data-flow algorithm:
//
//	dominators[0] = {0}
//	dominators[i] = {i} ∪ ⋂ dominators[p] over p in preds(i)
//
// Unreachable blocks (no predecessors) are skipped with a warning; their
// dominator sets keep the universal initial value.
func ComputeDominators(blocks []*BasicBlock) {
	if len(blocks) == 0 {
		return
	}
	blocks[0].Dominators = map[int]struct{}{0: {}}
	for i := 1; i < len(blocks); i++ {
		doms := make(map[int]struct{}, len(blocks))
		for j := range blocks {
			doms[j] = struct{}{}
		}
		blocks[i].Dominators = doms
	}

	changed := true
	for changed {
		changed = false
		for i := 1; i < len(blocks); i++ {
			blk := blocks[i]
			if len(blk.Predecessors) == 0 {
				logger.Printf("cfg: block %d is unreachable, skipping dominators", i)
				continue
			}
			next := intersect(blocks, blk.Predecessors)
			next[i] = struct{}{}
			if !sameSet(blk.Dominators, next) {
				blk.Dominators = next
				changed = true
			}
		}
	}
}

func intersect(blocks []*BasicBlock, preds []int) map[int]struct{} {
	out := make(map[int]struct{}, len(blocks[preds[0]].Dominators))
	for d := range blocks[preds[0]].Dominators {
		out[d] = struct{}{}
	}
	for _, p := range preds[1:] {
		doms := blocks[p].Dominators
		for d := range out {
			if _, ok := doms[d]; !ok {
				delete(out, d)
			}
		}
	}
	return out
}

func sameSet(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
