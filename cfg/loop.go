// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

// Loop is a natural loop: the header block plus every block that can
// reach the back-edge tail without passing through the header.
type Loop struct {
	Header int
	Blocks map[int]struct{}
}

// NaturalLoops identifies one loop per back-edge u -> v (an edge whose
// target dominates its source). Multiple back-edges sharing a header
// yield separate loop records. ComputeDominators must have run on blocks.
func NaturalLoops(blocks []*BasicBlock) []Loop {
	var loops []Loop
	for u, blk := range blocks {
		for _, v := range blk.Successors {
			if _, ok := blk.Dominators[v]; !ok {
				continue
			}
			loop := Loop{
				Header: v,
				Blocks: map[int]struct{}{v: {}},
			}
			var worklist []int
			if u != v {
				loop.Blocks[u] = struct{}{}
				worklist = append(worklist, u)
			}
			for len(worklist) > 0 {
				b := worklist[len(worklist)-1]
				worklist = worklist[:len(worklist)-1]
				for _, p := range blocks[b].Predecessors {
					if _, ok := loop.Blocks[p]; !ok {
						loop.Blocks[p] = struct{}{}
						worklist = append(worklist, p)
					}
				}
			}
			loops = append(loops, loop)
		}
	}
	return loops
}
