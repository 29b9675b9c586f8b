// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package callgraph

import (
	"regexp"
	"sort"
)

// Graph is a call graph keyed by signature: each method's record plus
// its outgoing call keys in bytecode order.
type Graph struct {
	methods map[string]Method
	calls   map[string][]string
}

// NewGraph returns an empty call graph.
func NewGraph() *Graph {
	return &Graph{
		methods: make(map[string]Method),
		calls:   make(map[string][]string),
	}
}

// AddMethod records a method and its callees. A later method with the
// same signature key replaces the earlier one.
func (g *Graph) AddMethod(m Method, callees []Signature) {
	key := m.Key()
	calls := make([]string, len(callees))
	for i, c := range callees {
		calls[i] = c.Key()
	}
	g.methods[key] = m
	g.calls[key] = calls
}

// Len returns the number of methods in the graph.
func (g *Graph) Len() int {
	return len(g.methods)
}

// Flatten empties the graph into a deterministic depth-first order.
//
// The work stack starts with every signature, sorted so that signatures
// whose class type matches a manifest regex pop first, and so that each
// group pops in ascending key order. The DFS pops a signature, emits its
// method if still unvisited, and pushes the callees in reverse so the
// first callee in bytecode order is visited first.
//
// Identical inputs always produce the identical sequence.
func (g *Graph) Flatten(regexes []*regexp.Regexp) []Method {
	stack := make([]string, 0, len(g.methods))
	for key := range g.methods {
		stack = append(stack, key)
	}

	matches := make(map[string]bool, len(stack))
	for _, key := range stack {
		classType := g.methods[key].ClassType
		for _, re := range regexes {
			if re.MatchString(classType) {
				matches[key] = true
				break
			}
		}
	}
	sort.Slice(stack, func(i, j int) bool {
		mi, mj := matches[stack[i]], matches[stack[j]]
		if mi != mj {
			return !mi // non-matching first: matching end up on top of the stack
		}
		return stack[i] > stack[j] // reverse, so each group pops in ascending order
	})

	flattened := make([]Method, 0, len(g.methods))
	for len(stack) > 0 {
		key := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		method, ok := g.methods[key]
		if !ok {
			continue
		}
		delete(g.methods, key)
		flattened = append(flattened, method)
		callees := g.calls[key]
		for i := len(callees) - 1; i >= 0; i-- {
			stack = append(stack, callees[i])
		}
	}
	return flattened
}
