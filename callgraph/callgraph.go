// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package callgraph extracts per-method instruction sequences and
// inter-method call edges from parsed DEX files, and flattens the call
// graph into a deterministic, manifest-biased method order.
package callgraph

import (
	"regexp"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/dexflow/dexflow/cfg"
	"github.com/dexflow/dexflow/dalvik"
	"github.com/dexflow/dexflow/disasm"
)

// Signature identifies a method by its class descriptor, name and
// prototype, in stable DEX descriptor form.
type Signature struct {
	ClassType  string   `json:"ct"`
	MethodName string   `json:"mn"`
	Params     []string `json:"args,omitempty"`
	ReturnType string   `json:"rt"`
}

// Key returns the textual call-graph key: class descriptor, method name,
// parameter descriptors and return type concatenated.
func (s Signature) Key() string {
	k := s.ClassType + s.MethodName
	for _, p := range s.Params {
		k += p
	}
	return k + s.ReturnType
}

// Instruction is the compact exported instruction: the opcode byte plus,
// for the invoke families, the raw 16-bit DEX method index.
type Instruction struct {
	Opcode    byte    `json:"opcode"`
	MethodIdx *uint16 `json:"m_idx,omitempty"`
}

// Method is an exported method: its signature and compact instruction
// sequence.
type Method struct {
	Signature
	Insns []Instruction `json:"ins"`
}

// OpcodeSequence is a run of raw opcode bytes. It marshals as a JSON
// number array, not the base64 default for byte slices.
type OpcodeSequence []byte

func (s OpcodeSequence) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, len(s)*4+2)
	out = append(out, '[')
	for i, b := range s {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendUint(out, uint64(b), 10)
	}
	return append(out, ']'), nil
}

// CompactMethod is the reduced export form: class descriptor plus method
// name, and the bare opcode sequence.
type CompactMethod struct {
	Sig   string         `json:"sig"`
	Insns OpcodeSequence `json:"ins"`
}

// Compact converts a method to its reduced export form, preserving
// instruction order.
func Compact(m Method) CompactMethod {
	insns := make(OpcodeSequence, len(m.Insns))
	for i, ins := range m.Insns {
		insns[i] = ins.Opcode
	}
	return CompactMethod{
		Sig:   m.Signature.ClassType + m.Signature.MethodName,
		Insns: insns,
	}
}

// DexFile is the surface of the DEX parser the extractor needs.
// *dalvik.Dex implements it.
type DexFile interface {
	Classes() []*dalvik.Class
	MethodItem(idx uint32) (dalvik.MethodItem, error)
	Type(idx uint32) (string, error)
	String(idx uint32) (string, error)
	ProtoItem(idx uint32) (dalvik.ProtoItem, error)
	TypeList(off uint32) ([]string, error)
}

var _ DexFile = (*dalvik.Dex)(nil)

// Options configures extraction.
type Options struct {
	// SequenceCap bounds the total number of exported instructions
	// across all methods; 0 means unlimited. Extraction stops before the
	// method that would cross the cap.
	SequenceCap int
}

// Extract decodes every method body in the given DEX files, builds the
// call graph, and returns the methods in the deterministic flattened
// order, biased by the manifest component regexes (which may be nil).
//
// A method whose bytecode fails to decode, or whose control-flow graph
// cannot be built, is logged and dropped; its siblings are unaffected.
func Extract(dexes []DexFile, regexes []*regexp.Regexp, opts Options) []Method {
	graph := NewGraph()
	total := 0
outer:
	for _, dex := range dexes {
		for _, class := range dex.Classes() {
			for _, method := range class.Methods() {
				if method.Code == nil {
					continue
				}
				m, callees, err := extractMethod(dex, class, method)
				if err != nil {
					log.WithFields(log.Fields{
						"class":  class.JType,
						"method": method.Name,
					}).Warnf("dropping method: %v", err)
					continue
				}
				if opts.SequenceCap > 0 && total+len(m.Insns) > opts.SequenceCap {
					break outer
				}
				total += len(m.Insns)
				graph.AddMethod(m, callees)
			}
		}
	}
	return graph.Flatten(regexes)
}

// extractMethod decodes one method body: the compact instruction list,
// the outgoing call signatures, and (as validation of the body's control
// flow) its basic blocks.
func extractMethod(dex DexFile, class *dalvik.Class, method *dalvik.Method) (Method, []Signature, error) {
	code := method.Code.Insns
	builder := cfg.NewBuilder()
	var insns []Instruction
	var callees []Signature

	offset := 0
	for {
		ins, n, err := disasm.Decode(code, offset)
		if err != nil {
			return Method{}, nil, &DexError{
				ClassName:  class.JType,
				MethodName: method.Name,
				Err:        err,
			}
		}
		if ins == nil {
			break
		}
		if err := builder.Add(uint32(offset), ins); err != nil {
			return Method{}, nil, &DexError{
				ClassName:  class.JType,
				MethodName: method.Name,
				Err:        err,
			}
		}
		if reg, ok := ins.(*disasm.Regular); ok {
			compact := Instruction{Opcode: reg.Op.Code}
			if reg.Op.IsInvoke() {
				idx := methodIndex(reg)
				compact.MethodIdx = &idx
				if sig, err := resolveSignature(dex, uint32(idx)); err != nil {
					log.WithFields(log.Fields{
						"class":  class.JType,
						"method": method.Name,
						"m_idx":  idx,
					}).Warnf("skipping call edge: %v", err)
				} else {
					callees = append(callees, sig)
				}
			}
			insns = append(insns, compact)
		}
		offset += n
	}

	// The block structure is not retained, but a body whose blocks
	// cannot be carved is malformed and gets dropped like a decode
	// failure.
	if _, err := builder.BasicBlocks(); err != nil {
		return Method{}, nil, &DexError{
			ClassName:  class.JType,
			MethodName: method.Name,
			Err:        err,
		}
	}

	return Method{
		Signature: Signature{
			ClassType:  class.JType,
			MethodName: method.Name,
			Params:     method.Params,
			ReturnType: method.ReturnType,
		},
		Insns: insns,
	}, callees, nil
}

// methodIndex pulls the method-table index out of an invoke-family
// instruction.
func methodIndex(reg *disasm.Regular) uint16 {
	switch f := reg.Format.(type) {
	case disasm.F35c:
		return f.Idx
	case disasm.F3rc:
		return f.Idx
	case disasm.F45cc:
		return f.Meth
	case disasm.F4rcc:
		return f.Meth
	}
	return 0
}

// resolveSignature resolves a method-table index to a full signature via
// the DEX string, type and prototype tables.
func resolveSignature(dex DexFile, idx uint32) (Signature, error) {
	item, err := dex.MethodItem(idx)
	if err != nil {
		return Signature{}, err
	}
	classType, err := dex.Type(uint32(item.ClassIdx))
	if err != nil {
		return Signature{}, err
	}
	name, err := dex.String(item.NameIdx)
	if err != nil {
		return Signature{}, err
	}
	proto, err := dex.ProtoItem(uint32(item.ProtoIdx))
	if err != nil {
		return Signature{}, err
	}
	ret, err := dex.Type(proto.ReturnTypeIdx)
	if err != nil {
		return Signature{}, err
	}
	params, err := dex.TypeList(proto.ParamsOff)
	if err != nil {
		return Signature{}, err
	}
	return Signature{
		ClassType:  classType,
		MethodName: name,
		Params:     params,
		ReturnType: ret,
	}, nil
}
