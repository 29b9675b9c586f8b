// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package callgraph

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dexflow/dexflow/dalvik"
)

func sig(classType, name string, params []string) Signature {
	return Signature{
		ClassType:  classType,
		MethodName: name,
		Params:     params,
		ReturnType: "V",
	}
}

func method(classType, name string) Method {
	return Method{Signature: sig(classType, name, nil)}
}

func names(methods []Method) []string {
	out := make([]string, len(methods))
	for i, m := range methods {
		out[i] = m.MethodName
	}
	return out
}

// buildCallGraphFixture mirrors the call_graph.dex fixture: main calls a,
// a calls z, y, x in bytecode order.
func buildCallGraphFixture() *Graph {
	g := NewGraph()
	cls := "LTestBasic;"
	g.AddMethod(method(cls, "<init>"), nil)
	g.AddMethod(method(cls, "a"), []Signature{
		sig(cls, "z", nil), sig(cls, "y", nil), sig(cls, "x", nil),
	})
	g.AddMethod(method(cls, "z"), nil)
	g.AddMethod(method(cls, "y"), nil)
	g.AddMethod(method(cls, "x"), nil)
	g.AddMethod(method(cls, "main"), []Signature{sig(cls, "a", nil)})
	return g
}

func TestFlattenCalleesFirst(t *testing.T) {
	got := names(buildCallGraphFixture().Flatten(nil))
	want := []string{"<init>", "a", "z", "y", "x", "main"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("flatten order (-want +got):\n%s", diff)
	}
}

func TestFlattenDeterminism(t *testing.T) {
	first := names(buildCallGraphFixture().Flatten(nil))
	for i := 0; i < 10; i++ {
		again := names(buildCallGraphFixture().Flatten(nil))
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestFlattenManifestBias(t *testing.T) {
	g := NewGraph()
	g.AddMethod(method("Lcom/app/MainActivity;", "onCreate"), []Signature{
		sig("Lcom/app/Util;", "helper", nil),
	})
	g.AddMethod(method("Lcom/app/Util;", "helper"), nil)
	g.AddMethod(method("Lcom/app/Util;", "other"), nil)

	re := regexp.MustCompile("com/app/MainActivity")
	got := names(g.Flatten([]*regexp.Regexp{re}))
	want := []string{"onCreate", "helper", "other"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("flatten order (-want +got):\n%s", diff)
	}
}

func TestFlattenUnresolvedCallee(t *testing.T) {
	g := NewGraph()
	g.AddMethod(method("La;", "m"), []Signature{sig("Lmissing;", "gone", nil)})
	got := g.Flatten(nil)
	if len(got) != 1 || got[0].MethodName != "m" {
		t.Fatalf("got %v, want just m", names(got))
	}
}

// fakeDex implements DexFile in memory, mirroring the hello_world.dex
// fixture's tables.
type fakeDex struct {
	classes   []*dalvik.Class
	strings   []string
	types     []string
	protos    []dalvik.ProtoItem
	methods   []dalvik.MethodItem
	typeLists map[uint32][]string
}

func (f *fakeDex) Classes() []*dalvik.Class { return f.classes }

func (f *fakeDex) String(idx uint32) (string, error) {
	if int(idx) >= len(f.strings) {
		return "", dalvik.OutOfBoundsError{Table: "string", Index: idx, Size: len(f.strings)}
	}
	return f.strings[idx], nil
}

func (f *fakeDex) Type(idx uint32) (string, error) {
	if int(idx) >= len(f.types) {
		return "", dalvik.OutOfBoundsError{Table: "type", Index: idx, Size: len(f.types)}
	}
	return f.types[idx], nil
}

func (f *fakeDex) ProtoItem(idx uint32) (dalvik.ProtoItem, error) {
	if int(idx) >= len(f.protos) {
		return dalvik.ProtoItem{}, dalvik.OutOfBoundsError{Table: "proto", Index: idx, Size: len(f.protos)}
	}
	return f.protos[idx], nil
}

func (f *fakeDex) MethodItem(idx uint32) (dalvik.MethodItem, error) {
	if int(idx) >= len(f.methods) {
		return dalvik.MethodItem{}, dalvik.OutOfBoundsError{Table: "method", Index: idx, Size: len(f.methods)}
	}
	return f.methods[idx], nil
}

func (f *fakeDex) TypeList(off uint32) ([]string, error) {
	if off == 0 {
		return nil, nil
	}
	return f.typeLists[off], nil
}

func helloWorldFake() *fakeDex {
	f := &fakeDex{
		strings: []string{"<init>", "Hello", "main", "out", "println"},
		types: []string{
			"LTestBasic;",
			"Ljava/io/PrintStream;",
			"Ljava/lang/Object;",
			"Ljava/lang/String;",
			"Ljava/lang/System;",
			"V",
			"[Ljava/lang/String;",
		},
		protos: []dalvik.ProtoItem{
			{ReturnTypeIdx: 5, ParamsOff: 0},   // ()V
			{ReturnTypeIdx: 5, ParamsOff: 100}, // ([Ljava/lang/String;)V
			{ReturnTypeIdx: 5, ParamsOff: 200}, // (Ljava/lang/String;)V
		},
		methods: []dalvik.MethodItem{
			{ClassIdx: 0, ProtoIdx: 0, NameIdx: 0}, // TestBasic.<init>
			{ClassIdx: 2, ProtoIdx: 0, NameIdx: 0}, // Object.<init>
			{ClassIdx: 1, ProtoIdx: 2, NameIdx: 4}, // PrintStream.println
			{ClassIdx: 0, ProtoIdx: 1, NameIdx: 2}, // TestBasic.main
		},
		typeLists: map[uint32][]string{
			100: {"[Ljava/lang/String;"},
			200: {"Ljava/lang/String;"},
		},
	}
	f.classes = []*dalvik.Class{{
		JType:      "LTestBasic;",
		Superclass: "Ljava/lang/Object;",
		DirectMethods: []*dalvik.Method{
			{
				Idx: 0, Name: "<init>", ReturnType: "V",
				Code: &dalvik.CodeItem{Insns: []uint16{
					0x1070, 0x0001, 0x0000, // invoke-direct {v0}, Object.<init>
					0x000e, // return-void
				}},
			},
			{
				Idx: 3, Name: "main", Params: []string{"[Ljava/lang/String;"}, ReturnType: "V",
				Code: &dalvik.CodeItem{Insns: []uint16{
					0x0062, 0x0000, // sget-object v0, System.out
					0x011a, 0x0001, // const-string v1, "Hello"
					0x206e, 0x0002, 0x0010, // invoke-virtual {v0, v1}, println
					0x000e, // return-void
				}},
			},
		},
	}}
	return f
}

func TestExtractHelloWorld(t *testing.T) {
	methods := Extract([]DexFile{helloWorldFake()}, nil, Options{})
	if len(methods) != 2 {
		t.Fatalf("methods: got %d, want 2", len(methods))
	}
	if methods[0].MethodName != "<init>" || methods[1].MethodName != "main" {
		t.Fatalf("order: got %v, want [<init> main]", names(methods))
	}

	main := methods[1]
	gotOps := make([]byte, len(main.Insns))
	for i, ins := range main.Insns {
		gotOps[i] = ins.Opcode
	}
	// sget-object, const-string, invoke-virtual, return-void
	if diff := cmp.Diff([]byte{0x62, 0x1a, 0x6e, 0x0e}, gotOps); diff != "" {
		t.Fatalf("main opcodes (-want +got):\n%s", diff)
	}
	if main.Insns[2].MethodIdx == nil || *main.Insns[2].MethodIdx != 2 {
		t.Fatalf("invoke-virtual m_idx: got %v, want 2", main.Insns[2].MethodIdx)
	}
	for _, i := range []int{0, 1, 3} {
		if main.Insns[i].MethodIdx != nil {
			t.Errorf("instruction %d: unexpected m_idx %d", i, *main.Insns[i].MethodIdx)
		}
	}
}

func TestExtractDropsBadMethod(t *testing.T) {
	f := helloWorldFake()
	f.classes[0].DirectMethods = append(f.classes[0].DirectMethods, &dalvik.Method{
		Idx: 1, Name: "broken", ReturnType: "V",
		Code: &dalvik.CodeItem{Insns: []uint16{0x003e}}, // reserved opcode
	})
	methods := Extract([]DexFile{f}, nil, Options{})
	for _, m := range methods {
		if m.MethodName == "broken" {
			t.Fatalf("broken method survived extraction")
		}
	}
	if len(methods) != 2 {
		t.Fatalf("methods: got %d, want 2", len(methods))
	}
}

func TestExtractSequenceCap(t *testing.T) {
	// <init> contributes 2 instructions; main would push the total to 6.
	methods := Extract([]DexFile{helloWorldFake()}, nil, Options{SequenceCap: 3})
	if len(methods) != 1 {
		t.Fatalf("methods: got %d, want 1", len(methods))
	}
	if methods[0].MethodName != "<init>" {
		t.Fatalf("got %q, want <init>", methods[0].MethodName)
	}
}

func TestCompact(t *testing.T) {
	m := Method{
		Signature: sig("LTestBasic;", "main", []string{"[Ljava/lang/String;"}),
		Insns: []Instruction{
			{Opcode: 0x62},
			{Opcode: 0x6e, MethodIdx: new(uint16)},
			{Opcode: 0x0e},
		},
	}
	c := Compact(m)
	if c.Sig != "LTestBasic;main" {
		t.Fatalf("sig: got %q", c.Sig)
	}
	if diff := cmp.Diff(OpcodeSequence{0x62, 0x6e, 0x0e}, c.Insns); diff != "" {
		t.Fatalf("insns (-want +got):\n%s", diff)
	}
	out, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"sig":"LTestBasic;main","ins":[98,110,14]}`
	if string(out) != want {
		t.Fatalf("json: got %s, want %s", out, want)
	}
}
