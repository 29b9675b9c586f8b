// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dalvik parses the DEX (Dalvik Executable) container format:
// the header, the string/type/prototype/field/method tables, class
// definitions and per-method code items.
// https://source.android.com/docs/core/runtime/dex-format
package dalvik

import (
	"bytes"

	"github.com/pkg/errors"
)

// The 8-byte DEX file magic is "dex\n03X\0" with X a digit between 5
// and 9.
var magicPrefix = []byte{0x64, 0x65, 0x78, 0x0a, 0x30, 0x33}

func validMagic(b []byte) bool {
	if len(b) < 8 {
		return false
	}
	if !bytes.Equal(b[:6], magicPrefix) {
		return false
	}
	return b[6] >= 0x35 && b[6] <= 0x39 && b[7] == 0x00
}

// Header is the fixed-size DEX file header.
type Header struct {
	Checksum  uint32
	Signature [20]byte
	FileSize  uint32
	EndianTag uint32

	stringIDsSize, stringIDsOff uint32
	typeIDsSize, typeIDsOff     uint32
	protoIDsSize, protoIDsOff   uint32
	fieldIDsSize, fieldIDsOff   uint32
	methodIDsSize, methodIDsOff uint32
	classDefsSize, classDefsOff uint32
}

// ProtoItem is a row of the prototype table. A ParamsOff of zero means
// the prototype has no parameters.
type ProtoItem struct {
	ShortyIdx     uint32
	ReturnTypeIdx uint32
	ParamsOff     uint32
}

// FieldItem is a row of the field table.
type FieldItem struct {
	ClassIdx uint16
	TypeIdx  uint16
	NameIdx  uint32
}

// MethodItem is a row of the method table.
type MethodItem struct {
	ClassIdx uint16
	ProtoIdx uint16
	NameIdx  uint32
}

// ClassDef is a row of the class definition table.
type ClassDef struct {
	ClassIdx        uint32
	AccessFlags     uint32
	SuperclassIdx   uint32
	InterfacesOff   uint32
	SourceFileIdx   uint32
	AnnotationsOff  uint32
	ClassDataOff    uint32
	StaticValuesOff uint32
}

// Dex is a parsed DEX image. The tables are decoded eagerly; method code
// items are decoded while reading class data.
type Dex struct {
	Header Header

	strings   []string
	typeIDs   []uint32
	protoIDs  []ProtoItem
	fieldIDs  []FieldItem
	methodIDs []MethodItem
	classDefs []ClassDef
	classes   []*Class

	data []byte
}

// ReadDex parses a DEX byte image.
func ReadDex(data []byte) (*Dex, error) {
	if !validMagic(data) {
		return nil, ErrInvalidMagic
	}
	d := &Dex{data: data}
	r := &reader{data: data}
	if err := d.readHeader(r); err != nil {
		return nil, errors.Wrap(err, "dalvik: reading header")
	}
	for _, fn := range []struct {
		name string
		read func(*reader) error
	}{
		{"string table", d.readStrings},
		{"type table", d.readTypes},
		{"proto table", d.readProtos},
		{"field table", d.readFields},
		{"method table", d.readMethods},
		{"class definitions", d.readClassDefs},
		{"class data", d.readClasses},
	} {
		if err := fn.read(r); err != nil {
			return nil, errors.Wrapf(err, "dalvik: reading %s", fn.name)
		}
	}
	logger.Printf("parsed dex: %d strings, %d methods, %d classes",
		len(d.strings), len(d.methodIDs), len(d.classes))
	return d, nil
}

func (d *Dex) readHeader(r *reader) error {
	if err := r.seek(8); err != nil {
		return err
	}
	h := &d.Header
	var err error
	if h.Checksum, err = r.u32(); err != nil {
		return err
	}
	sig, err := r.bytes(20)
	if err != nil {
		return err
	}
	copy(h.Signature[:], sig)
	for _, dst := range []*uint32{
		&h.FileSize, nil /* header_size */, &h.EndianTag,
		nil /* link_size */, nil /* link_off */, nil, /* map_off */
		&h.stringIDsSize, &h.stringIDsOff,
		&h.typeIDsSize, &h.typeIDsOff,
		&h.protoIDsSize, &h.protoIDsOff,
		&h.fieldIDsSize, &h.fieldIDsOff,
		&h.methodIDsSize, &h.methodIDsOff,
		&h.classDefsSize, &h.classDefsOff,
	} {
		v, err := r.u32()
		if err != nil {
			return err
		}
		if dst != nil {
			*dst = v
		}
	}
	return nil
}

func (d *Dex) readStrings(r *reader) error {
	if err := r.seek(d.Header.stringIDsOff); err != nil {
		return err
	}
	offs := make([]uint32, 0, getInitialCap(d.Header.stringIDsSize))
	for i := uint32(0); i < d.Header.stringIDsSize; i++ {
		off, err := r.u32()
		if err != nil {
			return err
		}
		offs = append(offs, off)
	}
	d.strings = make([]string, 0, len(offs))
	for _, off := range offs {
		if err := r.seek(off); err != nil {
			return err
		}
		if _, err := r.uleb(); err != nil { // utf16 length, unused
			return err
		}
		s, err := r.mutf8()
		if err != nil {
			return err
		}
		d.strings = append(d.strings, s)
	}
	return nil
}

func (d *Dex) readTypes(r *reader) error {
	if err := r.seek(d.Header.typeIDsOff); err != nil {
		return err
	}
	d.typeIDs = make([]uint32, 0, getInitialCap(d.Header.typeIDsSize))
	for i := uint32(0); i < d.Header.typeIDsSize; i++ {
		idx, err := r.u32()
		if err != nil {
			return err
		}
		d.typeIDs = append(d.typeIDs, idx)
	}
	return nil
}

func (d *Dex) readProtos(r *reader) error {
	if err := r.seek(d.Header.protoIDsOff); err != nil {
		return err
	}
	d.protoIDs = make([]ProtoItem, 0, getInitialCap(d.Header.protoIDsSize))
	for i := uint32(0); i < d.Header.protoIDsSize; i++ {
		var p ProtoItem
		var err error
		if p.ShortyIdx, err = r.u32(); err != nil {
			return err
		}
		if p.ReturnTypeIdx, err = r.u32(); err != nil {
			return err
		}
		if p.ParamsOff, err = r.u32(); err != nil {
			return err
		}
		d.protoIDs = append(d.protoIDs, p)
	}
	return nil
}

func (d *Dex) readFields(r *reader) error {
	if err := r.seek(d.Header.fieldIDsOff); err != nil {
		return err
	}
	d.fieldIDs = make([]FieldItem, 0, getInitialCap(d.Header.fieldIDsSize))
	for i := uint32(0); i < d.Header.fieldIDsSize; i++ {
		var f FieldItem
		var err error
		if f.ClassIdx, err = r.u16(); err != nil {
			return err
		}
		if f.TypeIdx, err = r.u16(); err != nil {
			return err
		}
		if f.NameIdx, err = r.u32(); err != nil {
			return err
		}
		d.fieldIDs = append(d.fieldIDs, f)
	}
	return nil
}

func (d *Dex) readMethods(r *reader) error {
	if err := r.seek(d.Header.methodIDsOff); err != nil {
		return err
	}
	d.methodIDs = make([]MethodItem, 0, getInitialCap(d.Header.methodIDsSize))
	for i := uint32(0); i < d.Header.methodIDsSize; i++ {
		var m MethodItem
		var err error
		if m.ClassIdx, err = r.u16(); err != nil {
			return err
		}
		if m.ProtoIdx, err = r.u16(); err != nil {
			return err
		}
		if m.NameIdx, err = r.u32(); err != nil {
			return err
		}
		d.methodIDs = append(d.methodIDs, m)
	}
	return nil
}

func (d *Dex) readClassDefs(r *reader) error {
	if err := r.seek(d.Header.classDefsOff); err != nil {
		return err
	}
	d.classDefs = make([]ClassDef, 0, getInitialCap(d.Header.classDefsSize))
	for i := uint32(0); i < d.Header.classDefsSize; i++ {
		var c ClassDef
		for _, dst := range []*uint32{
			&c.ClassIdx, &c.AccessFlags, &c.SuperclassIdx, &c.InterfacesOff,
			&c.SourceFileIdx, &c.AnnotationsOff, &c.ClassDataOff, &c.StaticValuesOff,
		} {
			v, err := r.u32()
			if err != nil {
				return err
			}
			*dst = v
		}
		d.classDefs = append(d.classDefs, c)
	}
	return nil
}

// String returns the string-table entry at idx.
func (d *Dex) String(idx uint32) (string, error) {
	if int(idx) >= len(d.strings) {
		return "", OutOfBoundsError{Table: "string", Index: idx, Size: len(d.strings)}
	}
	return d.strings[idx], nil
}

// Type returns the type descriptor at idx (e.g. "Ljava/lang/Object;",
// "[I", "V").
func (d *Dex) Type(idx uint32) (string, error) {
	if int(idx) >= len(d.typeIDs) {
		return "", OutOfBoundsError{Table: "type", Index: idx, Size: len(d.typeIDs)}
	}
	return d.String(d.typeIDs[idx])
}

// ProtoItem returns the prototype-table row at idx.
func (d *Dex) ProtoItem(idx uint32) (ProtoItem, error) {
	if int(idx) >= len(d.protoIDs) {
		return ProtoItem{}, OutOfBoundsError{Table: "proto", Index: idx, Size: len(d.protoIDs)}
	}
	return d.protoIDs[idx], nil
}

// MethodItem returns the method-table row at idx.
func (d *Dex) MethodItem(idx uint32) (MethodItem, error) {
	if int(idx) >= len(d.methodIDs) {
		return MethodItem{}, OutOfBoundsError{Table: "method", Index: idx, Size: len(d.methodIDs)}
	}
	return d.methodIDs[idx], nil
}

// TypeList reads the type_list at the given file offset and resolves
// every entry to its descriptor. A zero offset yields nil, matching the
// convention for "no parameters" and "no interfaces".
func (d *Dex) TypeList(off uint32) ([]string, error) {
	if off == 0 {
		return nil, nil
	}
	r := &reader{data: d.data}
	if err := r.seek(off); err != nil {
		return nil, err
	}
	size, err := r.u32()
	if err != nil {
		return nil, err
	}
	types := make([]string, 0, getInitialCap(size))
	for i := uint32(0); i < size; i++ {
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		t, err := d.Type(uint32(idx))
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// Classes returns the parsed class definitions.
func (d *Dex) Classes() []*Class {
	return d.classes
}
