// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dalvik

// Class is a class definition with its resolved type descriptor and
// decoded method lists.
type Class struct {
	JType       string
	Superclass  string
	Interfaces  []string
	AccessFlags uint32

	DirectMethods  []*Method
	VirtualMethods []*Method
}

// Methods returns the direct methods followed by the virtual methods, in
// class-data order.
func (c *Class) Methods() []*Method {
	out := make([]*Method, 0, len(c.DirectMethods)+len(c.VirtualMethods))
	out = append(out, c.DirectMethods...)
	return append(out, c.VirtualMethods...)
}

// Method is a declared method: its method-table index, resolved name and
// prototype, and (for non-abstract, non-native methods) its code item.
type Method struct {
	Idx         uint32
	Name        string
	Params      []string
	ReturnType  string
	AccessFlags uint32
	Code        *CodeItem
}

// CodeItem is a method body: register counts and the raw instruction
// stream in 16-bit code units.
type CodeItem struct {
	RegistersSize uint16
	InsSize       uint16
	OutsSize      uint16
	Insns         []uint16
}

func (d *Dex) readClasses(r *reader) error {
	d.classes = make([]*Class, 0, len(d.classDefs))
	for _, def := range d.classDefs {
		jtype, err := d.Type(def.ClassIdx)
		if err != nil {
			return err
		}
		c := &Class{
			JType:       jtype,
			AccessFlags: def.AccessFlags,
		}
		// The "no superclass" marker is the all-ones index.
		if def.SuperclassIdx != 0xffffffff {
			if c.Superclass, err = d.Type(def.SuperclassIdx); err != nil {
				return err
			}
		}
		if c.Interfaces, err = d.TypeList(def.InterfacesOff); err != nil {
			return err
		}
		if def.ClassDataOff != 0 {
			if err := d.readClassData(r, c, def.ClassDataOff); err != nil {
				return err
			}
		}
		d.classes = append(d.classes, c)
	}
	return nil
}

func (d *Dex) readClassData(r *reader, c *Class, off uint32) error {
	if err := r.seek(off); err != nil {
		return err
	}
	staticFields, err := r.uleb()
	if err != nil {
		return err
	}
	instanceFields, err := r.uleb()
	if err != nil {
		return err
	}
	directMethods, err := r.uleb()
	if err != nil {
		return err
	}
	virtualMethods, err := r.uleb()
	if err != nil {
		return err
	}

	// encoded_field is a (field_idx_diff, access_flags) pair; the fields
	// themselves are not modeled, only skipped.
	for i := uint32(0); i < staticFields+instanceFields; i++ {
		if _, err := r.uleb(); err != nil {
			return err
		}
		if _, err := r.uleb(); err != nil {
			return err
		}
	}

	if c.DirectMethods, err = d.readEncodedMethods(r, directMethods); err != nil {
		return err
	}
	c.VirtualMethods, err = d.readEncodedMethods(r, virtualMethods)
	return err
}

func (d *Dex) readEncodedMethods(r *reader, count uint32) ([]*Method, error) {
	methods := make([]*Method, 0, getInitialCap(count))
	var idx uint32
	for i := uint32(0); i < count; i++ {
		diff, err := r.uleb()
		if err != nil {
			return nil, err
		}
		access, err := r.uleb()
		if err != nil {
			return nil, err
		}
		codeOff, err := r.uleb()
		if err != nil {
			return nil, err
		}
		if i == 0 {
			idx = diff
		} else {
			idx += diff
		}
		m, err := d.resolveMethod(idx, access)
		if err != nil {
			return nil, err
		}
		if codeOff != 0 {
			if m.Code, err = d.readCodeItem(codeOff); err != nil {
				return nil, err
			}
		}
		methods = append(methods, m)
	}
	return methods, nil
}

func (d *Dex) resolveMethod(idx uint32, access uint32) (*Method, error) {
	item, err := d.MethodItem(idx)
	if err != nil {
		return nil, err
	}
	name, err := d.String(item.NameIdx)
	if err != nil {
		return nil, err
	}
	proto, err := d.ProtoItem(uint32(item.ProtoIdx))
	if err != nil {
		return nil, err
	}
	ret, err := d.Type(proto.ReturnTypeIdx)
	if err != nil {
		return nil, err
	}
	params, err := d.TypeList(proto.ParamsOff)
	if err != nil {
		return nil, err
	}
	return &Method{
		Idx:         idx,
		Name:        name,
		Params:      params,
		ReturnType:  ret,
		AccessFlags: access,
	}, nil
}

func (d *Dex) readCodeItem(off uint32) (*CodeItem, error) {
	r := &reader{data: d.data}
	if err := r.seek(off); err != nil {
		return nil, err
	}
	code := &CodeItem{}
	var err error
	if code.RegistersSize, err = r.u16(); err != nil {
		return nil, err
	}
	if code.InsSize, err = r.u16(); err != nil {
		return nil, err
	}
	if code.OutsSize, err = r.u16(); err != nil {
		return nil, err
	}
	if _, err = r.u16(); err != nil { // tries_size
		return nil, err
	}
	if _, err = r.u32(); err != nil { // debug_info_off
		return nil, err
	}
	size, err := r.u32()
	if err != nil {
		return nil, err
	}
	code.Insns = make([]uint16, 0, getInitialCap(size))
	for i := uint32(0); i < size; i++ {
		w, err := r.u16()
		if err != nil {
			return nil, err
		}
		code.Insns = append(code.Insns, w)
	}
	return code, nil
}
