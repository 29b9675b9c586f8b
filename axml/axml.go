// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package axml decodes the Android binary XML format (AXML) used for
// compiled resources such as AndroidManifest.xml. The file is a sequence
// of typed chunks: a string pool, an optional resource map, namespace
// markers and element events. Parse replays the element events into a
// tree of nodes with stringly-typed attributes.
package axml

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// Node is an XML element: tag, attributes and child elements.
type Node struct {
	Tag        string
	Attributes map[string]string
	Children   []*Node
}

// Chunk types.
const (
	chunkStringPool     = 0x0001
	chunkXML            = 0x0003
	chunkStartNamespace = 0x0100
	chunkEndNamespace   = 0x0101
	chunkStartElement   = 0x0102
	chunkEndElement     = 0x0103
	chunkCData          = 0x0104
	chunkResourceMap    = 0x0180
)

// Typed attribute values.
const (
	typeNull      = 0x00
	typeReference = 0x01
	typeString    = 0x03
	typeFloat     = 0x04
	typeIntDec    = 0x10
	typeIntHex    = 0x11
	typeBool      = 0x12
)

const utf8Flag = 0x0100

const androidNS = "http://schemas.android.com/apk/res/android"

// ParseError reports a structurally invalid AXML document.
type ParseError struct {
	Offset int
	Reason string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("axml: %s at offset %d", e.Reason, e.Offset)
}

type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) u16() (uint16, error) {
	if c.pos+2 > len(c.data) {
		return 0, ParseError{Offset: c.pos, Reason: "truncated chunk"}
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *cursor) u32() (uint32, error) {
	if c.pos+4 > len(c.data) {
		return 0, ParseError{Offset: c.pos, Reason: "truncated chunk"}
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

// Parse decodes an AXML document and returns its root element.
func Parse(data []byte) (*Node, error) {
	c := &cursor{data: data}
	typ, err := c.u16()
	if err != nil {
		return nil, err
	}
	if typ != chunkXML {
		return nil, ParseError{Offset: 0, Reason: "not a binary XML document"}
	}
	if _, err := c.u16(); err != nil { // header size
		return nil, err
	}
	docSize, err := c.u32()
	if err != nil {
		return nil, err
	}
	if int(docSize) < len(data) {
		data = data[:docSize]
		c.data = data
	}

	var (
		pool     []string
		prefixes = map[string]string{} // namespace uri -> prefix
		stack    []*Node
		root     *Node
	)

	for c.pos < len(data) {
		chunkStart := c.pos
		typ, err := c.u16()
		if err != nil {
			return nil, err
		}
		if _, err := c.u16(); err != nil { // header size
			return nil, err
		}
		size, err := c.u32()
		if err != nil {
			return nil, err
		}
		if size < 8 || chunkStart+int(size) > len(data) {
			return nil, ParseError{Offset: chunkStart, Reason: "bad chunk size"}
		}
		// Node chunks lay line number and comment immediately after the
		// chunk header, so the body cursor starts there.
		body := &cursor{data: data[:chunkStart+int(size)], pos: chunkStart + 8}

		switch typ {
		case chunkStringPool:
			pool, err = readStringPool(data, chunkStart)
			if err != nil {
				return nil, errors.Wrap(err, "axml: string pool")
			}

		case chunkResourceMap:
			// Resource ids are not needed for attribute extraction.

		case chunkStartNamespace:
			prefix, uri, err := readNamespace(body, pool)
			if err != nil {
				return nil, err
			}
			prefixes[uri] = prefix

		case chunkEndNamespace:
			// Prefix mappings stay live; manifests do not reuse them.

		case chunkStartElement:
			node, err := readStartElement(body, pool, prefixes)
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, ParseError{Offset: chunkStart, Reason: "multiple roots"}
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case chunkEndElement:
			if len(stack) == 0 {
				return nil, ParseError{Offset: chunkStart, Reason: "unbalanced end element"}
			}
			stack = stack[:len(stack)-1]

		case chunkCData:
			// Character data carries no attributes; skipped.

		default:
			logger.Printf("axml: skipping unknown chunk type %#04x", typ)
		}

		c.pos = chunkStart + int(size)
	}

	if root == nil {
		return nil, ParseError{Offset: len(data), Reason: "no root element"}
	}
	if len(stack) != 0 {
		return nil, ParseError{Offset: len(data), Reason: "unclosed element"}
	}
	return root, nil
}

func readNamespace(c *cursor, pool []string) (prefix, uri string, err error) {
	if _, err = c.u32(); err != nil { // line number
		return
	}
	if _, err = c.u32(); err != nil { // comment
		return
	}
	prefixIdx, err := c.u32()
	if err != nil {
		return
	}
	uriIdx, err := c.u32()
	if err != nil {
		return
	}
	return poolString(pool, prefixIdx), poolString(pool, uriIdx), nil
}

func readStartElement(c *cursor, pool []string, prefixes map[string]string) (*Node, error) {
	var fields [4]uint32 // line, comment, ns, name
	for i := range fields {
		v, err := c.u32()
		if err != nil {
			return nil, err
		}
		fields[i] = v
	}
	if _, err := c.u16(); err != nil { // attribute start
		return nil, err
	}
	if _, err := c.u16(); err != nil { // attribute size
		return nil, err
	}
	count, err := c.u16()
	if err != nil {
		return nil, err
	}
	for i := 0; i < 3; i++ { // id, class, style indexes
		if _, err := c.u16(); err != nil {
			return nil, err
		}
	}

	node := &Node{
		Tag:        poolString(pool, fields[3]),
		Attributes: make(map[string]string, count),
	}
	for i := 0; i < int(count); i++ {
		nsIdx, err := c.u32()
		if err != nil {
			return nil, err
		}
		nameIdx, err := c.u32()
		if err != nil {
			return nil, err
		}
		rawIdx, err := c.u32()
		if err != nil {
			return nil, err
		}
		if _, err := c.u16(); err != nil { // value size
			return nil, err
		}
		// res0 and dataType share a u16.
		meta, err := c.u16()
		if err != nil {
			return nil, err
		}
		dataType := byte(meta >> 8)
		value, err := c.u32()
		if err != nil {
			return nil, err
		}

		name := poolString(pool, nameIdx)
		if ns := poolString(pool, nsIdx); ns != "" {
			prefix := prefixes[ns]
			if prefix == "" && ns == androidNS {
				prefix = "android"
			}
			if prefix != "" {
				name = prefix + ":" + name
			}
		}
		node.Attributes[name] = attributeValue(pool, dataType, rawIdx, value)
	}
	return node, nil
}

// attributeValue renders a typed attribute value as text. The raw string
// index wins when present; typed values are formatted by type.
func attributeValue(pool []string, dataType byte, rawIdx, data uint32) string {
	if rawIdx != 0xffffffff {
		if s := poolString(pool, rawIdx); s != "" {
			return s
		}
	}
	switch dataType {
	case typeNull:
		return ""
	case typeReference:
		return fmt.Sprintf("@0x%08x", data)
	case typeString:
		return poolString(pool, data)
	case typeFloat:
		return strconv.FormatFloat(float64(math.Float32frombits(data)), 'g', -1, 32)
	case typeIntDec:
		return strconv.FormatInt(int64(int32(data)), 10)
	case typeIntHex:
		return fmt.Sprintf("0x%x", data)
	case typeBool:
		if data != 0 {
			return "true"
		}
		return "false"
	}
	return fmt.Sprintf("0x%x", data)
}

func poolString(pool []string, idx uint32) string {
	if idx == 0xffffffff || int(idx) >= len(pool) {
		return ""
	}
	return pool[idx]
}

// readStringPool decodes the string pool chunk starting at off. Strings
// are stored UTF-8 or UTF-16LE depending on the pool flags.
func readStringPool(data []byte, off int) ([]string, error) {
	c := &cursor{data: data, pos: off + 2} // skip chunk type
	headerSize, err := c.u16()
	if err != nil {
		return nil, err
	}
	size, err := c.u32()
	if err != nil {
		return nil, err
	}
	if off+int(size) > len(data) {
		return nil, ParseError{Offset: off, Reason: "bad string pool size"}
	}
	count, err := c.u32()
	if err != nil {
		return nil, err
	}
	if _, err := c.u32(); err != nil { // style count
		return nil, err
	}
	flags, err := c.u32()
	if err != nil {
		return nil, err
	}
	stringsStart, err := c.u32()
	if err != nil {
		return nil, err
	}
	if _, err := c.u32(); err != nil { // styles start
		return nil, err
	}
	c.pos = off + int(headerSize)

	offsets := make([]uint32, count)
	for i := range offsets {
		v, err := c.u32()
		if err != nil {
			return nil, err
		}
		offsets[i] = v
	}

	utf8 := flags&utf8Flag != 0
	base := off + int(stringsStart)
	pool := make([]string, count)
	for i, strOff := range offsets {
		s, err := readPoolString(data, base+int(strOff), utf8)
		if err != nil {
			return nil, err
		}
		pool[i] = s
	}
	return pool, nil
}

func readPoolString(data []byte, pos int, utf8 bool) (string, error) {
	if utf8 {
		// Two varlen lengths: UTF-16 length then byte length; each is one
		// byte, or two when the high bit of the first is set.
		_, pos, err := readUTF8Len(data, pos)
		if err != nil {
			return "", err
		}
		n, pos, err := readUTF8Len(data, pos)
		if err != nil {
			return "", err
		}
		if pos+n > len(data) {
			return "", ParseError{Offset: pos, Reason: "truncated string"}
		}
		return string(data[pos : pos+n]), nil
	}

	if pos+2 > len(data) {
		return "", ParseError{Offset: pos, Reason: "truncated string"}
	}
	n := int(binary.LittleEndian.Uint16(data[pos:]))
	pos += 2
	if n&0x8000 != 0 {
		if pos+2 > len(data) {
			return "", ParseError{Offset: pos, Reason: "truncated string"}
		}
		n = (n&0x7fff)<<16 | int(binary.LittleEndian.Uint16(data[pos:]))
		pos += 2
	}
	if pos+n*2 > len(data) {
		return "", ParseError{Offset: pos, Reason: "truncated string"}
	}
	units := make([]uint16, n)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(data[pos+i*2:])
	}
	return string(utf16.Decode(units)), nil
}

func readUTF8Len(data []byte, pos int) (int, int, error) {
	if pos >= len(data) {
		return 0, 0, ParseError{Offset: pos, Reason: "truncated string length"}
	}
	n := int(data[pos])
	pos++
	if n&0x80 != 0 {
		if pos >= len(data) {
			return 0, 0, ParseError{Offset: pos, Reason: "truncated string length"}
		}
		n = (n&0x7f)<<8 | int(data[pos])
		pos++
	}
	return n, pos, nil
}
