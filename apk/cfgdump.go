// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apk

import (
	"archive/zip"
	"bytes"
	"os"

	"github.com/edsrzf/mmap-go"
	log "github.com/sirupsen/logrus"

	"github.com/dexflow/dexflow/cfg"
	"github.com/dexflow/dexflow/dalvik"
	"github.com/dexflow/dexflow/disasm"
)

// CFGSummary describes the control-flow shape of one method.
type CFGSummary struct {
	Sig    string
	Blocks int
	Loops  int
}

// SummarizeCFG parses the archive at path and computes, per method,
// the basic-block count and the natural-loop count. Methods that fail
// to decode are logged and skipped.
func SummarizeCFG(path string) ([]CFGSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ArchiveError{Path: path, Err: err}
	}
	defer f.Close()
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, &ArchiveError{Path: path, Err: err}
	}
	defer m.Unmap()

	zr, err := zip.NewReader(bytes.NewReader(m), int64(len(m)))
	if err != nil {
		return nil, &ArchiveError{Path: path, Err: err}
	}

	var summaries []CFGSummary
	for _, entry := range zr.File {
		if !maybeDex(entry) {
			continue
		}
		buf, err := readEntry(entry)
		if err != nil || !dexMagic.Match(buf) {
			continue
		}
		dex, err := dalvik.ReadDex(buf)
		if err != nil {
			log.WithField("entry", entry.Name).Warnf("dex parse failed: %v", err)
			continue
		}
		for _, class := range dex.Classes() {
			for _, method := range class.Methods() {
				if method.Code == nil {
					continue
				}
				s, err := summarizeMethod(class.JType+method.Name, method.Code.Insns)
				if err != nil {
					log.WithFields(log.Fields{
						"class":  class.JType,
						"method": method.Name,
					}).Warnf("skipping method: %v", err)
					continue
				}
				summaries = append(summaries, s)
			}
		}
	}
	return summaries, nil
}

func summarizeMethod(sig string, code []uint16) (CFGSummary, error) {
	builder := cfg.NewBuilder()
	offset := 0
	for {
		ins, n, err := disasm.Decode(code, offset)
		if err != nil {
			return CFGSummary{}, err
		}
		if ins == nil {
			break
		}
		if err := builder.Add(uint32(offset), ins); err != nil {
			return CFGSummary{}, err
		}
		offset += n
	}
	blocks, err := builder.BasicBlocks()
	if err != nil {
		return CFGSummary{}, err
	}
	cfg.ComputeDominators(blocks)
	return CFGSummary{
		Sig:    sig,
		Blocks: len(blocks),
		Loops:  len(cfg.NaturalLoops(blocks)),
	}, nil
}
