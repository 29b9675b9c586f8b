// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package apk drives the whole pipeline for one Android application
// archive: iterate the ZIP container, decode the binary manifest, parse
// every DEX entry, and assemble the exported artifact with its methods
// in deterministic, manifest-biased order.
package apk

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"regexp"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/dexflow/dexflow/callgraph"
	"github.com/dexflow/dexflow/dalvik"
	"github.com/dexflow/dexflow/manifest"
)

// dexMagic matches the first eight bytes of a DEX image: "dex\n03X\0"
// with X between '5' and '9'.
var dexMagic = regexp.MustCompile(`^\x64\x65\x78\x0A\x30\x33[\x35-\x39]\x00`)

const manifestEntry = "AndroidManifest.xml"

// Apk is the exported artifact for one archive.
type Apk struct {
	Manifest *manifest.Manifest `json:"man,omitempty"`
	Methods  []callgraph.Method `json:"mth"`
}

// CompactApk is the reduced export form: opcode bytes only.
type CompactApk struct {
	Manifest *manifest.Manifest        `json:"man,omitempty"`
	Methods  []callgraph.CompactMethod `json:"mth"`
}

// Compact converts the artifact to its reduced form, preserving method
// order.
func (a *Apk) Compact() *CompactApk {
	methods := make([]callgraph.CompactMethod, len(a.Methods))
	for i, m := range a.Methods {
		methods[i] = callgraph.Compact(m)
	}
	return &CompactApk{Manifest: a.Manifest, Methods: methods}
}

// Options configures a parse.
type Options struct {
	// SequenceCap bounds the total exported instruction count across
	// methods; 0 means unlimited.
	SequenceCap int
}

// Parse reads an APK archive. Entry-level failures (unreadable entries,
// a bad manifest, a bad DEX) are logged and skipped; only a broken
// archive fails the whole APK.
func Parse(r io.ReaderAt, size int64, opts Options) (*Apk, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &ArchiveError{Err: err}
	}

	var (
		man   *manifest.Manifest
		dexes []callgraph.DexFile
	)
	for _, entry := range zr.File {
		isManifest := entry.Name == manifestEntry
		// Everything except the manifest and DEX images is ignored
		// without buffering.
		if !isManifest && !maybeDex(entry) {
			continue
		}
		buf, err := readEntry(entry)
		if err != nil {
			log.WithField("entry", entry.Name).Warnf("skipping unreadable entry: %v", err)
			continue
		}
		switch {
		case isManifest:
			m, err := manifest.Parse(buf)
			if err != nil {
				log.WithField("entry", entry.Name).Warnf("manifest decode failed: %v",
					&ManifestError{Err: err})
				continue
			}
			man = m
		case dexMagic.Match(buf):
			dex, err := dalvik.ReadDex(buf)
			if err != nil {
				log.WithField("entry", entry.Name).Warnf("dex parse failed: %v", err)
				continue
			}
			dexes = append(dexes, dex)
		}
	}

	var regexes []*regexp.Regexp
	if man != nil {
		regexes = man.ComponentRegexes()
	}
	return &Apk{
		Manifest: man,
		Methods: callgraph.Extract(dexes, regexes, callgraph.Options{
			SequenceCap: opts.SequenceCap,
		}),
	}, nil
}

// maybeDex reports whether the entry's name makes it a DEX candidate
// worth buffering; the decision is confirmed against the magic bytes
// after reading.
func maybeDex(entry *zip.File) bool {
	// classes.dex, classes2.dex, ... live at the archive root, but some
	// packers hide DEX images under other names, so every entry of a
	// plausible size is sniffed.
	return entry.UncompressedSize64 >= 8
}

func readEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseFile memory-maps the archive at path and parses it.
func ParseFile(path string, opts Options) (*Apk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ArchiveError{Path: path, Err: err}
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, &ArchiveError{Path: path, Err: errors.Wrap(err, "mmap")}
	}
	defer m.Unmap()

	apk, err := Parse(bytes.NewReader(m), int64(len(m)), opts)
	if err != nil {
		if aerr, ok := err.(*ArchiveError); ok {
			aerr.Path = path
		}
		return nil, err
	}
	return apk, nil
}
