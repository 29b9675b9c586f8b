// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command apk-dump converts Android application archives into the
// dexflow JSON artifact: the extracted manifest plus every method's
// instruction sequence in deterministic, manifest-biased order.
//
//	$> apk-dump -i app.apk -i other.apk -o out.json
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	log "github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"github.com/dexflow/dexflow/apk"
	"github.com/dexflow/dexflow/axml"
	"github.com/dexflow/dexflow/cfg"
	"github.com/dexflow/dexflow/dalvik"
	"github.com/dexflow/dexflow/disasm"
	"github.com/dexflow/dexflow/manifest"
)

func main() {
	app := &cli.App{
		Name:  "apk-dump",
		Usage: "convert APK archives into a structured program representation",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "input APK `path` (repeatable)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output `path` for the JSON artifact (default: stdout)",
			},
			&cli.IntFlag{
				Name:    "threads",
				Aliases: []string{"t"},
				Usage:   "number of archives parsed in parallel",
				Value:   runtime.NumCPU(),
			},
			&cli.IntFlag{
				Name:    "sequence-cap",
				Aliases: []string{"c"},
				Usage:   "max total instruction count per archive, 0 for unlimited",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "emit the compact form (opcode bytes only)",
			},
			&cli.BoolFlag{
				Name:  "cfg",
				Usage: "print per-method basic-block and loop counts to stderr",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		log.SetLevel(log.DebugLevel)
		dalvik.SetDebugMode(true)
		disasm.SetDebugMode(true)
		cfg.SetDebugMode(true)
		axml.SetDebugMode(true)
		manifest.SetDebugMode(true)
	}

	paths := c.StringSlice("input")
	opts := apk.Options{SequenceCap: c.Int("sequence-cap")}

	results, failures := apk.ParseAll(paths, c.Int("threads"), opts)
	if len(results) == 0 && len(failures) > 0 {
		return cli.Exit("all archives failed to parse", 1)
	}

	if c.Bool("cfg") {
		for path := range results {
			summaries, err := apk.SummarizeCFG(path)
			if err != nil {
				log.WithField("apk", path).Errorf("cfg summary failed: %v", err)
				continue
			}
			for _, s := range summaries {
				fmt.Fprintf(os.Stderr, "%s: %s blocks=%d loops=%d\n", path, s.Sig, s.Blocks, s.Loops)
			}
		}
	}

	var artifact interface{}
	if c.Bool("compact") {
		compact := make(map[string]*apk.CompactApk, len(results))
		for path, a := range results {
			compact[path] = a.Compact()
		}
		artifact = compact
	} else {
		artifact = results
	}

	out, err := json.Marshal(artifact)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if path := c.String("output"); path != "" {
		if err := os.WriteFile(path, out, 0644); err != nil {
			return cli.Exit(err, 1)
		}
	} else {
		fmt.Println(string(out))
	}
	return nil
}
