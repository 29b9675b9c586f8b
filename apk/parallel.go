// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apk

import (
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ParseAll parses the given archives with up to threads parses in
// flight (NumCPU when threads is not positive). Each parse owns its
// readers and result; the only shared state is the accumulator maps.
//
// Per-APK failures do not stop the batch: they are logged and returned
// in the second map, keyed by path like the successes.
func ParseAll(paths []string, threads int, opts Options) (map[string]*Apk, map[string]error) {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	var (
		mu       sync.Mutex
		results  = make(map[string]*Apk, len(paths))
		failures = make(map[string]error)
	)

	var g errgroup.Group
	g.SetLimit(threads)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			apk, err := ParseFile(path, opts)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.WithField("apk", path).Errorf("parse failed: %v", err)
				failures[path] = err
				return nil
			}
			results[path] = apk
			return nil
		})
	}
	g.Wait()
	return results, failures
}
