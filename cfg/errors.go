// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

import (
	"fmt"
)

// MissingSwitchOriginError reports a switch payload with no recorded
// origin switch instruction, or an origin whose targets were never
// resolved. Either way the DEX method body is malformed.
type MissingSwitchOriginError uint32

func (e MissingSwitchOriginError) Error() string {
	return fmt.Sprintf("cfg: missing switch origin for address %d", uint32(e))
}
