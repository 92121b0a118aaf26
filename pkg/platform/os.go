// SPDX-License-Identifier: MPL-2.0

package platform

import "time"

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// InterruptGrace is how long an interrupted child may keep running before
// it is killed.
const InterruptGrace = 10 * time.Second
