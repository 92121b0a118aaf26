// SPDX-License-Identifier: MPL-2.0

// Package platform reports facts about the host that recipes branch on.
//
// The machine hardware name (what `uname -m` prints) decides which
// optimizer image is used, and the sandbox type decides whether external
// tools must be spawned on the host through flatpak-spawn or snap.
package platform
