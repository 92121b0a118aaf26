// SPDX-License-Identifier: MPL-2.0

// Package optimizer decides how the contract optimizer container is run on
// this host.
//
// Two images exist: a native arm64 build and a default build that is forced
// onto linux/amd64 (emulated on other hosts). The choice is made from the
// host machine name the same way `[[ $(uname -m) =~ "arm64" ]]` would: any
// machine name containing "arm64" selects the arm64 image, everything else
// (including "aarch64" and an empty name) selects the default image.
//
// The two images lay out their build directories differently, so the
// per-project cache volume is mounted at /target for arm64 and at
// /code/target for the default image. The shared cargo registry cache is
// mounted at the same place for both.
package optimizer
