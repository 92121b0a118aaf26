// SPDX-License-Identifier: MPL-2.0

// Package cargo reads the parts of Cargo.toml manifests that grugjust reports
// about the crate the install recipe builds.
package cargo
