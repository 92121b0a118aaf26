// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package platform

import "errors"

func unameMachine() (string, error) {
	return "", errors.New("uname is not available on this platform")
}
