// SPDX-License-Identifier: MPL-2.0

package main

import cmd "grugjust/cmd/grugjust"

func main() {
	cmd.Execute()
}
