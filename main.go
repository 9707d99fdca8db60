// SPDX-License-Identifier: MPL-2.0

package main

import cmd "avagen-cli/cmd/avagensetup"

func main() {
	cmd.Execute()
}
