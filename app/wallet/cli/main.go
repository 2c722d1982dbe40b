// This program is a terminal wallet for the Zaplanje coin service.
package main

import "github.com/zaplanje/coin/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
