// Command ttc clears one-item-per-agent markets with the Top Trading Cycle mechanism.
//
//	ttc clear market.yaml
//	ttc cycle --all market.yaml
//	ttc clear --ledger runs.db market.yaml && ttc history --ledger runs.db
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/tradecycle/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
