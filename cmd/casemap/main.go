// main is the entry point for the casemap CLI.
package main

import (
	"os"

	"github.com/huangsam/casemap/cmd"
	"github.com/huangsam/casemap/internal/contract"
)

func main() {
	err := cmd.Execute()
	cmd.CloseStore()
	if err != nil {
		contract.LogWarn("command failed", err)
		os.Exit(1)
	}
}
