package main

import (
	"os"
	"runtime/debug"

	"powchain/cmd"
	"powchain/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("POWCHAIN CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
