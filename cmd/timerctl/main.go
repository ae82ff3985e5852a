package main

import (
	"fmt"
	"os"

	"timerctl/internal/cli"
	logx "timerctl/pkg/logx"
)

func main() {
	root := cli.NewRootCmd()
	root.SetOut(logx.Stdout())
	root.SetErr(logx.Stderr())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(logx.Stderr(), err)
		os.Exit(1)
	}
}
