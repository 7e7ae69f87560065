package main

import (
	"os"

	"github.com/grovetools/file-preview/cli"
	"github.com/grovetools/file-preview/cmd"
)

func main() {
	root := cmd.NewRootCmd()
	cli.SetStyledHelp(root)

	if err := root.Execute(); err != nil {
		verbose, _ := root.PersistentFlags().GetBool("verbose")
		_ = cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
