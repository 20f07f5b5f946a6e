package main

import (
	"os"

	"todopad/cmd/todopad/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr, nil))
}
