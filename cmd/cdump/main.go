// Package main is the entry point for the cdump CLI tool.
package main

import (
	"github.com/hargabyte/cdump/internal/cmd"
)

func main() {
	cmd.Execute()
}
