package main

import (
	"fmt"
	"os"

	"github.com/loglens/loglens"
)

func main() {
	var st int
	defer func() { os.Exit(st) }()

	cli := &loglens.CLI{}
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		st = 1
	}
}
