package main

import "github.com/EDKOMANU/mpictl/pkg/cli"

func main() {
	cli.Execute()
}
