package main

import "github.com/mcoot/fnstats/internal/cli"

func main() {
	cli.Execute()
}
