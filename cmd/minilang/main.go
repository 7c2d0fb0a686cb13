package main

import "github.com/funvibe/minilang/pkg/cli"

func main() {
	cli.Run()
}
