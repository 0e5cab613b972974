package main

import "pypack/internal/cli"

func main() {
	cli.Execute()
}
