package main

import "vmodl-helper/internal/cli"

func main() {
	cli.Execute()
}
