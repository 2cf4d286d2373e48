package main

import "github.com/mpetrun5/subburn/internal/cli"

func main() {
	cli.Main()
}
