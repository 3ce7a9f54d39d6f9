package main

import (
	"reqtxt/internal/cli"
)

func main() {
	cli.Execute()
}
