package main

import (
	"github.com/nlebedev/chardraft/internal/cli"
)

func main() {
	cli.Execute()
}
