package main

import (
	"os"

	"github.com/dshills/nestargs/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
