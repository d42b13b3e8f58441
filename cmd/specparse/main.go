package main

import (
	"os"

	"github.com/dshills/specparse/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
