package main

import (
	"os"

	"github.com/codevuk/mxroute-tools/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
