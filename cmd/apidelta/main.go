package main

import (
	"os"

	"github.com/dshills/apidelta/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
