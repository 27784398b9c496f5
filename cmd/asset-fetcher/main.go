package main

import (
	"os"

	"github.com/ytget/asset-fetcher/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
