package main

import (
	"os"

	"github.com/dpranke-dev/pyjson5/cli/run/internal/dispatch"
)

func main() {
	os.Exit(dispatch.Run(os.Args[1:], os.Stdout, os.Stderr))
}
