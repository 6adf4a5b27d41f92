package main

import (
	"fmt"
	"os"

	"github.com/veldt-labs/bitcodec/cmd/bitdump/launcher"
)

func main() {
	if err := launcher.Launch(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
