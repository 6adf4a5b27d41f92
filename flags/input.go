package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// InputFlags covers where the raw bytes come from.

func InputFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "in",
			Usage: "Input file to decode ('-' reads stdin)",
			Value: "-",
		},
		cli.StringFlag{
			Name:  "hex",
			Usage: "Inline 0x-prefixed hex input, takes precedence over --in",
		},
		cli.BoolFlag{
			Name:  "gzip",
			Usage: "Force gzip decompression of the input (otherwise sniffed)",
		},
	}
}
