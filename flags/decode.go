package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// DecodeFlags holds knobs specific to a single decode pass (offset, preset, output shape).

func DecodeFlags() []cli.Flag {
	return []cli.Flag{
		cli.Uint64Flag{
			Name:  "offset",
			Usage: "Number of leading bits to skip before the first field",
		},
		cli.BoolFlag{
			Name:  "exact",
			Usage: "Fail when input remains after the last field",
		},
		cli.BoolFlag{
			Name:  "json",
			Usage: "Emit decoded fields as a JSON array",
		},
		cli.StringFlag{
			Name:  "preset",
			Usage: "Name of the config preset to decode with",
		},
	}
}
