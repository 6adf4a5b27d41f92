package flags

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

func NewApp() *cli.App {

	app := cli.NewApp()
	app.Name = "bitdump"
	app.Usage = "decode bit-packed binary data from files, stdin or inline hex"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	return app

}
