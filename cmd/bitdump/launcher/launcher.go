package launcher

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/klauspost/compress/gzip"
	log "github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/veldt-labs/bitcodec/bitio"
	"github.com/veldt-labs/bitcodec/bytebuf"
	"github.com/veldt-labs/bitcodec/codec"
	"github.com/veldt-labs/bitcodec/flags"
)

var app = flags.NewApp()

func init() {
	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Flags = append(app.Flags, flags.InputFlags()...)
	app.Flags = append(app.Flags, flags.DecodeFlags()...)
	app.ArgsUsage = "[name=kind[/attr...] ...]"
	app.Action = run
}

// Launch parses the command line and performs one decode pass.
func Launch(args []string) error {
	return app.Run(args)
}

func run(ctx *cli.Context) error {
	cfg, err := MakeConfig(ctx)
	if err != nil {
		return err
	}
	setupLogging(cfg.Logging)

	src, err := openInput(cfg.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	payload, err := unwrapGzip(src, cfg.Input.Gzip)
	if err != nil {
		return err
	}

	values, err := decode(payload, cfg.Decode)
	if err != nil {
		return err
	}
	return writeOutput(ctx.App.Writer, values, cfg.Decode.JSON)
}

func setupLogging(cfg LoggingConfig) {
	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{ForceColors: cfg.Color})
	}
	v := cfg.Verbosity
	if v < 0 {
		v = 0
	}
	if v > 5 {
		v = 5
	}
	// verbosity 0..5 sits on top of the logrus levels Fatal..Trace
	log.SetLevel(log.Level(v + 1))
	log.SetOutput(os.Stderr)
}

func openInput(cfg InputConfig) (io.ReadCloser, error) {
	if cfg.Hex != "" {
		raw, err := hexutil.Decode(cfg.Hex)
		if err != nil {
			return nil, fmt.Errorf("parse --hex: %w", err)
		}
		return io.NopCloser(bytebuf.NewReader(raw)), nil
	}
	if cfg.Path == "" || cfg.Path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Path, err)
	}
	return f, nil
}

// unwrapGzip transparently decompresses gzip input. Unless forced, the layer
// is sniffed from the two magic bytes so plain input passes through untouched.
func unwrapGzip(src io.Reader, force bool) (io.Reader, error) {
	br := bufio.NewReader(src)
	if !force {
		magic, err := br.Peek(2)
		if err != nil || magic[0] != 0x1f || magic[1] != 0x8b {
			return br, nil
		}
	}
	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	return zr, nil
}

func decode(src io.Reader, cfg DecodeConfig) ([]FieldValue, error) {
	r := bitio.NewReader(src)
	if cfg.Offset > 0 {
		if err := r.SkipBits(cfg.Offset); err != nil {
			return nil, fmt.Errorf("skip %d offset bits: %w", cfg.Offset, err)
		}
	}
	d := codec.NewDecoder(r)

	values := make([]FieldValue, 0, len(cfg.Fields))
	for _, f := range cfg.Fields {
		v, err := f.Read(d)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		log.WithFields(log.Fields{
			"field": f.Name,
			"value": v.Value,
			"bits":  v.Bits,
		}).Debug("decoded field")
		values = append(values, v)
	}
	if cfg.Exact && !r.AtEnd() {
		return nil, errors.New("input continues past the last field")
	}
	log.WithFields(log.Fields{"fields": len(values), "bits": r.BitsRead()}).Info("decode finished")
	return values, nil
}

func writeOutput(w io.Writer, values []FieldValue, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	}
	for _, v := range values {
		if v.Value == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s = %v (%d bits)\n", v.Name, v.Value, v.Bits); err != nil {
			return err
		}
	}
	return nil
}
