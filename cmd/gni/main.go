package main

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/bodgit/gni"
	"github.com/bodgit/gni/batch"
	"github.com/bodgit/gni/config"
	gniimage "github.com/bodgit/gni/image"
	"github.com/bodgit/gni/raster"
	"github.com/bodgit/gni/store"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context, cfg config.Config) zerolog.Logger {
	if !c.Bool("verbose") {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(cfg.LogLevel).With().Timestamp().Logger()
}

// loadConfig reads the config file and applies any flags that were set.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	if c.IsSet("db") {
		cfg.DB = c.String("db")
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("keep-going") {
		cfg.KeepGoing = c.Bool("keep-going")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	return cfg, cfg.Validate()
}

// openInput returns the named file or stdin when there are no arguments or
// the argument is "-".
func openInput(c *cli.Context) (io.ReadCloser, error) {
	if c.NArg() < 1 || c.Args().First() == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(c.Args().First())
}

func writePNG(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := png.Encode(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// replay loads every stored upload into r so a stream can select images it
// does not upload itself.
func replay(db *store.DB, r *raster.Renderer, logger zerolog.Logger) error {
	uploads, err := db.Uploads()
	if err != nil {
		return err
	}
	for _, u := range uploads {
		r.Image(u.Slot, u.Image)
	}
	logger.Info().Int("uploads", len(uploads)).Msg("uploads replayed")
	return nil
}

func render(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	logger := newLogger(c, cfg)

	in, err := openInput(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer in.Close()

	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return cli.Exit(err, 1)
	}

	r := raster.New(cfg.Raster(), logger)

	var (
		db  *store.DB
		out gni.Output = r
		rec *store.Recorder
	)
	if cfg.DB != "" {
		db, err = store.Open(cfg.DB)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer db.Close()
		rec = db.Recorder(r, logger)
		out = rec

		if c.Bool("replay") {
			if err := replay(db, r, logger); err != nil {
				return cli.Exit(err, 1)
			}
		}
	} else if c.Bool("replay") {
		return cli.Exit("no database given", 1)
	}

	r.OnFrame(func(n int, m *image.RGBA) error {
		file := filepath.Join(cfg.Output, fmt.Sprintf(cfg.Pattern, n))
		if err := writePNG(file, m); err != nil {
			return err
		}
		logger.Info().Str("file", file).Msg("frame written")
		if db != nil {
			id, err := db.AddFrame(m)
			if err != nil {
				return err
			}
			logger.Debug().Int64("id", id).Msg("frame stored")
		}
		return nil
	})

	d := gni.NewDecoder(in)
	var skipped int
	for d.More() {
		if _, err := d.Run(out); err != nil {
			if !cfg.KeepGoing {
				return cli.Exit(err, 1)
			}
			logger.Warn().Err(err).Msg("skipping malformed line")
			skipped++
			if err := d.Skip(); err != nil {
				return cli.Exit(err, 1)
			}
		}
		if err := r.Err(); err != nil {
			return cli.Exit(err, 1)
		}
		if rec != nil && rec.Err() != nil {
			return cli.Exit(rec.Err(), 1)
		}
	}

	logger.Info().Int("frames", r.Frames()).Int("skipped", skipped).Msg("done")
	return nil
}

func check(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	in, err := openInput(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer in.Close()

	var commands, bad int
	d := gni.NewDecoder(in)
	for d.More() {
		n, err := d.Run(gni.Discard)
		commands += n
		if err == nil {
			continue
		}
		bad++
		fmt.Fprintln(c.App.ErrWriter, err)
		if !cfg.KeepGoing {
			break
		}
		if err := d.Skip(); err != nil {
			return cli.Exit(err, 1)
		}
	}

	fmt.Fprintf(c.App.Writer, "%d commands, %d errors\n", commands, bad)
	if bad > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func encode(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	slot, err := strconv.ParseUint(c.String("slot"), 16, 8)
	if err != nil {
		return cli.Exit(fmt.Errorf("invalid slot: %w", err), 1)
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := gniimage.Encode(c.App.Writer, uint8(slot), m); err != nil {
		return cli.Exit(err, 1)
	}
	if c.Bool("select") {
		if err := gni.NewEncoder(c.App.Writer).Encode(gni.SelectImage{Index: uint8(slot)}); err != nil {
			return cli.Exit(err, 1)
		}
	}
	return nil
}

func runBatch(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	b := batch.New(cfg.Raster(), cfg.Workers, cfg.KeepGoing, newLogger(c, cfg))
	if err := b.Render(ctx, c.Args().First()); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func export(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if cfg.DB == "" {
		return cli.Exit("no database given", 1)
	}
	logger := newLogger(c, cfg)

	db, err := store.Open(cfg.DB)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return cli.Exit(err, 1)
	}

	frames, err := db.Frames()
	if err != nil {
		return cli.Exit(err, 1)
	}
	for i, f := range frames {
		b, err := db.FramePNG(f.ID)
		if err != nil {
			return cli.Exit(err, 1)
		}
		file := filepath.Join(cfg.Output, fmt.Sprintf(cfg.Pattern, i))
		if err := os.WriteFile(file, b, 0o644); err != nil {
			return cli.Exit(err, 1)
		}
		logger.Info().Str("file", file).Int64("id", f.ID).Msg("frame exported")
	}
	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "gni"
	app.Usage = "gni drawing protocol utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"GNI_CONFIG"},
			Usage:   "path to TOML config file",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"GNI_DB"},
			Usage:   "path to frame database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	renderFlags := []cli.Flag{
		&cli.IntFlag{
			Name:  "width",
			Usage: "framebuffer width",
		},
		&cli.IntFlag{
			Name:  "height",
			Usage: "framebuffer height",
		},
		&cli.BoolFlag{
			Name:  "keep-going",
			Usage: "skip malformed lines",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "render",
			Usage:       "Render a command stream to PNG frames",
			Description: "Reads FILE, or standard input, and writes a PNG for every finished frame.",
			ArgsUsage:   "[FILE]",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:  "output",
					Usage: "directory for frames",
				},
				&cli.BoolFlag{
					Name:  "replay",
					Usage: "load images stored in the database before rendering",
				},
			}, renderFlags...),
			Action: render,
		},
		{
			Name:      "check",
			Usage:     "Validate a command stream",
			ArgsUsage: "[FILE]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "keep-going",
					Usage: "report every malformed line",
				},
			},
			Action: check,
		},
		{
			Name:      "encode",
			Usage:     "Convert a picture to palette and upload commands",
			ArgsUsage: "IMAGE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "slot",
					Value: "01",
					Usage: "image slot as two hex digits",
				},
				&cli.BoolFlag{
					Name:  "select",
					Usage: "also select the slot",
				},
			},
			Action: encode,
		},
		{
			Name:      "batch",
			Usage:     "Render every stream under a directory",
			ArgsUsage: "DIRECTORY",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Usage: "number of files rendered at once",
				},
			}, renderFlags...),
			Action: runBatch,
		},
		{
			Name:  "export",
			Usage: "Write stored frames to PNG files",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "output",
					Usage: "directory for frames",
				},
			},
			Action: export,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
