// Command gbcore is a headless runner: it loads a ROM, steps the core for
// a fixed number of frames (or forever, for --frames 0), and writes back
// any battery-backed SRAM on exit. There is no display or audio device
// output here — those are explicitly out of the core's scope, and this
// runner only exercises the StepTick/StepFrame surface a real host would
// drive.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/coldiron/gbcore/internal/gameboy"
	"github.com/coldiron/gbcore/pkg/archive"
	"github.com/coldiron/gbcore/pkg/log"
)

func main() {
	app := cli.NewApp()
	app.Name = "gbcore"
	app.Usage = "gbcore [options] <ROM file>"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "save",
			Usage: "path to an SRAM save file to load at start and write back at exit",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "number of frames to run before exiting (0 = run forever)",
			Value: 0,
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log at debug level",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "gbcore:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowAppHelp(c)
		return fmt.Errorf("no ROM path provided")
	}
	romPath := c.Args().Get(0)

	logger := log.Standard()
	if !c.Bool("verbose") {
		logger = log.Null()
	}

	rom, err := archive.LoadROM(romPath)
	if err != nil {
		return err
	}

	var sram []byte
	savePath := c.String("save")
	if savePath != "" {
		if data, err := os.ReadFile(savePath); err == nil {
			sram = data
		}
	}

	core, cerr := gameboy.New(rom, sram, gameboy.WithLogger(logger))
	if cerr != nil {
		return cerr
	}

	frames := c.Int("frames")
	count := 0
	for frames == 0 || count < frames {
		core.StepFrame()
		count++
	}

	if savePath != "" {
		data := core.SaveData(uint64(time.Now().Unix()))
		if data != nil {
			if err := os.WriteFile(savePath, data, 0o644); err != nil {
				return fmt.Errorf("write save file: %w", err)
			}
		}
	}

	logger.Infof("ran %d frames from %s", count, romPath)
	return nil
}
