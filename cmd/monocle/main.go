// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"iter"
	"log"
	"os"

	"github.com/ezrec/monocle/camera"
	"github.com/ezrec/monocle/config"
	"github.com/ezrec/monocle/script"
	"github.com/ezrec/monocle/translate"
)

func main() {
	var configFile string
	var selftest bool
	var verbose bool
	var flash string
	var lang string
	var defines bool
	var capture string
	var blksize int
	var readout int
	var output string

	flag.StringVar(&configFile, "c", "", ".yaml device configuration")
	flag.BoolVar(&selftest, "t", false, "Run the device self-test")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&flash, "f", "", "FPGA update region image")
	flag.StringVar(&lang, "lang", "", "Message language, overriding the locale")
	flag.BoolVar(&defines, "defines", false, "List module constants")
	flag.StringVar(&capture, "capture", "", "Capture an image of WxHxB dimensions")
	flag.IntVar(&blksize, "b", 0, "Capture block size, in pixels (default: one row)")
	flag.IntVar(&readout, "r", 0, "Capture image readout")
	flag.StringVar(&output, "o", "-", "Capture output")

	flag.Parse()

	if len(lang) != 0 {
		err := translate.SetLanguage(lang)
		if err != nil {
			log.Fatalf("%v: %v", lang, err)
		}
	}

	cfg := config.Default()
	if len(configFile) != 0 {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			log.Fatalf("%v: %v", configFile, err)
		}
	}

	m, err := script.NewMachine(cfg)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	m.SetVerbose(verbose)

	if len(flash) != 0 {
		inf, err := os.Open(flash)
		if err == nil {
			err = m.Flash.Unmarshal(inf)
			inf.Close()
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("%v: %v", flash, err)
		}
	}

	if defines {
		for name, value := range m.Constants() {
			fmt.Printf("%v = %v\n", name, value)
		}
	}

	failed := false
	if selftest {
		report, err := m.SelfTest()
		if err != nil {
			log.Fatalf("selftest: %v", err)
		}
		fmt.Printf("%d passed, %d failed\n", report.Passed, report.Failed)
		failed = report.Failed != 0
	}

	for _, file := range flag.Args() {
		_, err := m.Exec(file, nil)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}

	if len(capture) != 0 {
		err := captureImage(m.Camera, capture, blksize, readout, output)
		if err != nil {
			log.Fatalf("capture: %v", err)
		}
	}

	if len(flash) != 0 {
		ouf, err := os.Create(flash)
		if err != nil {
			log.Fatalf("%v: %v", flash, err)
		}
		err = m.Flash.Marshal(ouf)
		if err == nil {
			err = ouf.Close()
		}
		if err != nil {
			log.Fatalf("%v: %v", flash, err)
		}
	}

	if failed {
		os.Exit(1)
	}
}

func captureImage(cam *camera.Camera, geometry string, blksize int, readout int, output string) (err error) {
	var dim camera.Dimensions
	_, err = fmt.Sscanf(geometry, "%dx%dx%d", &dim.Width, &dim.Height, &dim.BytesPerPixel)
	if err != nil {
		err = fmt.Errorf("%w: %q: %v", camera.ErrInvalidDimensions, geometry, err)
		return
	}

	if blksize == 0 {
		blksize = dim.Width
	}

	c, err := cam.Capture(dim, blksize, readout)
	if err != nil {
		return
	}

	blocks, err := c.Blocks()
	if err != nil {
		return
	}

	if output == "-" {
		err = writeBlocks(os.Stdout, blocks)
		return
	}

	ouf, err := os.Create(output)
	if err != nil {
		return
	}

	err = writeBlocks(ouf, blocks)
	if err != nil {
		ouf.Close()
		return
	}

	err = ouf.Close()
	return
}

func writeBlocks(ouf io.Writer, blocks iter.Seq2[[]byte, error]) (err error) {
	for buf, err := range blocks {
		if err != nil {
			return err
		}
		_, err = ouf.Write(buf)
		if err != nil {
			return err
		}
	}

	return
}
