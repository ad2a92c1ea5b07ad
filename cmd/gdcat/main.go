// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command gdcat is the thin stdio front-end around the gd codec
// (spec.md §6's "CLI collaborator"): it reads fixed-size blocks from
// standard input, runs each through Dedup then Dup, hex-dumps the
// deduped intermediate and writes the reconstructed bytes to standard
// output, exiting non-zero on the first codec error.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/xtaci/gd/gd"
)

// VERSION is injected by buildflags.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "gdcat"
	myApp.Usage = "generalized-deduplication codec round-trip utility"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "ecc",
			Value: "rs",
			Usage: "error-correcting code family: rs, hamming",
		},
		cli.IntFlag{
			Name:  "n",
			Value: 10,
			Usage: "RS codeword length (bytes)",
		},
		cli.IntFlag{
			Name:  "k",
			Value: 4,
			Usage: "RS info length (bytes)",
		},
		cli.IntFlag{
			Name:  "degree",
			Value: 4,
			Usage: "Hamming degree m, codeword length n=2^m-1",
		},
		cli.IntFlag{
			Name:  "capacity",
			Value: 255,
			Usage: "base dictionary capacity",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: gd.DefaultWorkers,
			Usage: "ECC fan-out width, 1 disables parallelism",
		},
		cli.StringFlag{
			Name:  "align",
			Value: "",
			Usage: "path to a precoding matrix file (RS only)",
		},
		cli.StringFlag{
			Name:  "log",
			Value: "",
			Usage: "specify a log file to output, default goes to stderr",
		},
		cli.StringFlag{
			Name:  "statlog",
			Value: "",
			Usage: "collect stats to file, aware of timeformat in golang, like: ./gd-20060102.log",
		},
		cli.IntFlag{
			Name:  "statperiod",
			Value: 60,
			Usage: "stats collection period, in seconds",
		},
		cli.BoolFlag{
			Name:  "quiet",
			Usage: "suppress per-block progress lines",
		},
		cli.StringFlag{
			Name:  "c",
			Value: "",
			Usage: "config from json file, which will override the command from shell",
		},
	}
	myApp.Action = run
	if err := myApp.Run(os.Args); err != nil {
		log.Printf("%+v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	config := Config{
		ECC:        c.String("ecc"),
		N:          c.Int("n"),
		K:          c.Int("k"),
		Degree:     c.Int("degree"),
		Capacity:   c.Int("capacity"),
		Workers:    c.Int("workers"),
		Align:      c.String("align"),
		Log:        c.String("log"),
		StatLog:    c.String("statlog"),
		StatPeriod: c.Int("statperiod"),
		Quiet:      c.Bool("quiet"),
	}

	if c.String("c") != "" {
		if err := parseJSONConfig(&config, c.String("c")); err != nil {
			return errors.Wrap(err, "parseJSONConfig")
		}
	}

	if config.Log != "" {
		f, err := os.OpenFile(config.Log, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return errors.Wrap(err, "opening log file")
		}
		defer f.Close()
		log.SetOutput(f)
	}

	dedupEng, dupEng, err := buildEngines(&config)
	if err != nil {
		return errors.Wrap(err, "buildEngines")
	}

	log.Println("ecc:", config.ECC)
	log.Println("chunk bytelen:", dedupEng.ChunkByteLen())
	log.Println("dictionary capacity:", config.Capacity)
	log.Println("workers:", config.Workers)

	installSigHandler(dedupEng)
	go statsLogger(dedupEng, config.StatLog, config.StatPeriod)

	return catLoop(os.Stdin, os.Stdout, dedupEng, dupEng, config.Quiet)
}

// buildEngines constructs the independent sender/receiver engine pair
// the round-trip requires (spec.md §8): they must share ECC params and
// capacity but own separate dictionaries that evolve in lock-step.
func buildEngines(config *Config) (dedupEng, dupEng *gd.Engine, err error) {
	newOne := func() (*gd.Engine, error) {
		switch config.ECC {
		case "rs":
			return gd.NewRS(config.N, config.K, config.Capacity)
		case "hamming":
			return gd.NewHamming(config.Degree, config.Capacity)
		default:
			return nil, errors.Errorf("unsupported ecc family %q", config.ECC)
		}
	}

	dedupEng, err = newOne()
	if err != nil {
		return nil, nil, err
	}
	dupEng, err = newOne()
	if err != nil {
		return nil, nil, err
	}
	dedupEng.SetWorkers(config.Workers)
	dupEng.SetWorkers(config.Workers)

	if config.Align != "" {
		if config.ECC != "rs" {
			return nil, nil, errors.New("-align is only supported for -ecc rs")
		}
		rows, err := loadAlignment(config.Align)
		if err != nil {
			return nil, nil, err
		}
		if err := dedupEng.SetErrorAlignment(rows); err != nil {
			return nil, nil, errors.Wrap(err, "dedupEng.SetErrorAlignment")
		}
		if err := dupEng.SetErrorAlignment(rows); err != nil {
			return nil, nil, errors.Wrap(err, "dupEng.SetErrorAlignment")
		}
	}

	return dedupEng, dupEng, nil
}

// catLoop reads fixed chunkByteLen blocks from r, dedups then dups each
// one, hex-dumps the deduped frame to stderr and writes the
// reconstructed bytes to w. It exits with the first codec error.
func catLoop(r io.Reader, w io.Writer, dedupEng, dupEng *gd.Engine, quiet bool) error {
	chunkLen := dedupEng.ChunkByteLen()
	buf := make([]byte, chunkLen)
	blockNum := 0
	for {
		n, err := io.ReadFull(r, buf)
		if n == 0 {
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "reading input")
		}

		deduped, derr := dedupEng.Dedup(buf[:n])
		if derr != nil {
			return errors.Wrap(derr, "dedup")
		}

		out, uerr := dupEng.Dup(deduped)
		if uerr != nil {
			return errors.Wrap(uerr, "dup")
		}

		if !bytes.Equal(out, buf[:n]) {
			color.Red("block %d: round-trip mismatch (%d bytes in, %d bytes out)", blockNum, n, len(out))
			return errors.Errorf("block %d: dup(dedup(x)) != x", blockNum)
		}

		if !quiet {
			fmt.Fprintf(os.Stderr, "block %d: %d -> %d bytes, pad=%d\n", blockNum, n, len(deduped.Data), deduped.LastChunkPadByteLen)
			fmt.Fprintln(os.Stderr, hex.EncodeToString(deduped.Data))
		}

		if _, werr := w.Write(out); werr != nil {
			return errors.Wrap(werr, "writing reconstructed bytes")
		}

		blockNum++
		if err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil && err != io.EOF {
			return errors.Wrap(err, "reading input")
		}
	}
}
