// Copyright 2014 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command raptorqtool encodes and decodes randomly generated source symbols
// through the rfc6330 reference codec, driving internal/solver end to end from the command
// line rather than from a test.
package main

import (
	"log"
	"math/rand"
	"os"

	"github.com/urfave/cli"

	"github.com/raptorq-go/raptorq/internal/opcache"
	"github.com/raptorq-go/raptorq/internal/symbol"
	"github.com/raptorq-go/raptorq/rfc6330"
)

// VERSION is injected by buildflags.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	app := cli.NewApp()
	app.Name = "raptorqtool"
	app.Usage = "round-trip random source symbols through the RFC 6330 reference codec"
	app.Version = VERSION
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "symbolsize",
			Value: 1280,
			Usage: "symbol size in bytes",
		},
		cli.IntFlag{
			Name:  "lossrate",
			Value: 0,
			Usage: "simulated decode loss rate in percent (roundtrip command only)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "roundtrip",
			Usage:     "encode random source symbols, drop some, then decode",
			ArgsUsage: "<num-source-symbols>",
			Action:    roundtripAction,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func roundtripAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("roundtrip: expected exactly one argument, the source symbol count", 1)
	}
	k, err := parsePositiveInt(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	symbolSize := c.GlobalInt("symbolsize")
	lossRate := c.GlobalInt("lossrate")

	source := make([]symbol.Symbol, k)
	for i := range source {
		s := symbol.NewSymbol(symbolSize)
		if _, err := rand.Read(s); err != nil {
			return err
		}
		source[i] = s
	}

	cache := opcache.New()
	enc, err := rfc6330.NewEncoder(source, cache)
	if err != nil {
		return err
	}
	constants := enc.Constants()
	log.Printf("constants: K=%d L=%d S=%d H=%d", constants.K, constants.L, constants.S, constants.H)

	dec := rfc6330.NewDecoder(k, symbolSize, cache)
	minSymbols := constants.L - constants.S - constants.H
	dropped := 0
	for esi := uint32(0); dec.NumReceived() < minSymbols; esi++ {
		if lossRate > 0 && rand.Intn(100) < lossRate {
			dropped++
			continue
		}
		if err := dec.AddPacket(enc.Packet(0, esi)); err != nil {
			return err
		}
	}
	log.Printf("received %d packets (%d dropped by simulated loss)", dec.NumReceived(), dropped)

	got, err := dec.Decode()
	if err != nil {
		return err
	}
	for i, want := range source {
		if string(want) != string(got[i]) {
			return cli.NewExitError("decode mismatch: recovered source does not match original", 1)
		}
	}
	log.Printf("decoded %d source symbols successfully", k)
	return nil
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, cli.NewExitError("not a positive integer: "+s, 1)
		}
		n = n*10 + int(r-'0')
	}
	if n <= 0 {
		return 0, cli.NewExitError("not a positive integer: "+s, 1)
	}
	return n, nil
}
