// Copyright 2026 Blink Labs Software
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

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/blinklabs-io/gocardano/cbor"
	"github.com/blinklabs-io/gocardano/cmd/common"
	"github.com/blinklabs-io/gocardano/provider"
)

func main() {
	f := common.NewGlobalFlags()
	f.Parse()

	level := slog.LevelInfo
	if f.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(
		slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
		).With("component", "cbor-tool"),
	)

	if len(f.Flagset.Args()) == 0 {
		fmt.Printf("You must specify a subcommand (diag, structure, datum, redeemers, value)\n")
		os.Exit(1)
	}
	input, err := f.InputHex()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	// #nosec G115 -- network magic values fit in uint32
	network := provider.NetworkByNetworkMagic(uint32(f.NetworkMagic))
	slog.Debug(
		"decoding input",
		"subcommand", f.Flagset.Arg(0),
		"network", network.String(),
		"hex_length", len(input),
	)
	var out string
	switch f.Flagset.Arg(0) {
	case "diag":
		out, err = cmdDiag(input)
	case "structure":
		out, err = cmdStructure(input)
	case "datum":
		out, err = cmdDatum(input)
	case "redeemers":
		out, err = cmdRedeemers(input)
	case "value":
		out, err = cmdValue(input)
	default:
		fmt.Printf("Unknown subcommand: %s\n", f.Flagset.Arg(0))
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}

func cmdDiag(input string) (string, error) {
	r, err := cbor.NewReaderFromHex(input)
	if err != nil {
		return "", err
	}
	defer r.Unref()
	item, err := r.ReadEncodedValue()
	if err != nil {
		return "", err
	}
	diag, err := cbor.Diagnose(item)
	if err != nil {
		return "", err
	}
	return diag + "\n", nil
}
