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

package common

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blinklabs-io/gocardano/provider"
)

type GlobalFlags struct {
	Flagset      *flag.FlagSet
	Hex          string
	File         string
	Network      string
	NetworkMagic int
	Debug        bool
}

func NewGlobalFlags() *GlobalFlags {
	f := &GlobalFlags{
		Flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.Flagset.StringVar(
		&f.Hex,
		"hex",
		"",
		"hex-encoded CBOR input",
	)
	f.Flagset.StringVar(
		&f.File,
		"file",
		"",
		"file containing hex-encoded CBOR input (- for stdin)",
	)
	f.Flagset.StringVar(
		&f.Network,
		"network",
		"preview",
		"specifies network used for display",
	)
	f.Flagset.IntVar(
		&f.NetworkMagic,
		"network-magic",
		0,
		"specifies network magic value. this overrides the -network option",
	)
	f.Flagset.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	return f
}

func (f *GlobalFlags) Parse() {
	if err := f.Flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	if f.NetworkMagic == 0 {
		network := provider.NetworkByName(f.Network)
		if network == provider.NetworkInvalid {
			fmt.Printf("Invalid network specified: %s\n", f.Network)
			os.Exit(1)
		}
		f.NetworkMagic = int(network.NetworkMagic)
	}
}

// InputHex returns the hex input from -hex or -file with whitespace removed
func (f *GlobalFlags) InputHex() (string, error) {
	if f.Hex != "" {
		return strings.Join(strings.Fields(f.Hex), ""), nil
	}
	var data []byte
	var err error
	switch f.File {
	case "":
		return "", fmt.Errorf("you must specify one of -hex or -file")
	case "-":
		data, err = io.ReadAll(os.Stdin)
	default:
		data, err = os.ReadFile(f.File)
	}
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(string(data)), ""), nil
}
