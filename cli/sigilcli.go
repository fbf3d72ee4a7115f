// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/project-illium/sigil/crypto/sigil"
	"github.com/project-illium/sigil/repo"
)

const defaultConfigFilename = "sigilcli.conf"

// stdout is where command output is written.
var stdout io.Writer = os.Stdout

type options struct {
	ShowVersion   bool   `short:"v" long:"version" description:"Display version information and exit"`
	ConfigFile    string `short:"C" long:"configfile" description:"Path to configuration file"`
	Rounds        int    `long:"rounds" description:"Use a reduced-round variant. Zero selects the full 24 rounds."`
	NoScheduleMul bool   `long:"noschedulemul" description:"Use the variant whose message schedule omits the multiplications"`
	JSON          bool   `short:"j" long:"json" description:"Print the result as JSON"`
	DataDir       string `short:"d" long:"datadir" description:"The sigilaudit data directory holding the scorecard archive"`
}

func (o *options) params() (sigil.Params, error) {
	p := sigil.Params{
		Rounds:        o.Rounds,
		NoScheduleMul: o.NoScheduleMul,
	}
	if err := p.Validate(); err != nil {
		return sigil.Params{}, err
	}
	return p, nil
}

func newParser(opts *options) *flags.Parser {
	parser := flags.NewNamedParser("sigilcli", flags.HelpFlag)
	parser.AddGroup("Digest options", "Options selecting the Sigil-256 variant and output format", opts)

	parser.AddCommand("digest", "Returns the Sigil-256 digest of each argument", "Returns the Sigil-256 digest of each argument, or of each file given with --file. Use --file=- to read stdin.", &Digest{opts: opts})
	parser.AddCommand("verify", "Checks data against an expected digest", "Checks data against an expected digest. An error is returned on mismatch.", &Verify{opts: opts})
	parser.AddCommand("merkle", "Returns the Merkle root of the arguments", "Returns the Merkle root built from the digests of the arguments. Odd levels duplicate their last node.", &Merkle{opts: opts})
	parser.AddCommand("commit", "Creates a commitment to a value", "Creates the commitment digest(value || nonce). A random nonce is generated when none is given.", &Commit{opts: opts})
	parser.AddCommand("bench", "Measures digest throughput", "Measures digest throughput over 64 B, 1 KiB, 64 KiB and 1 MiB payloads.", &Bench{opts: opts})
	parser.AddCommand("audit", "Runs the security validation harness", "Runs all nine analyzers of the security validation harness against the selected variant and prints the scorecard.", &Audit{opts: opts})
	parser.AddCommand("history", "Lists archived audit scorecards", "Lists the scorecards sigilaudit recorded in the archive under its data directory.", &History{opts: opts})
	return parser
}

func main() {

	var configFile string
	for i, arg := range os.Args {
		if strings.HasPrefix(arg, "--configfile=") {
			configFile = strings.Split(arg, "--configfile=")[1]
		} else if arg == "-C" && len(os.Args) > i+1 {
			configFile = os.Args[i+1]
		}
	}
	if configFile == "" {
		configFile = filepath.Join(repo.DefaultHomeDir, defaultConfigFilename)
	}

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	err := flags.NewIniParser(parser).ParseFile(repo.CleanAndExpandPath(configFile))
	if err != nil {
		if _, ok := err.(*os.PathError); !ok {
			fmt.Fprintf(os.Stderr, "Error parsing config "+
				"file: %v\n", err)
			usageMessage := "Use sigilcli -h to show usage"
			fmt.Fprintln(os.Stderr, usageMessage)
			log.Fatal(err)
		}
	}
	if len(os.Args) == 2 && os.Args[1] == "-v" {
		fmt.Println(repo.VersionString())
		return
	}

	parser = newParser(&opts)
	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		log.Fatal(err)
	}
}
