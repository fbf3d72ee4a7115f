// Copyright (c) 2024 Project Illium
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package repo

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/project-illium/sigil/crypto/sigil"
)

//go:embed sample-sigil.conf
var configFS embed.FS

const (
	DefaultLogFilename    = "sigilaudit.log"
	defaultConfigFilename = "sigil.conf"

	DefaultSeed        = 1
	DefaultTestTimeout = 5 * time.Minute
)

var (
	DefaultHomeDir    = AppDataDir("sigil", false)
	defaultConfigFile = filepath.Join(DefaultHomeDir, defaultConfigFilename)
)

// Config defines the configuration options for the audit tool.
//
// See LoadConfig for details on the configuration load process.
type Config struct {
	ShowVersion bool   `short:"v" long:"version" description:"Display version information and exit"`
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir     string `short:"d" long:"datadir" description:"Directory to store data"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	LogLevel    string `short:"l" long:"loglevel" description:"Set the logging level [trace, debug, info, warning, error, fatal]." default:"info"`

	Audit AuditOptions `group:"Audit Options"`
}

type AuditOptions struct {
	Seed           uint64        `long:"seed" description:"Seed for every sampling stream. The same seed always produces the same scorecard." default:"1"`
	Workers        int           `long:"workers" description:"Maximum number of tests to run in parallel. Zero uses one per CPU."`
	TestTimeout    time.Duration `long:"testtimeout" description:"Time limit for each test. A test that exceeds it is reported as timed out." default:"5m"`
	Rounds         int           `long:"rounds" description:"Audit a reduced-round variant. Zero audits the full 24 rounds."`
	NoScheduleMul  bool          `long:"noschedulemul" description:"Audit the variant whose message schedule omits the multiplications"`
	Reference      bool          `long:"reference" description:"Audit BLAKE2s-256 instead of Sigil-256 to calibrate the harness"`
	NoBenchmark    bool          `long:"nobenchmark" description:"Skip the throughput benchmark"`
	BenchmarkBytes int           `long:"benchbytes" description:"Bytes hashed per payload size by the benchmark" default:"8388608"`
	JSONOut        string        `long:"jsonout" description:"Write the scorecard as JSON to this path"`
	NoArchive      bool          `long:"noarchive" description:"Do not record the scorecard in the archive under the data directory"`
	Quiet          bool          `short:"q" long:"quiet" description:"Do not print the audit report"`
}

// Params returns the Sigil-256 configuration selected by the options.
func (a AuditOptions) Params() sigil.Params {
	return sigil.Params{
		Rounds:        a.Rounds,
		NoScheduleMul: a.NoScheduleMul,
	}
}

// LoadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in proper functionality without any config settings
// while still allowing the user to override settings with config files and
// command line options.  Command line options always take precedence.
func LoadConfig() (*Config, error) {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return nil, err
	}

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", VersionString())
		os.Exit(0)
	}
	return cfg, nil
}

func loadConfig(args []string) (*Config, error) {
	// Default config.
	cfg := Config{
		DataDir:    DefaultHomeDir,
		ConfigFile: defaultConfigFile,
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.  Any errors aside from the
	// help message error can be ignored here since they will be caught by
	// the final parse below.
	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.HelpFlag)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			return nil, err
		}
	}
	if preCfg.ShowVersion {
		cfg.ShowVersion = true
		return &cfg, nil
	}
	configFile := preCfg.ConfigFile
	if preCfg.ConfigFile == defaultConfigFile && preCfg.DataDir != DefaultHomeDir {
		configFile = filepath.Join(preCfg.DataDir, defaultConfigFilename)
	}
	configFile = CleanAndExpandPath(configFile)

	// Load additional config from file.
	var configFileError error
	parser := flags.NewParser(&cfg, flags.Default)

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		err := createDefaultConfigFile(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating a "+
				"default config file: %v\n", err)
		}
	}

	err = flags.NewIniParser(parser).ParseFile(configFile)
	if err != nil {
		if _, ok := err.(*os.PathError); !ok {
			fmt.Fprintf(os.Stderr, "Error parsing config "+
				"file: %v\n", err)
			return nil, err
		}
		configFileError = err
	}

	// Reparse command-line arguments to override config file settings
	_, err = parser.ParseArgs(args)
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "Error parsing command line arguments: %v\n", err)
		return nil, err
	}
	cfg.ConfigFile = configFile

	if err := cfg.Audit.Params().Validate(); err != nil {
		return nil, fmt.Errorf("invalid --rounds: %w", err)
	}
	if cfg.Audit.Workers < 0 {
		return nil, errors.New("--workers cannot be negative")
	}
	if cfg.Audit.TestTimeout <= 0 {
		return nil, errors.New("--testtimeout must be positive")
	}
	if cfg.Audit.BenchmarkBytes <= 0 {
		return nil, errors.New("--benchbytes must be positive")
	}
	if cfg.Audit.Reference && (cfg.Audit.Rounds != 0 || cfg.Audit.NoScheduleMul) {
		return nil, errors.New("invalid combination of reference and a Sigil-256 variant")
	}
	if _, ok := LogLevelMap[strings.ToLower(cfg.LogLevel)]; !ok {
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	cfg.DataDir = CleanAndExpandPath(cfg.DataDir)
	if cfg.LogDir == "" {
		cfg.LogDir = path.Join(cfg.DataDir, "logs")
	}
	cfg.LogDir = CleanAndExpandPath(cfg.LogDir)
	if cfg.Audit.JSONOut != "" {
		cfg.Audit.JSONOut = CleanAndExpandPath(cfg.Audit.JSONOut)
	}

	// Warn about missing config file only after all other configuration is
	// done. This prevents the warning on help messages and invalid
	// options. Note this should go directly before the return.
	if configFileError != nil {
		log.WithCaller(true).Error("Bad config file", log.Args("error", configFileError))
	}

	return &cfg, nil
}

// createDefaultConfig copies the sample-sigil.conf content to the given
// destination path.
func createDefaultConfigFile(destinationPath string) error {
	// Create the destination directory if it does not exists
	err := os.MkdirAll(filepath.Dir(destinationPath), 0700)
	if err != nil {
		return err
	}

	sampleBytes, err := fs.ReadFile(configFS, "sample-sigil.conf")
	if err != nil {
		return err
	}
	src := bytes.NewReader(sampleBytes)

	dest, err := os.OpenFile(destinationPath,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer dest.Close()

	reader := bufio.NewReader(src)
	for err != io.EOF {
		var line string
		line, err = reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}

		if _, err := dest.WriteString(line); err != nil {
			return err
		}
	}

	return nil
}

// CleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func CleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
