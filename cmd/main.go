package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	cfgPkg "github.com/xhad/molrmsd/pkg/config"
	"github.com/xhad/molrmsd/pkg/molecule"
)

type Config struct {
	Backend    string
	ObabelPath string
	ScratchDir string
	Reference  string
	Files      []string
	ShowTables bool
	PerAtom    bool
	Precision  int
	Serve      bool
	Addr       string
	RateLimit  float64
	Burst      int
	MaxUpload  int64
	NoColor    bool
}

func main() {
	config := parseFlags()
	color.NoColor = color.NoColor || config.NoColor

	if err := run(config); err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	formats := make([]string, 0, 5)
	for _, f := range molecule.SupportedFormats() {
		formats = append(formats, string(f))
	}
	fmt.Fprintf(flag.CommandLine.Output(), `Usage:
  molrmsd [flags] <probe> <reference>
  molrmsd [flags] -ref <reference> <model>...
  molrmsd -serve [-addr :8080]

Computes the RMSD between already aligned structures. Hydrogens are
ignored and atoms must appear in the same order in both files.
Supported formats: %s

Flags:
`, strings.Join(formats, ", "))
	flag.PrintDefaults()
}

func parseFlags() Config {
	var config Config
	var configPath string

	flag.Usage = usage
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&config.Backend, "backend", "native", "Structure parser: native or obabel")
	flag.StringVar(&config.ObabelPath, "obabel", "", "Path to the obabel binary")
	flag.StringVar(&config.ScratchDir, "scratch-dir", "", "Directory for scratch files")
	flag.StringVar(&config.Reference, "ref", "", "Reference structure for batch mode")
	flag.BoolVar(&config.ShowTables, "show", false, "Print the atom tables")
	flag.BoolVar(&config.PerAtom, "per-atom", false, "Print per-atom deviations")
	flag.IntVar(&config.Precision, "precision", 4, "Decimal places of the RMSD")
	flag.BoolVar(&config.Serve, "serve", false, "Start the HTTP server")
	flag.StringVar(&config.Addr, "addr", ":8080", "Server listen address")
	flag.BoolVar(&config.NoColor, "no-color", false, "Disable colored output")
	flag.Parse()
	config.Files = flag.Args()

	cfg, err := cfgPkg.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	// Command line flags override the config file
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["backend"] {
		config.Backend = cfg.Loader.Backend
	}
	if !set["obabel"] {
		config.ObabelPath = cfg.Loader.ObabelPath
	}
	if !set["scratch-dir"] {
		config.ScratchDir = cfg.Loader.ScratchDir
	}
	if !set["show"] {
		config.ShowTables = cfg.UI.ShowTables
	}
	if !set["precision"] {
		config.Precision = cfg.Decimals()
	}
	if !set["no-color"] {
		config.NoColor = cfg.UI.NoColor
	}
	if !set["addr"] {
		config.Addr = cfg.Server.Addr
	}
	config.RateLimit = cfg.Server.RateLimit
	config.Burst = cfg.Server.Burst
	config.MaxUpload = cfg.Server.MaxUploadSize

	cfg.Loader.Backend = config.Backend
	cfg.Loader.ScratchDir = config.ScratchDir
	cfg.Server.Addr = config.Addr
	cfg.UI.Precision = &config.Precision
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			color.Red("%v\n", e)
		}
		os.Exit(2)
	}

	return config
}
