// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"stmt-obfuscator/internal/config"
	"stmt-obfuscator/internal/document"
	"stmt-obfuscator/internal/obfuscator"
	"stmt-obfuscator/internal/observability"
	"stmt-obfuscator/internal/report"
	"stmt-obfuscator/internal/statement"
	"stmt-obfuscator/internal/version"
)

// finalConfiguration holds resolved configuration values after merging
// flags over the config file over the built-in defaults.
type finalConfiguration struct {
	format    string
	threshold float64
	maxPages  int
	verbose   bool
	debug     bool
	noColor   bool
	integrity bool
}

func main() {
	inputFile := flag.String("file", "", "Path to the input statement (PDF, JSON document, or plain text)")
	entitiesFile := flag.String("entities", "", "Path to the detector's JSON entity list")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	threshold := flag.Float64("threshold", -1, "Confidence threshold for masking entities (0..1, overrides config)")
	outputFile := flag.String("output", "", "Path to write the obfuscated document JSON (default: stdout)")
	outputFormat := flag.String("format", "", "Output format: text (summary) or json (document)")
	verbose := flag.Bool("verbose", false, "Display per-type entity counts")
	debug := flag.Bool("debug", false, "Enable debug logging of the obfuscation pipeline")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := loadConfiguration(*configFile)
	final := resolveConfiguration(cfg, *outputFormat, *threshold, *verbose, *debug, *noColor)

	// Disable colors when stdout is not a terminal.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		final.noColor = true
	}

	observer := buildObserver(final)

	doc, err := statement.Load(*inputFile, final.maxPages)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading statement: %v\n", err)
		os.Exit(1)
	}

	var entities []document.PIIEntity
	if *entitiesFile != "" {
		entities, err = statement.LoadEntities(*entitiesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading entities: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Fprintln(os.Stderr, "Warning: no -entities file given, nothing will be masked")
	}

	o := obfuscator.New(final.threshold, observer)
	o.SetIntegrityVerification(final.integrity)
	result := o.Obfuscate(doc, entities)

	formatter := report.NewFormatter()

	if *outputFile != "" || final.format == "json" {
		docJSON, err := formatter.FormatJSON(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			os.Exit(1)
		}
		if *outputFile != "" {
			if err := os.WriteFile(*outputFile, []byte(docJSON+"\n"), 0600); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Println(docJSON)
		}
	}

	if final.format == "text" {
		summary := formatter.FormatText(result, entities, report.Options{
			NoColor: final.noColor,
			Verbose: final.verbose,
		})
		fmt.Print(summary)
	}

	if result.Document.Metadata["obfuscated"] == false {
		os.Exit(2)
	}
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("")
	}
	return cfg
}

// resolveConfiguration merges command line flags over the config file.
func resolveConfiguration(cfg *config.Config, format string, threshold float64, verbose, debug, noColor bool) finalConfiguration {
	final := finalConfiguration{
		format:    cfg.Defaults.Format,
		threshold: cfg.Obfuscation.ConfidenceThreshold,
		maxPages:  cfg.Parser.MaxPages,
		verbose:   cfg.Defaults.Verbose,
		debug:     cfg.Defaults.Debug,
		noColor:   cfg.Defaults.NoColor,
		integrity: cfg.Integrity.Enabled,
	}

	if format != "" {
		final.format = format
	}
	if threshold >= 0 && threshold <= 1 {
		final.threshold = threshold
	}
	if verbose {
		final.verbose = true
	}
	if debug {
		final.debug = true
	}
	if noColor {
		final.noColor = true
	}

	return final
}

func buildObserver(final finalConfiguration) *observability.StandardObserver {
	level := observability.ObservabilityOff
	if final.verbose {
		level = observability.ObservabilityMetrics
	}
	if final.debug {
		level = observability.ObservabilityDebug
	}

	observer := observability.NewStandardObserver(level, os.Stderr)
	if final.debug {
		observer.DebugObserver = observability.NewDebugObserver(os.Stderr)
	}
	return observer
}
