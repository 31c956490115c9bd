/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/PivotLLM/Preceptor/config"
	"github.com/PivotLLM/Preceptor/global"
	"github.com/PivotLLM/Preceptor/logging"
	"github.com/PivotLLM/Preceptor/server"
)

func main() {
	// Top-level panic recovery
	defer func() {
		if rec := recover(); rec != nil {
			_, _ = fmt.Fprintf(os.Stderr, "FATAL PANIC: %v\n", rec)
			os.Exit(2)
		}
	}()

	// Pick up credentials from a .env file when one is present. Absence is
	// fine: keys may come from the real environment or not at all.
	_ = godotenv.Load()

	// Parse command line flags
	var (
		configPath = flag.String("config", "", "Path to configuration file")
		version    = flag.Bool("version", false, "Show version information")
		help       = flag.Bool("help", false, "Show help information")
	)
	flag.Parse()

	// Handle version flag
	if *version {
		fmt.Printf("%s v%s\n", global.ProgramName, global.Version)
		return
	}

	// Handle help flag
	if *help {
		showHelp()
		return
	}

	// Normal MCP server mode - optional config path
	var opts []config.Option
	if *configPath != "" {
		opts = append(opts, config.WithConfigPath(*configPath))
	}
	cfg := config.New(opts...)

	// Load and validate configuration
	if err := cfg.Load(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger with config path
	logger, err := logging.New(cfg.LogFile())
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func(logger *logging.Logger) {
		// Ensure logs are flushed before exit
		_ = logger.Sync()
		_ = logger.Close()
	}(logger)

	// Set log level from config
	logger.SetLevel(cfg.LogLevel())

	// Announce startup
	logger.Infof("%s v%s starting", global.ProgramName, global.Version)

	// Log first-run message
	if cfg.IsFirstRun() {
		logger.Infof("First run detected - created default configuration at %s", cfg.ConfigPath())
		logger.Info("Please review the configuration and set API keys in the environment")
	}

	// Create and start server
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to create server: %v", err)
	}

	// Run the server
	if err := srv.Run(); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
}

func showHelp() {
	fmt.Printf(`%s v%s - MCP Server for AI Tutor Personas

USAGE:
    %s [OPTIONS]

OPTIONS:
    --config PATH    Path to configuration file
                     (default: $PRECEPTOR_CONFIG or %s/%s)
    --version        Show version information
    --help          Show this help message

DESCRIPTION:
    Preceptor is a Model Context Protocol (MCP) server that provides:

    - Tutor persona assembly, validation, and flat-file persistence
    - A preset catalog (built-in Korean teaching presets plus user presets)
    - Deterministic system prompt and lesson request composition
    - Chat dispatch to an Anthropic-style messages endpoint
    - Korean text-to-speech preparation and synthesis
    - Reference document import with markdown conversion

CONFIGURATION:
    The server uses a JSON configuration file that defines:

    - data_dir: Directory for personas, presets, and documents
    - max_personas: Retention cap for stored personas
    - chat / speech: Collaborator endpoints and tuning
    - logging: Log file path and level

    On first run, a default configuration is created in %s.
    API keys are read from the environment (or a .env file):

    - ANTHROPIC_API_KEY    Enables the chat tools
    - GOOGLE_TTS_API_KEY   Enables server-side speech synthesis

    Both are optional. Without them the matching tools degrade to
    fallback replies and caller-side synthesis.

FIRST RUN:
    1. Run %s once to create default config
    2. Edit %s/%s and export API keys as needed
    3. Run %s again to start the server

EXAMPLES:
    # Start with default config
    %s

    # Start with custom config
    %s --config /path/to/config.json

    # Show version
    %s --version

ENVIRONMENT:
    PRECEPTOR_CONFIG     Path to configuration file (if --config not used)
    ANTHROPIC_API_KEY    Chat collaborator credential
    GOOGLE_TTS_API_KEY   Speech collaborator credential
`, global.ProgramName, global.Version,
		global.ProgramName,
		global.DefaultBaseDir, global.DefaultConfigFileName,
		global.DefaultBaseDir,
		global.ProgramName,
		global.DefaultBaseDir, global.DefaultConfigFileName,
		global.ProgramName,
		global.ProgramName,
		global.ProgramName,
		global.ProgramName)
}
