// Confumo is a demo CLI for the confumo configuration library.
//
// Usage:
//
//	confumo show [--config file.yaml] [--log-level LEVEL]   # print merged settings
//	confumo save [--config file.yaml] [--log-level LEVEL]   # persist merged settings
//	confumo path                                            # print the canonical config path
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/actx4gh/confumo"
)

const appName = "confumo"

// Exit codes.
const (
	exitSuccess      = 0
	exitUsageError   = 2
	exitRuntimeError = 4
)

var exitCode = exitSuccess

var rootCmd = &cobra.Command{
	Use:   "confumo",
	Short: "Platform-aware configuration manager demo",
	Long:  "Confumo resolves platform config directories and merges YAML files with CLI overrides.",
}

var showCmd = &cobra.Command{
	Use:                "show",
	Short:              "Print the merged configuration with value sources",
	DisableFlagParsing: true, // confumo owns the flag surface
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := buildConfig(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			exitCode = exitUsageError
			return
		}
		fmt.Print(cfg.Debug())
	},
}

var saveCmd = &cobra.Command{
	Use:                "save",
	Short:              "Persist the merged configuration to the canonical path",
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := buildConfig(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			exitCode = exitUsageError
			return
		}
		if err := cfg.Save(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			exitCode = exitRuntimeError
			return
		}
		fmt.Println(cfg.FilePath())
	},
}

var pathCmd = &cobra.Command{
	Use:                "path",
	Short:              "Print the canonical configuration file path",
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := buildConfig(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			exitCode = exitUsageError
			return
		}
		fmt.Println(cfg.FilePath())
	},
}

// buildConfig constructs the instance, declaring one extension flag as a
// usage example.
func buildConfig(args []string) (*confumo.Config, error) {
	return confumo.NewBuilder(appName).
		WithArgs(args).
		WithArgSpecs(confumo.ArgSpec{
			Name:  "upstream-api-provider-port",
			Type:  confumo.ArgString,
			Usage: "Upstream API provider port",
		}).
		Build()
}

func main() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(pathCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		os.Exit(exitUsageError)
	}

	os.Exit(exitCode)
}
