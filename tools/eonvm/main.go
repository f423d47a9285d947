package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/eon-protocol/eonvm/program"
	"github.com/spf13/cobra"
)

var configPath string
var dataDir string
var srsURL string
var logLevel string

var config Config

var rootCmd = &cobra.Command{
	Use:           "eonvm",
	Short:         "execute and verify eonvm program functions",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir = dataDir
		}
		if cmd.Flags().Changed("srs-url") {
			cfg.SRSURL = srsURL
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		config = cfg
		return cfg.SetupLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "eonvm.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory of the srs cache")
	rootCmd.PersistentFlags().StringVar(&srsURL, "srs-url", "", "base url to download the srs from")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level")
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(executeCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(srsCmd)
}

func loadFunction(path string) (*program.Function, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return program.LoadFunction(f)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
