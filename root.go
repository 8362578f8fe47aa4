package main

import (
	"github.com/spf13/cobra"

	"mortgage-agent/config"
	"mortgage-agent/logger"
)

// app holds what every subcommand needs once flags and env are resolved.
type app struct {
	cfg     config.Config
	log     logger.Logger
	envFile string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "mortgage-agent",
		Short:         "Fixed-rate mortgage repayment calculator",
		Long:          `mortgage-agent reads prospect records (name, loan amount, interest rate, years) and prints the monthly repayment for each one.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Optional .env file to load before reading the environment")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error, off)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (console, json)")

	rootCmd.AddCommand(newProcessCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Changed("source") {
		cfg.Source, _ = flags.GetString("source")
	}
	if flags.Changed("dir") {
		cfg.InputDir, _ = flags.GetString("dir")
	}
	if flags.Changed("redis-addr") {
		cfg.RedisAddr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("redis-prefix") {
		cfg.RedisPrefix, _ = flags.GetString("redis-prefix")
	}
	if flags.Changed("addr") {
		cfg.HTTPAddr, _ = flags.GetString("addr")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "mortgage-agent",
		Writer:  cmd.ErrOrStderr(),
	})
	return nil
}

// sourceFlags registers the flags that pick where documents are read from.
func sourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", "", "Input source: file or redis")
	cmd.Flags().String("dir", "", "Directory holding input files (file source)")
	cmd.Flags().String("redis-addr", "", "Redis address (redis source)")
	cmd.Flags().String("redis-prefix", "", "Key prefix for documents (redis source)")
}
