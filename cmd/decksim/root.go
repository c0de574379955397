package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "decksim",
		Short:         "Monte-Carlo simulation of deck opening hands and early turns",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("level-filter", "info", "minimum log level (debug, info, warn, error)")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := bindConfig(cmd); err != nil {
			return err
		}
		return configureLogging(cmd)
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newCardsCmd())
	return root
}

// bindConfig lets every flag be supplied as a DECKSIM_* environment
// variable or through an optional ~/.config/decksim/config.yaml, with
// explicit command-line flags winning.
func bindConfig(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix("DECKSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if home, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, "decksim"))
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, v.GetString(f.Name)); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("flag --%s from config: %w", f.Name, err)
		}
	})
	return bindErr
}

func configureLogging(cmd *cobra.Command) error {
	levelFilter, err := cmd.Flags().GetString("level-filter")
	if err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(levelFilter)
	if err != nil {
		return fmt.Errorf("unknown log level %q", levelFilter)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
	return nil
}
