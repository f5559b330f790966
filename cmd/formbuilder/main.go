/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"formbuilder/internal/config"
	"formbuilder/internal/crash"
	applog "formbuilder/internal/log"
	"formbuilder/internal/storage"
	"formbuilder/internal/telemetry"
	"formbuilder/internal/version"
)

// app carries what the root command resolved for its subcommands.
type app struct {
	configPath string
	logLevel   string

	cfg       config.AppConfig
	cfgSource string
	telemetry *telemetry.Client
	log       *slog.Logger
}

// load reads the config file, then initializes logging and telemetry from it.
func (a *app) load() error {
	var (
		cfg   config.AppConfig
		token string
		err   error
	)
	if a.configPath != "" {
		cfg, token, err = config.LoadFile(a.configPath)
		a.cfgSource = a.configPath
	} else {
		cfg, token, err = config.Load()
		a.cfgSource, _ = config.ConfigPath()
	}
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	opts := applog.FromEnv()
	opts.Level = cfg.Logging.Level
	opts.Format = cfg.Logging.Format
	opts.AddSource = cfg.Logging.Source
	opts.File = cfg.Logging.File
	applog.Init(opts)
	a.log = applog.WithComponent("cli")

	a.telemetry = telemetry.NewDefault(telemetry.FromConfig(cfg, token))
	a.log.Debug("config loaded", slog.String("path", a.cfgSource), slog.Bool("telemetry", a.telemetry.Enabled()))
	return nil
}

func (a *app) cacheDir() string {
	if d := strings.TrimSpace(a.cfg.Thumbnails.CacheDir); d != "" {
		return d
	}
	return storage.DefaultDir()
}

func (a *app) crashDir() string { return filepath.Join(a.cacheDir(), crash.DirName) }

func (a *app) shutdown() {
	if a.telemetry != nil {
		a.telemetry.Flush(context.Background())
	}
	_ = applog.Close()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Visual form builder",
		Long:          `Form Builder lays out form components on pages: drag templates from the palette onto the canvas, move, resize and restyle them.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.shutdown()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is the per-user config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the log level (debug|info|warn|error)")

	root.AddCommand(
		newUICmd(a),
		newCatalogCmd(a),
		newThumbsCmd(a),
		newReplayCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

func main() {
	defer crash.Recover(crash.Session{Dir: filepath.Join(storage.DefaultDir(), crash.DirName)})

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
