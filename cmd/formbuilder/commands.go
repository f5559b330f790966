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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"formbuilder/internal/catalog"
	"formbuilder/internal/config"
	"formbuilder/internal/crash"
	"formbuilder/internal/editor"
	applog "formbuilder/internal/log"
	"formbuilder/internal/render"
	"formbuilder/internal/script"
	"formbuilder/internal/storage"
	"formbuilder/internal/telemetry"
	"formbuilder/internal/ui"
	"formbuilder/internal/vector"
	"formbuilder/internal/version"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

// loadCatalog returns the configured catalog, or the built-in one.
func (a *app) loadCatalog() (*catalog.Catalog, error) {
	if p := strings.TrimSpace(a.cfg.Catalog.Path); p != "" {
		return catalog.Load(p)
	}
	return catalog.Default(), nil
}

func (a *app) openCache(ctx context.Context) *storage.Cache {
	c, err := storage.OpenCache(ctx, a.cacheDir(), a.cfg.Thumbnails.MaxEntries)
	if err != nil {
		a.log.Warn("thumbnail cache unavailable", slog.Any("err", err))
		return nil
	}
	return c
}

func (a *app) newEditor(cat *catalog.Catalog) *editor.Editor {
	return editor.New(editor.Options{
		Catalog:       cat,
		Canvas:        vector.Size{W: a.cfg.Canvas.Width, H: a.cfg.Canvas.Height},
		MinItemSize:   a.cfg.Canvas.MinItemSize,
		SnapThreshold: a.cfg.Canvas.SnapThreshold,
		Category:      a.cfg.Catalog.DefaultCategory,
		Emitter:       telemetry.EditorEmitter{Client: a.telemetry},
	})
}

func newUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Launch the desktop UI (build with -tags fyne)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			cache := a.openCache(cmd.Context())
			if cache != nil {
				defer func() { _ = cache.Close() }()
			}
			a.telemetry.Event("ui_started", nil)
			return ui.Run(ui.Options{
				Config:   a.cfg,
				Catalog:  cat,
				Cache:    cache,
				Emitter:  telemetry.EditorEmitter{Client: a.telemetry},
				CrashDir: a.crashDir(),
			})
		},
	}
}

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate palette catalogs",
	}

	var output string
	list := &cobra.Command{
		Use:   "list",
		Short: "List the palette categories and templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			switch output {
			case "yaml":
				b, err := cat.Marshal()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			case "table", "":
				return writeCatalogTable(cmd.OutOrStdout(), cat)
			default:
				return fmt.Errorf("unknown output format %q (use table or yaml)", output)
			}
		},
	}
	list.Flags().StringVarP(&output, "output", "o", "table", "output format: table|yaml")

	validate := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a catalog file against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(args[0])
			var ve *catalog.ValidationError
			if errors.As(err, &ve) {
				for _, p := range ve.Problems {
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", p)
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d categories, %d component types)\n", args[0], len(cat.Categories()), len(cat.Types()))
			return nil
		},
	}

	cmd.AddCommand(list, validate)
	return cmd
}

func writeCatalogTable(w io.Writer, cat *catalog.Catalog) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("CATEGORY", "#", "TYPE", "CONTENT")
	for _, c := range cat.Categories() {
		for i, tpl := range c.Templates {
			t.Row(c.Name, strconv.Itoa(i), string(tpl.Type), tpl.Content)
		}
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

var unsafeName = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	return strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func newThumbsCmd(a *app) *cobra.Command {
	var (
		out     string
		size    int
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "thumbs",
		Short: "Render palette thumbnails to PNG files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(out, 0o755); err != nil {
				return err
			}
			if size <= 0 {
				size = a.cfg.Thumbnails.Size
			}
			face, err := render.FaceOrDefault(a.cfg.Thumbnails.Font, 11)
			if err != nil {
				a.log.Warn("thumbnail font not loaded, using default", slog.Any("err", err))
			}
			th := ui.Thumbs{Width: size, Height: size / 2, Face: face}
			if !noCache {
				if c := a.openCache(cmd.Context()); c != nil {
					defer func() { _ = c.Close() }()
					th.Cache = c
				}
			}
			n := 0
			for _, c := range cat.Categories() {
				for i, tpl := range c.Templates {
					b, err := th.ForTemplate(cmd.Context(), tpl)
					if err != nil {
						return fmt.Errorf("%s #%d: %w", c.Name, i, err)
					}
					name := fmt.Sprintf("%s-%02d-%s.png", slug(c.Name), i, slug(string(tpl.Type)))
					if err := os.WriteFile(filepath.Join(out, name), b, 0o644); err != nil {
						return err
					}
					n++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d thumbnails to %s\n", n, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output directory")
	cmd.Flags().IntVar(&size, "size", 0, "thumbnail width in pixels (height is half)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the thumbnail cache")
	return cmd
}

func newReplayCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Replay an editor script and print the resulting pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			s, errs := script.Parse(string(src))
			if len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s:%d:%d: %s\n", args[0], e.Line, e.Column, e.Message)
				}
				return fmt.Errorf("%s: %d parse error(s)", args[0], len(errs))
			}
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			ed := a.newEditor(cat)
			defer crash.Recover(crash.Session{
				Dir:      a.crashDir(),
				Summary:  ed.Summary,
				Snapshot: func() any { return ed.State().Pages() },
			})

			ctx := applog.ContextWith(cmd.Context(), slog.String("script", filepath.Base(args[0])))
			rep, runErr := script.Run(ed, s)
			a.log.InfoContext(ctx, "replay finished", slog.Int("applied", rep.Applied), slog.Int("ignored", len(rep.Ignored)))
			w := cmd.OutOrStdout()
			st := ed.State()
			fmt.Fprintln(w, render.PageTabs(st.Pages(), st.Active()))
			opt := render.TextOptions{SelectedID: ed.SelectedID()}
			if all {
				for _, pg := range st.Pages() {
					fmt.Fprintf(w, "\n%s\n%s\n", pg.Name, render.TextPreview(pg, ed.Registry(), opt))
				}
			} else {
				fmt.Fprintln(w, render.TextPreview(ed.ActivePage(), ed.Registry(), opt))
			}
			fmt.Fprintf(w, "applied %d step(s)", rep.Applied)
			if len(rep.Ignored) > 0 {
				fmt.Fprintf(w, ", ignored lines %v", rep.Ignored)
			}
			fmt.Fprintf(w, "\n%s\n", ed.Summary())
			if runErr != nil {
				return fmt.Errorf("%s: %w", args[0], runErr)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "print every page instead of the active one")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
	}
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration and its environment overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "# source: %s\n", a.cfgSource)
			for _, k := range config.Keys() {
				if env, ok := config.EnvOverrideFor(k); ok {
					fmt.Fprintf(w, "# %s overridden by %s\n", k, env)
				}
			}
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(a.cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.cfgSource)
			return nil
		},
	}
	cmd.AddCommand(show, path)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Form Builder %s\n", version.String())
		},
	}
}
