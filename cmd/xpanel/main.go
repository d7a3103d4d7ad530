package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xferant/panel/internal/app/config"
	"github.com/xferant/panel/internal/app/render"
	"github.com/xferant/panel/internal/app/server"
	"github.com/xferant/panel/internal/dev"
	"github.com/xferant/panel/internal/i18n"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "xpanel",
	Short:   "Xferant VPN admin panel",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the panel server",
	Long: `Start the panel HTTP server.

With --dev the server injects a live reload script into every page and,
when i18n.dir is set, reloads locale catalogs from disk as they change.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		devMode, _ := cmd.Flags().GetBool("dev")

		cfg := mustLoadConfig(configPath)
		if cmd.Flags().Changed("port") {
			cfg.App.Port, _ = cmd.Flags().GetInt("port")
			cfg.App.Address = ""
		}
		if devMode {
			cfg.Dev.Enabled = true
		}

		logger := setupLogger(cfg)
		slog.SetDefault(logger)

		store, err := i18n.NewStore(catalogSource(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading catalogs: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var lr *dev.LiveReload
		if cfg.Dev.Enabled {
			lr = dev.NewLiveReload(logger)
			if cfg.I18n.Dir != "" {
				w, err := dev.WatchCatalogs(ctx, cfg.I18n.Dir, store, lr, cfg.Debounce(), logger)
				if err != nil {
					logger.Warn("Catalog watcher failed", "dir", cfg.I18n.Dir, "error", err)
				} else {
					defer w.Close()
				}
			}
		}

		logger.Debug("Configuration loaded", "env", cfg.App.Env, "addr", cfg.Addr(), "i18nDir", cfg.I18n.Dir)

		srv := server.New(cfg, render.NewRenderer(render.ModeSSR, logger), store, logger, server.Options{
			Version:    version,
			LiveReload: lr,
		})
		if err := srv.Run(ctx); err != nil {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export static pages",
	Long: `Pre-render every panel page for every locale.

The base locale is written at the root of the output directory and each
locale, including the base one, under its own subdirectory.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		cfg := mustLoadConfig(configPath)
		if cmd.Flags().Changed("out") {
			cfg.Build.OutDir, _ = cmd.Flags().GetString("out")
		}

		logger := setupLogger(cfg)
		slog.SetDefault(logger)

		store, err := i18n.NewStore(catalogSource(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading catalogs: %v\n", err)
			os.Exit(1)
		}

		renderer := render.NewRenderer(render.ModeSSG, logger)
		written, err := renderer.Export(cmd.Context(), cfg.Build.OutDir, server.Pages(), server.LocaleVariants(store.Bundle()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting pages: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Exported %d file(s) to %s\n", len(written), cfg.Build.OutDir)
	},
}

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List available locales",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg := mustLoadConfig(configPath)

		store, err := i18n.NewStore(catalogSource(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading catalogs: %v\n", err)
			os.Exit(1)
		}
		bundle := store.Bundle()

		if jsonOutput {
			output := make([]map[string]interface{}, 0, len(bundle.Locales()))
			for _, locale := range bundle.Locales() {
				output = append(output, map[string]interface{}{
					"locale":   locale,
					"base":     locale == bundle.Base().String(),
					"messages": len(bundle.Messages(locale)),
				})
			}
			data, _ := json.MarshalIndent(map[string]interface{}{"locales": output}, "", "  ")
			fmt.Println(string(data))
			return
		}

		source := "embedded"
		if cfg.I18n.Dir != "" {
			source = cfg.I18n.Dir
		}
		fmt.Printf("Found %d locale(s) in %s:\n\n", len(bundle.Locales()), source)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LOCALE\tMESSAGES\tBASE")
		fmt.Fprintln(w, "------\t--------\t----")
		for _, locale := range bundle.Locales() {
			base := ""
			if locale == bundle.Base().String() {
				base = "yes"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", locale, len(bundle.Messages(locale)), base)
		}
		w.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("xpanel v%s\n", version)
		fmt.Printf("  Commit: %s\n", commit)
		fmt.Printf("  Built:  %s\n", date)
	},
}

func init() {
	serveCmd.Flags().StringP("config", "c", "", "Path to config file")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Bool("dev", false, "Enable live reload and catalog watching")

	buildCmd.Flags().StringP("config", "c", "", "Path to config file")
	buildCmd.Flags().StringP("out", "o", "./dist", "Output directory")

	localesCmd.Flags().StringP("config", "c", "", "Path to config file")
	localesCmd.Flags().BoolP("json", "j", false, "Output as JSON")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(localesCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mustLoadConfig(configPath string) *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func catalogSource(cfg *config.Config) i18n.Source {
	if cfg.I18n.Dir != "" {
		return i18n.DirSource(cfg.I18n.Dir)
	}
	return i18n.EmbeddedSource()
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	switch cfg.Logging.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
