package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"portfolio/pkg/site"
)

var (
	siteDir  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Build or serve a Markdown portfolio and blog",
	Long: `portfolio renders a personal site (home, experience, blog) from a
directory of Markdown posts, either into static files or as a live server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setLogLevel()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&siteDir, "dir", "C", ".", "the site directory, holding "+site.ConfigFile)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", os.Getenv("LOG_LEVEL"), "debug, info, warn or error (default from LOG_LEVEL)")
	rootCmd.AddCommand(buildCmd, serveCmd, postsCmd)
}

func main() {
	start := time.Now()
	slog.Debug("started", "time", start)
	err := rootCmd.ExecuteContext(context.Background())
	slog.Debug("completed", "elapsed", time.Since(start))
	if err != nil {
		os.Exit(1)
	}
}

func setLogLevel() error {
	if logLevel == "" {
		return nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	slog.SetLogLoggerLevel(lvl)
	return nil
}

func loadConfig() (config site.Config, err error) {
	var dir string
	if dir, err = filepath.Abs(siteDir); err != nil {
		return
	}
	return site.LoadConfig(dir)
}
