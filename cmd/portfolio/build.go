package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"runtime/trace"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"portfolio/pkg/blog"
	"portfolio/pkg/site"
)

var (
	outputDir  string
	cpuProfile string
	traceFile  string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		if outputDir != "" {
			config.OutputDirectory = outputDir
		}

		for _, profile := range []struct {
			path  string
			start func(string) (func() error, error)
		}{
			{cpuProfile, startCPUProfile},
			{traceFile, startTrace},
		} {
			if profile.path == "" {
				continue
			}
			stop, startErr := profile.start(profile.path)
			if startErr != nil {
				return startErr
			}
			defer func() { err = errors.Join(err, stop()) }()
		}

		s, err := config.Site()
		if err != nil {
			return err
		}
		posts, err := blog.Load(os.DirFS(config.ContentPath()), config.LoaderOptions())
		if err != nil {
			return err
		}

		output := config.OutputPath()
		pipeline := site.Pipeline{
			Site:   s,
			Posts:  posts,
			Output: osfs.New(output),
		}
		if err = pipeline.Run(cmd.Context()); err != nil {
			return err
		}
		slog.Info("built site", "posts", posts.Len(), "output", output)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&outputDir, "output", "o", "", "the output directory (default from "+site.ConfigFile+")")
	buildCmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile to this file")
	buildCmd.Flags().StringVar(&traceFile, "trace", "", "write an execution trace to this file")
}

func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("starting pprof: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		return nil, fmt.Errorf("starting pprof: %w", errors.Join(err, f.Close()))
	}
	return func() error {
		pprof.StopCPUProfile()
		return f.Close()
	}, nil
}

func startTrace(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("starting trace: %w", err)
	}
	if err := trace.Start(f); err != nil {
		return nil, fmt.Errorf("starting trace: %w", errors.Join(err, f.Close()))
	}
	return func() error {
		trace.Stop()
		return f.Close()
	}, nil
}
