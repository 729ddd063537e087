package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"portfolio/pkg/blog"
	"portfolio/pkg/site"
)

var (
	listen string
	watch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site, optionally reloading posts as they change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		if listen != "" {
			config.Listen = listen
		}
		// links point at this server unless the root is pinned by env
		if os.Getenv(site.EnvPrefix+"_SITEROOTURL") == "" {
			config.SiteRootURL = localURL(config.Listen)
		}

		s, err := config.Site()
		if err != nil {
			return err
		}
		store, err := blog.NewStore(os.DirFS(config.ContentPath()), config.LoaderOptions())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := http.Server{
			Addr:              config.Listen,
			Handler:           site.NewServer(store, s),
			ReadHeaderTimeout: 10 * time.Second,
		}

		group, ctx := errgroup.WithContext(ctx)
		group.Go(func() error {
			slog.Info("serving site", "addr", config.Listen, "url", config.SiteRootURL)
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		group.Go(func() error {
			<-ctx.Done()
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdown)
		})
		if watch {
			group.Go(func() error {
				if err := store.Watch(ctx, config.ContentPath()); !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			})
		}
		return group.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVarP(&listen, "listen", "l", "", "the address to listen on (default from "+site.ConfigFile+")")
	serveCmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload posts when the content directory changes")
}

// localURL is the site root when serving on `addr` locally.
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + "/"
	}
	if host == "" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}
