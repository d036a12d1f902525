package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bastiangx/traductor/internal/cli"
	"github.com/bastiangx/traductor/internal/watch"
	"github.com/bastiangx/traductor/pkg/dictionary"
	"github.com/bastiangx/traductor/pkg/server"
	"github.com/bastiangx/traductor/pkg/translate"
)

var (
	serveHTTP bool
	httpAddr  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve translations over msgpack IPC (stdin/stdout) or HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.loadLanguage(ctx, false); err != nil {
			log.Warn(err)
		}
		if w := a.watchDataset(ctx); w != nil {
			defer w.Stop()
		}

		if !serveHTTP {
			return untilDone(ctx, func() error {
				return server.NewServer(a.session, cfg).Start(ctx)
			})
		}

		addr := httpAddr
		if addr == "" {
			addr = cfg.Server.HTTPAddr
		}
		srv := server.NewHTTPServer(addr, server.NewHandler(a.session, cfg))
		errCh := make(chan error, 1)
		go func() {
			log.Infof("Listening on http://%s", addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive translation prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.loadLanguage(ctx, false); err != nil {
			log.Warn(err)
		}
		if w := a.watchDataset(ctx); w != nil {
			defer w.Stop()
		}
		dir, err := direction()
		if err != nil {
			return err
		}

		log.SetReportTimestamp(false)
		prompt := cli.NewInputHandler(a.session, cfg, dir)
		prompt.SetColor(colorEnabled())
		return untilDone(ctx, func() error { return prompt.Start(ctx) })
	},
}

// untilDone runs a stdin-driven loop and returns early once ctx is done,
// since a blocked read cannot be interrupted.
func untilDone(ctx context.Context, run func() error) error {
	errCh := make(chan error, 1)
	go func() { errCh <- run() }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Debug("Interrupted, exiting.")
		return nil
	}
}

func init() {
	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "Serve the JSON API instead of IPC")
	serveCmd.Flags().StringVar(&httpAddr, "addr", "", "HTTP listen address (default from config)")
}

// watchDataset reloads the session whenever the loaded local dataset changes.
// It returns nil when watching is disabled or not possible.
func (a *app) watchDataset(ctx context.Context) *watch.Watcher {
	if !cfg.Dataset.Watch {
		return nil
	}
	info := a.session.Info()
	if !info.Loaded || dictionary.IsURL(info.Source) {
		return nil
	}

	w, err := watch.NewWatcher(watch.DefaultDebounce)
	if err != nil {
		log.Warnf("Dataset watching disabled: %v", err)
		return nil
	}
	err = w.Watch(a.loader.Resolve(info.Source), reloadOnChange(ctx, a.session, info.Source))
	if err != nil {
		log.Warnf("Dataset watching disabled: %v", err)
		_ = w.Stop()
		return nil
	}
	return w
}

// reloadOnChange reloads source when its file changes, unless another
// dataset has been loaded in the meantime.
func reloadOnChange(ctx context.Context, session *translate.Session, source string) func(string) {
	return func(path string) {
		info, reloaded, err := session.ReloadSource(ctx, source)
		switch {
		case err != nil:
			log.Errorf("Reloading %s: %v", path, err)
		case !reloaded:
			log.Debugf("Ignoring change to %s, %s is no longer selected", path, source)
		default:
			log.Infof("Reloaded %s: %d entries", path, info.Stats.Entries)
		}
	}
}
