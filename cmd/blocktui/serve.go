package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-blocks/internal/api"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagHTTPAddr    string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH game server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection plays its own game under the SSH user name.
Scores are stored per-server, so all users share the same table.
With --http the scores are also served as JSON under /api/v1.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.blocktui/host_key

Examples:
  blocktui serve                          # Listen on :23234 with auto-generated key
  blocktui serve --ssh :2222              # Listen on port 2222
  blocktui serve --http :8080             # Also serve the scores API
  blocktui serve --redis redis://db:6379  # Mirror scores to a shared leaderboard

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Scores API address (disabled when empty)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	rules, err := loadRules()
	if err != nil {
		return err
	}
	logger := newStderrLogger("blocktui")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := openSources(ctx, logger, rules)
	if err != nil {
		return err
	}
	defer src.Close()

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	sshCfg.Rules = rules
	sshCfg.Recorder = src.recorder()
	sshCfg.Local = src.store
	sshCfg.World = src.worldSource()
	sshCfg.Logger = logger

	sshServer, err := tui.NewSSHServer(sshCfg)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sshServer.ListenAndServe(ctx)
	})

	if flagHTTPAddr != "" {
		httpCfg := api.DefaultServerConfig()
		httpCfg.Address = flagHTTPAddr
		router := api.NewRouter(api.RouterConfig{
			Logger: logger.WithPrefix("http"),
			Local:  src.store,
			World:  src.worldSource(),
		})
		httpServer := api.NewServer(router, httpCfg, logger.WithPrefix("http"))

		g.Go(httpServer.ListenAndServe)
		g.Go(func() error {
			<-ctx.Done()
			return httpServer.Shutdown(context.Background())
		})
	}

	fmt.Printf("Serving blocktui over SSH on %s\n", sshServer.Addr())
	fmt.Println("Press Ctrl+C to stop")
	return g.Wait()
}
