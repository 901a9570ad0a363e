package main

import (
	"fmt"
	"os"
	"time"

	"go-match/internal/records"
	"go-match/internal/tui"

	"github.com/spf13/cobra"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server that lets players connect and play remotely.

Every connection gets its own game and achievements. Results of all
sessions go to the same records store.

Examples:
  go-match serve
  go-match serve --ssh :2222
  go-match serve --store sqlite --records /var/lib/go-match/records.db

Connect with:
  ssh -p 23234 localhost`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH listen address")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key (default: ~/.go-match/host_key)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Idle connection timeout")
}

func runServe(cmd *cobra.Command, args []string) {
	logger := newLogger(os.Stderr, "go-match-ssh")

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("could not load config", "err", err)
	}

	storage, err := records.Open(flagStore, flagRecords)
	if err != nil {
		logger.Warn("could not open records, serving without them", "err", err)
	} else {
		defer storage.Close()
	}

	g := tui.NewGame(cfg, catalogFor(cfg, newRand()), logger)
	srv, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: flagIdleTimeout,
		Seed:        flagSeed,
	}, g, storage, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
