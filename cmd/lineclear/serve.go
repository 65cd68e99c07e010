package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lineclear/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview SSH server",
	Long: `Start an SSH server that serves the animated scenario preview.

Each SSH connection gets its own session; the n-th session starts at --seed+n. All
sessions preview the same generator config and can browse the task index
given by --db.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lineclear/host_key

Examples:
  lineclear serve                           # Listen on :23234 with auto-generated key
  lineclear serve --ssh :2222               # Listen on port 2222
  lineclear serve --host-key ./my_host_key  # Use specific host key
  lineclear serve --difficulty hard         # Preview hard scenarios

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, medium, hard")
	serveCmd.Flags().IntVar(&flagFPS, "fps", 10, "Animation frames per second")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, err := newLogger("lineclear-ssh")
	if err != nil {
		fail("%v", err)
	}

	gen, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	if err := applyDifficulty(&gen, flagDifficulty); err != nil {
		fail("%v", err)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Generator = gen
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting lineclear SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
