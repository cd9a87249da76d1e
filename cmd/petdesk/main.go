package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/petdesk/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/petdesk/config.toml)")
	prefsPath := flag.String("prefs", "", "preferences file path (optional)")
	backendURL := flag.String("backend", "", "backend base URL (optional, overrides config)")
	pollSeconds := flag.Int("poll", 0, "background refresh interval in seconds (optional, 0 keeps config)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		BackendURL: *backendURL,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "petdesk: %v\n", err)
		return 1
	}
	return 0
}
