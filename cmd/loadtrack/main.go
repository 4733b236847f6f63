package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/renuIyer/loadtrack/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	record := flag.String("record", "", "open a load's provenance on launch (optional)")
	publicKey := flag.String("public-key", "", "viewer public key; overrides config and $LOADTRACK_PUBLIC_KEY")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Record:     *record,
		PublicKey:  *publicKey,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "loadtrack: %v\n", err)
		return 1
	}
	return 0
}
