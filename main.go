package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// -------- MAIN -------- //
func main() {
	// Ctrl-C stops workers from picking up new files; the run then returns the context error
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.WithError(err).Error("leafeda failed")
		stop()
		os.Exit(1)
	}
}
