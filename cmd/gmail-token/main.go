// Package main runs the interactive Gmail refresh token generator.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	gmailtoken "github.com/northlinerail/website/internal/cmd/gmailtoken"
	"github.com/northlinerail/website/internal/platform/config"
)

func main() {
	cfg, err := gmailtoken.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := gmailtoken.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		config.Exitf("gmail-token: %v", err)
	}
}
