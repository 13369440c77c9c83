package main

import (
	"context"
	"time"

	"github.com/niksmo/ecoscan/config"
	"github.com/niksmo/ecoscan/internal/app"
	"github.com/niksmo/ecoscan/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	scanService := app.New(sigCtx, cfg)

	scanService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	scanService.Close(ctx)
}
