package main

import (
	"context"
	"log"

	"github.com/Anandrajbgp/Noteflow/internal/server"
	"github.com/Anandrajbgp/Noteflow/internal/server/config"
)

func main() {
	ctx := context.Background()

	app, err := server.NewApp(ctx, config.LoadConfig())
	if err != nil {
		log.Fatalf("startup error: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
