package main

import (
	"log/slog"
	"os"

	"github.com/aussiebroadwan/storefront/internal/shop/app"
)

func main() {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		slog.Error("storefront failed to start", "err", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("storefront stopped with error", "err", err)
		os.Exit(1)
	}
}
