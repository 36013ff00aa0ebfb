// printer-server accepts order submissions from the storefront, stores
// them in a local SQLite file and prints receipts on an ESC/POS thermal
// printer on operator demand.
//
// Configuration is taken from the environment:
//
//	PRINTER_API_KEY  shared secret for the storefront and the admin panel (required)
//	PRINTER_ADDR     printer host:port, raw-socket listener (default 192.168.0.100:9100)
//	PORT             HTTP port (default 3000)
//	DB_PATH          SQLite file (default ./orders.db)
//	REDIS_ADDR       optional, enables the ingest idempotency guard
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carlaolanches/printer-server/internal/dispatch"
	"github.com/carlaolanches/printer-server/internal/httpx"
	"github.com/carlaolanches/printer-server/internal/pkg/cache"
	"github.com/carlaolanches/printer-server/internal/pkg/telemetry"
	"github.com/carlaolanches/printer-server/internal/printer"
	"github.com/carlaolanches/printer-server/internal/store/sqlite"
)

const shutdownTimeout = 5 * time.Second

func main() {
	telemetry.InitLogger()

	apiKey := os.Getenv("PRINTER_API_KEY")
	if apiKey == "" {
		slog.Error("PRINTER_API_KEY is required")
		os.Exit(2)
	}
	port := getEnv("PORT", "3000")
	dbPath := getEnv("DB_PATH", "./orders.db")
	printerAddr := getEnv("PRINTER_ADDR", "192.168.0.100:9100")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := sqlite.Open(dbPath)
	if err != nil {
		slog.Error("open order store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	device := printer.NewTCPDevice(printerAddr)
	dispatcher := dispatch.New(st, device)
	go dispatcher.Run(ctx)

	var c cache.Cache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		c = cache.NewRedisCache(redisAddr, "printer-server")
	}

	handler := httpx.NewHandler(st, dispatcher, c, apiKey)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: httpx.NewRouter(handler, apiKey),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("printer-server running",
		"port", port, "db", dbPath, "printer", printerAddr, "idempotency", c != nil)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
