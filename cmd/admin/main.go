package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/sam12-4/liquor-online/pkg/catalog"
	"github.com/sam12-4/liquor-online/pkg/common"
	"github.com/sam12-4/liquor-online/pkg/config"
	"github.com/sam12-4/liquor-online/pkg/messaging"
	"github.com/sam12-4/liquor-online/pkg/server"
	"github.com/sam12-4/liquor-online/pkg/storage"
	"github.com/sam12-4/liquor-online/pkg/tracking"
)

// The admin binary carries the write surface plus the same listing/facet
// endpoints the back-office product filter panel uses.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	snapshot := catalog.NewSnapshot()
	diskStorage := storage.NewDiskStorage(cfg.DataPath)

	if diskStorage.HasSnapshot() {
		if err := diskStorage.LoadSnapshot(snapshot); err != nil {
			log.Printf("Failed to load catalog snapshot from disk: %v", err)
		}
	}

	if cfg.CatalogUrl != "" && snapshot.ProductCount() == 0 {
		client := catalog.NewClient(cfg.CatalogUrl)
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := client.LoadInto(ctx, snapshot); err != nil {
			log.Printf("Failed to load catalog from %s: %v", cfg.CatalogUrl, err)
		}
		cancel()
	}

	adminServer := &server.AdminServer{
		Snapshot: snapshot,
		Storage:  diskStorage,
	}
	if cfg.RabbitUrl != "" {
		publisher, err := messaging.NewRabbitPublisher(cfg.RabbitUrl, cfg.TopicPrefix)
		if err != nil {
			log.Fatalf("Failed to connect to broker: %v", err)
		}
		defer publisher.Close()
		adminServer.Publisher = publisher
	}
	if cfg.RedisAddr != "" {
		adminServer.Cache = server.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDb)
	}

	webServer := &server.WebServer{
		Snapshot: snapshot,
		Tracking: tracking.Noop{},
	}

	mux := http.NewServeMux()
	adminServer.Routes(mux)
	webServer.Routes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := cors.New(cors.Options{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(mux)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	saveHook := func(ctx context.Context) error {
		return diskStorage.SaveSnapshot(snapshot)
	}
	common.RunServerWithShutdown(httpServer, "admin", cfg.ShutdownTimeout, 5*time.Second, saveHook)
}
