package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/sam12-4/liquor-online/pkg/cart"
	"github.com/sam12-4/liquor-online/pkg/catalog"
	"github.com/sam12-4/liquor-online/pkg/common"
	"github.com/sam12-4/liquor-online/pkg/config"
	"github.com/sam12-4/liquor-online/pkg/server"
	"github.com/sam12-4/liquor-online/pkg/storage"
	catalogsync "github.com/sam12-4/liquor-online/pkg/sync"
	"github.com/sam12-4/liquor-online/pkg/tracking"
)

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

	if cfg.CatalogUrl != "" {
		client := catalog.NewClient(cfg.CatalogUrl)
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := client.LoadInto(ctx, snapshot); err != nil {
			log.Printf("Failed to load catalog from %s: %v", cfg.CatalogUrl, err)
		} else if err := diskStorage.SaveSnapshot(snapshot); err != nil {
			log.Printf("Failed to save catalog snapshot: %v", err)
		}
		cancel()
	}
	log.Printf("Catalog ready with %d products", snapshot.ProductCount())

	var trk tracking.Tracking = tracking.Noop{}
	if cfg.RabbitUrl != "" {
		rabbitTracking, err := tracking.NewRabbitTracking(cfg.RabbitUrl)
		if err != nil {
			log.Printf("Tracking disabled, no broker connection: %v", err)
		} else {
			trk = rabbitTracking
		}

		listener := catalogsync.NewCatalogListener(snapshot, diskStorage, cfg.TopicPrefix)
		if err := listener.Connect(cfg.RabbitUrl); err != nil {
			log.Printf("Catalog change listener disabled: %v", err)
		}
	}

	webServer := &server.WebServer{
		Snapshot: snapshot,
		Tracking: trk,
		CacheTtl: cfg.CacheTtl,
	}

	var cartStorage cart.Storage = cart.NewDiskStorage(cfg.DataPath)
	if cfg.RedisAddr != "" {
		webServer.Cache = server.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDb)
		cartStorage = cart.NewRedisStorage(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDb, cfg.CartTtl)
	}

	cartServer := &cart.Server{
		Storage:  cartStorage,
		Snapshot: snapshot,
		Tracking: trk,
	}

	mux := http.NewServeMux()
	webServer.Routes(mux)
	mux.HandleFunc("GET /api/cart", cartServer.GetCart)
	mux.HandleFunc("POST /api/cart/items", cartServer.AddItem)
	mux.HandleFunc("PUT /api/cart/items", cartServer.ChangeQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{id}", cartServer.RemoveItem)
	mux.HandleFunc("DELETE /api/cart", cartServer.ClearCart)
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
	common.RunServerWithShutdown(httpServer, "storefront", cfg.ShutdownTimeout, 5*time.Second, saveHook)
}
