package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/homemade/pollday/checkin"
	"github.com/homemade/pollday/server"
)

func main() {
	configDoc := flag.String("config-doc", "", "print the CSV documentation for a county config id and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	var sources []checkin.SettingsFile
	if path := os.Getenv("CHECKIN_CONFIG"); path != "" {
		f, err := checkin.ReadSettingsFile(path)
		if err != nil {
			log.Fatalf("failed to read settings file %s: %v", path, err)
		}
		sources = append(sources, f)
	}
	settings, err := checkin.LoadSettings(os.LookupEnv, sources...)
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	client := checkin.NewAirtableClient(settings)
	checker, err := checkin.NewChecker(settings, client, client)
	if err != nil {
		log.Fatalf("failed to create checker: %v", err)
	}

	if *configDoc != "" {
		if err := printConfigDoc(checker, *configDoc); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := runHTTP(settings, checker); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func printConfigDoc(checker *checkin.Checker, configID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), checkin.HTTPRequestTimeout)
	defer cancel()
	record, err := checker.Configs.FindConfig(configID, ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch config %s: %w", configID, err)
	}
	csv, err := checkin.GenerateConfigDocumentation(configID, checkin.TenantConfigFromRecord(record)).FormatCSV()
	if err != nil {
		return err
	}
	fmt.Print(csv)
	return nil
}

func runHTTP(settings checkin.Settings, checker *checkin.Checker) error {
	switch settings.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(settings.Server.Mode)
	default:
		return fmt.Errorf("invalid server mode %q", settings.Server.Mode)
	}

	router := server.NewRouter(checker, server.NewMetrics(prometheus.DefaultRegisterer), prometheus.DefaultGatherer)
	srv := &http.Server{
		Addr:              ":" + settings.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Printf("check-in server listening on %s", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
