package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/df07/go-weekend-raytracer/pkg/config"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/web/server"
)

func main() {
	envFile := flag.String("env", ".env", "Path to a .env file with RT_* settings")
	addr := flag.String("addr", "", "Address to serve on (overrides RT_SERVER_ADDRESS)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *addr != "" {
		cfg.ServerAddress = *addr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var sinks output.MultiSink
	if cfg.Output != "" {
		sinks = append(sinks, output.NewFileSink(filepath.Dir(cfg.Output)))
	}
	if cfg.S3Enabled() {
		client, err := output.NewS3Client(output.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			log.Fatalf("Failed to create S3 client: %v", err)
		}
		sinks = append(sinks, output.NewS3Sink(client, cfg.S3Bucket, cfg.S3Prefix))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("Weekend Raytracer Web Server")
	log.Printf("Render with GET %s/api/render?scene=%s", cfg.ServerAddress, cfg.Scene)

	var sink output.Sink
	if len(sinks) > 0 {
		sink = sinks
	}

	if err := server.NewServer(cfg, sink).Start(ctx); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
