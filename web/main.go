package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-direct-raytracer/pkg/config"
	"github.com/df07/go-direct-raytracer/pkg/storage"
	"github.com/df07/go-direct-raytracer/web/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Parse command line flags
	addr := flag.String("addr", cfg.ServerAddress, "Address to serve on")
	flag.Parse()
	cfg.ServerAddress = *addr

	// Uploads are only offered when a bucket is configured
	var sink storage.Sink
	if cfg.S3.Enabled() {
		s3Sink, err := storage.NewS3Sink(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to create S3 session: %v", err)
		}
		sink = s3Sink
		log.Printf("Uploads enabled to bucket %s", cfg.S3.Bucket)
	}

	webServer := server.NewServer(cfg, sink)

	log.Printf("Direct Lighting Raytracer Web Server")
	log.Printf("Try http://localhost%s/api/render?scene=default", cfg.ServerAddress)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
