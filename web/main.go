package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/df07/go-flatland-raytracer/pkg/scene"
	"github.com/df07/go-flatland-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	staticDir := flag.String("static", "static/", "Directory holding the front end")
	flag.Parse()

	if info, err := os.Stat(*staticDir); err != nil || !info.IsDir() {
		log.Printf("Warning: static directory %q not found, only the API will be served", *staticDir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	webServer := server.NewServer(*port).WithStaticDir(*staticDir)

	log.Printf("Flatland Raytracer Web Server")
	log.Printf("Scenes: %s", strings.Join(scene.ListScenes(), ", "))
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(ctx); err != nil {
		log.Printf("Error running server: %v", err)
		os.Exit(1)
	}
}
