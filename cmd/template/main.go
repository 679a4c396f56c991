package main

import (
	"flag"
	"log"

	"github.com/johnquangdev/mom-service/internal/usecase/document"
	"github.com/johnquangdev/mom-service/pkg/config"
)

func main() {
	path := flag.String("out", "", "where to write the template (defaults to MOM_TEMPLATE_PATH)")
	flag.Parse()

	if *path == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		*path = cfg.Document.TemplatePath
	}

	written, err := document.WriteDefaultTemplate(*path)
	if err != nil {
		log.Fatalf("Failed to create template: %v", err)
	}
	if !written {
		log.Printf("ℹ️  Template already exists at %s, leaving it untouched", *path)
		return
	}
	log.Printf("✅ Template created at %s", *path)
}
