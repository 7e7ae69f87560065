// Command schema-generator writes the config file JSON Schema for editors
// (taplo, yaml-language-server) to file-preview.schema.json.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/file-preview/config"
)

func main() {
	out := flag.String("o", "file-preview.schema.json", "output path")
	flag.Parse()

	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Error creating schema directory: %v", err)
		}
	}

	if err := os.WriteFile(*out, append(schemaBytes, '\n'), 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated config schema at %s", *out)
}
