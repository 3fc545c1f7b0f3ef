package main

import (
	"log"

	"linkherald/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ linkherald failed to start: %v", err)
	}
}
