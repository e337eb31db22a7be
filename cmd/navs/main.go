package main

import (
	"log"

	"github.com/MrSnakeDoc/navs/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ navs failed to start: %v", err)
	}
}
