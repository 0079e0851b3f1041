// Command main runs the database seeder for Tradepost.
package main

import (
	"flag"
	"log"

	"tradepost/internal/config"
	"tradepost/internal/database"
	"tradepost/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numItems := flag.Int("items", 100, "Number of items to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d items, clean=%v\n", *numUsers, *numItems, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(seed.Options{NumUsers: *numUsers, NumItems: *numItems}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
