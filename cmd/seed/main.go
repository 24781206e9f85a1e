// Command main runs the database seeder for ForgeHub.
package main

import (
	"flag"
	"log"

	"forgehub/internal/config"
	"forgehub/internal/database"
	"forgehub/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numProjects := flag.Int("projects", 100, "Number of projects to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d projects, clean=%v\n", *numUsers, *numProjects, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	_, err = database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run seeder
	s := seed.NewSeeder(database.DB)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	if _, err := s.SeedAdmin(); err != nil {
		log.Fatalf("❌ Admin seeding failed: %v", err)
	}

	users, projects, err := s.SeedMarketplace(*numUsers, *numProjects)
	if err != nil {
		log.Fatalf("❌ Marketplace seeding failed: %v", err)
	}
	if err := s.SeedEngagement(users, projects); err != nil {
		log.Fatalf("❌ Engagement seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
