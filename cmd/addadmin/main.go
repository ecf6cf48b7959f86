package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"contesthub/config"
	"contesthub/db"
	"contesthub/models"
)

func main() {
	email := flag.String("email", "", "User email (required)")
	name := flag.String("name", "", "Name used when the user does not exist yet")
	role := flag.String("role", "admin", "Role to grant")
	configPath := flag.String("config", config.Path(), "Path to config file")
	flag.Parse()

	if *email == "" {
		fmt.Println("Error: email is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.Driver != config.DriverMongo {
		log.Fatalf("Roles can only be granted on the mongo driver, got %q", cfg.Database.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, database, err := db.ConnectMongoDB(ctx, cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	store := db.NewMongoStore(database, db.Collections{
		Users:       cfg.Database.Collections.Users,
		Contests:    cfg.Database.Collections.Contests,
		Submissions: cfg.Database.Collections.Submissions,
	})

	result, err := grantRole(ctx, store, *email, *name, *role)
	if err != nil {
		log.Fatalf("Failed to grant role: %v", err)
	}

	if result.UpsertedCount > 0 {
		fmt.Printf("Created %s with role %s (id %v)\n", *email, *role, result.UpsertedID)
		return
	}
	fmt.Printf("Granted role %s to %s\n", *role, *email)
}

// grantRole sets the role of the user with email, keeping the rest of the
// profile. A missing user is created with name.
func grantRole(ctx context.Context, users db.UserStore, email, name, role string) (*models.UpdateResult, error) {
	user, err := users.FindUserByEmail(ctx, email)
	switch {
	case errors.Is(err, db.ErrNotFound):
		user = &models.User{Name: name, Email: email}
	case err != nil:
		return nil, err
	}
	user.Role = role
	return users.UpsertUserByEmail(ctx, email, user)
}
