package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/service"
	"notekeeper-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds the default category set for an existing user. Safe to run twice:
// categories that already exist by name are left alone.
func main() {
	email := flag.String("email", "", "email of the user to seed categories for")
	flag.Parse()

	if *email == "" {
		log.Fatal("Error: -email is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	allocator := service.NewSlugAllocator()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: *email})
	if err != nil {
		log.Fatalf("Error: Failed to look up user: %v", err)
	}
	if user == nil {
		color.Red("No user found with email %s", *email)
		os.Exit(1)
	}

	created, skipped := 0, 0
	for _, dc := range service.DefaultCategories {
		existing, err := uow.CategoryRepository().Count(ctx,
			specification.OwnedBy{UserID: user.Id},
			specification.ByName{Name: dc.Name},
		)
		if err != nil {
			log.Fatalf("Error: Failed to check category %q: %v", dc.Name, err)
		}
		if existing > 0 {
			color.Yellow("skip    %-16s (already exists)", dc.Name)
			skipped++
			continue
		}

		slugValue, err := allocator.Allocate(ctx, uow.CategoryRepository(), user.Id, dc.Name, nil)
		if err != nil {
			log.Fatalf("Error: Failed to allocate slug for %q: %v", dc.Name, err)
		}

		category := &entity.Category{
			Id:        uuid.New(),
			Name:      dc.Name,
			Slug:      slugValue,
			Color:     dc.Color,
			UserId:    user.Id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := uow.CategoryRepository().Create(ctx, category); err != nil {
			log.Fatalf("Error: Failed to create category %q: %v", dc.Name, err)
		}
		color.Green("create  %-16s %s (%s)", dc.Name, dc.Color, slugValue)
		created++
	}

	color.Cyan("Done: %d created, %d skipped for %s", created, skipped, user.Email)
}
