package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/edutrack/studentbook/internal/config"
	"github.com/edutrack/studentbook/internal/database"
	"github.com/edutrack/studentbook/internal/logger"
	"github.com/edutrack/studentbook/internal/model"
	"github.com/edutrack/studentbook/internal/repository"
	"github.com/edutrack/studentbook/internal/repository/postgres"
	"github.com/edutrack/studentbook/internal/repository/sqlite"
	"github.com/edutrack/studentbook/internal/service"
)

// Seed data cycles through these addresses.
var addresses = []model.Address{
	{Pincode: "560001", State: "Karnataka", City: "Bengaluru"},
	{Pincode: "110001", State: "Delhi", City: "New Delhi"},
	{Pincode: "400001", State: "Maharashtra", City: "Mumbai"},
	{Pincode: "600001", State: "Tamil Nadu", City: "Chennai"},
	{Pincode: "700001", State: "West Bengal", City: "Kolkata"},
	{Pincode: "500001", State: "Telangana", City: "Hyderabad"},
}

// Names stay within the 3 to 10 character limit the service enforces.
var names = []string{
	"Asha Rao", "Ravi Kumar", "Meera Nair", "Arjun Das", "Divya Iyer",
	"Karan Shah", "Nidhi Jain", "Rahul Sen", "Sneha Paul", "Vikram Rao",
	"Anita Bose", "Deepak Lal", "Farah Khan", "Gopal Das", "Isha Verma",
	"Jaya Menon", "Kiran Seth", "Lata Gupta", "Manoj Roy", "Neha Arora",
	"Om Prakash", "Pooja Soni", "Rohan Jha", "Sunil Negi", "Tara Reddy",
	"Uday Singh", "Vani Menon", "Zoya Ali", "Amit Joshi", "Bina Patel",
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	studentRepo, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to open student store")
	}
	defer closeStore()

	studentService := service.NewStudentService(studentRepo, log)

	fmt.Printf("=== Seeding %d Students ===\n", len(names))

	year := time.Now().Year()
	successCount := 0
	for i, name := range names {
		age := 13 + i%8
		gender := model.GenderMale
		if i%2 != 0 {
			gender = model.GenderFemale
		}

		student := &model.Student{
			Name:    name,
			Address: addresses[i%len(addresses)],
			Age:     age,
			Email:   emailFor(name),
			Mobile:  fmt.Sprintf("9%09d", 100000000+i),
			Gender:  gender,
			DOB:     time.Date(year-age, time.June, 15, 0, 0, 0, 0, time.UTC),
		}

		if err := studentService.CreateStudent(ctx, student); err != nil {
			fmt.Printf("Error creating student %s: %v\n", name, err)
			continue
		}
		successCount++
		if successCount%10 == 0 {
			fmt.Printf("Created %d students...\n", successCount)
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, len(names))
}

func emailFor(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@students.example.edu"
}

// openStore mirrors the server's driver selection for the two durable
// backends. Seeding the memory store would be lost on exit, so it is
// rejected.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.StudentRepository, func(), error) {
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewStudentRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return repo, pool.Close, nil

	case "sqlite":
		db, err := database.NewSQLiteDB(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		repo := sqlite.NewStudentRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return repo, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("store driver %q cannot be seeded", cfg.StoreDriver)
	}
}
