package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/models"
	"github.com/campusprint/printqueue/internal/repositories"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Seeds the two demo accounts: staff/staff123 and student/student123.
func main() {
	configPath := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()

	if err := run(context.Background(), *configPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	fmt.Println("Seeding complete")
}

func run(ctx context.Context, configPath string) error {
	_ = godotenv.Load(configPath)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	pgPort, err := strconv.Atoi(getEnv("POSTGRES_PORT", "5432"))
	if err != nil {
		return err
	}
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		getEnv("POSTGRES_USER", "user"),
		getEnv("POSTGRES_PASSWORD", "password"),
		getEnv("POSTGRES_HOST", "localhost"),
		pgPort,
		getEnv("POSTGRES_DB", "printqueue"),
	)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.EnsureSchema(ctx, db); err != nil {
		return err
	}

	if err := logger.Initialize("warn"); err != nil {
		return err
	}

	reader := repositories.NewUserReadRepository(db)
	writer := repositories.NewUserWriteRepository(db)

	accounts := []struct {
		username string
		password string
		name     string
		role     string
	}{
		{"staff", "staff123", "Stationery Staff", models.RoleStaff},
		{"student", "student123", "John Student", models.RoleStudent},
	}

	for _, a := range accounts {
		existing, err := reader.GetByUsername(ctx, a.username)
		if err != nil {
			return err
		}
		if existing != nil {
			fmt.Printf("User %q already exists, skipping\n", a.username)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := writer.Create(ctx, a.username, string(hashed), a.name, nil, a.role); err != nil {
			return err
		}
		fmt.Printf("Created %s user: %s / %s\n", a.role, a.username, a.password)
	}

	return nil
}
