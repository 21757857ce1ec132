package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/orderdesk-backend/internal/auth"
	"github.com/angelmondragon/orderdesk-backend/pkg/config"
	"github.com/angelmondragon/orderdesk-backend/pkg/db"
	"github.com/angelmondragon/orderdesk-backend/pkg/logger"
	"github.com/angelmondragon/orderdesk-backend/pkg/security"
)

const generatedPasswordLength = 16

func main() {
	logg := logger.New(logger.Options{ServiceName: "create-admin"})
	_ = godotenv.Load()

	name := flag.String("name", "Administrator", "display name")
	username := flag.String("username", "", "login name (required)")
	email := flag.String("email", "", "optional email")
	password := flag.String("password", "", "password; generated and printed when empty")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "missing -username")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "create-admin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})
	ctx := logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env, "username": *username})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	generated := *password == ""
	if generated {
		*password, err = security.GenerateTempPassword(generatedPasswordLength)
		if err != nil {
			logg.Error(ctx, "failed to generate password", err)
			os.Exit(1)
		}
	}

	svc, err := auth.NewAdminRegisterService(auth.AdminRegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(ctx, "failed to create admin register service", err)
		os.Exit(1)
	}

	req := auth.AdminRegisterRequest{Name: *name, Username: *username, Password: *password}
	if *email != "" {
		req.Email = email
	}
	user, err := svc.Register(ctx, req)
	if err != nil {
		logg.Error(ctx, "failed to create admin", err)
		os.Exit(1)
	}

	fmt.Printf("created admin %s (id %d)\n", user.Username, user.ID)
	if generated {
		fmt.Println("password:", *password)
	}
}
