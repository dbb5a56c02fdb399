// Command promote grants the admin role to a user by email address. It is
// used to bootstrap the first admin user.
//
// Usage:
//
//	promote --email=user@example.com
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/healthtrack-backend/internal/app"
	"github.com/heartmarshall/healthtrack-backend/internal/config"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	usersvc "github.com/heartmarshall/healthtrack-backend/internal/service/user"
)

func main() {
	email := flag.String("email", "", "email of user to promote to admin")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --email=user@example.com")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := usersvc.NewService(logger, user.New(pool), token.New(pool), nil)
	u, err := svc.Promote(ctx, *email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "No user found with email %q.\n", *email)
		} else {
			logger.Error("promote failed", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}

	fmt.Printf("User %q is admin.\n", u.Email)
}
