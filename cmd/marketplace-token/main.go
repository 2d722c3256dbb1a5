// Command marketplace-token issues bearer tokens for local development
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"marketplace-bidding-service/internal/adapters/httpapi"
	"marketplace-bidding-service/internal/config"
	"marketplace-bidding-service/internal/domain/shared"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	flags := pflag.NewFlagSet("marketplace-token", pflag.ExitOnError)
	config.RegisterFlags(flags)
	userID := flags.String("user", "", "user id to put in the subject claim (default: random)")
	role := flags.String("role", string(shared.RoleContractor), "one of project_poster, contractor, admin")
	ttl := flags.Duration("ttl", 24*time.Hour, "token lifetime")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.LoadConfig(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}

	id := uuid.New()
	if *userID != "" {
		id, err = uuid.Parse(*userID)
		if err != nil {
			log.Fatal().Err(err).Str("user", *userID).Msg("Invalid user id")
		}
	}

	auth := httpapi.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	token, err := auth.Issue(shared.Actor{ID: id, Role: shared.Role(*role)}, *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to issue token")
	}

	log.Info().Str("user_id", id.String()).Str("role", *role).Dur("ttl", *ttl).Msg("Token issued")
	fmt.Println(token)
}
