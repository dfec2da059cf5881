package main

import (
	"context"
	"log"
	"time"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/auth"
	"hrm/backend/internal/commands"
	"hrm/backend/internal/pkg/config"
	"hrm/backend/internal/pkg/repository/postgresql"
	"hrm/backend/internal/router"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalln("loading config:", err)
	}

	postgresDB := postgresql.NewDatabase(
		cfg.DBUsername,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DisableTLS,
	)
	defer postgresDB.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = postgresDB.PingContext(pingCtx); err != nil {
		log.Fatalln("pinging postgres:", err)
	}

	commands.MigrateUP(postgresDB)

	var redisDB *redis.Client
	if cfg.RedisAddr != "" {
		redisDB = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisDB.Close()
	}

	a, err := auth.New(cfg.JWTKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		log.Fatalln("configuring auth:", err)
	}

	r := router.NewRouter(web.NewApp(), postgresDB, redisDB, a, cfg)
	if err = r.Init(); err != nil {
		log.Fatalln("running server:", err)
	}
}
