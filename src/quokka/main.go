package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quokka-chat/quokka-bot/src/quokka/api"
	"github.com/quokka-chat/quokka-bot/src/quokka/bot"
	"github.com/quokka-chat/quokka-bot/src/quokka/config"
	"github.com/quokka-chat/quokka-bot/src/quokka/data"
)

func main() {
	cfg := config.Load()

	if cfg.Token == "" {
		log.Fatal("BOT_TOKEN not set")
	}
	if cfg.GuildID == "" {
		log.Fatal("SERVER_ID not set")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = data.MustRedis(cfg.RedisURL)
	}

	b, err := bot.New(bot.Config{
		Token:                 cfg.Token,
		GuildID:               cfg.GuildID,
		SubmissionChannelID:   cfg.SubmissionChannelID,
		NotificationChannelID: cfg.NotificationChannelID,
		ModeratorRoleIDs:      cfg.ModeratorRoleIDs,
		AdminRoleID:           cfg.AdminRoleID,
		GradientRoleID:        cfg.GradientRoleID,
		GradientColors:        cfg.GradientColors,
		GradientSteps:         cfg.GradientSteps,
		Prefix:                cfg.Prefix,
		MistralAPIKey:         cfg.MistralAPIKey,
		Redis:                 rdb,
	})
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	if err := b.Start(); err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}

	if cfg.APIBind != "" {
		if cfg.JWTSecret == "" {
			log.Fatal("JWT_SECRET not set while API_BIND is configured")
		}
		router := api.New([]byte(cfg.JWTSecret), b.Ledger(), b.Registry())
		httpSrv := &http.Server{
			Addr:         cfg.APIBind,
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		}
		go func() {
			log.Printf("Moderation API listening on %s", cfg.APIBind)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("API server: %v", err)
			}
		}()
	}

	log.Println("QUOKKA bot is running. Press CTRL-C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	b.Stop()
	log.Println("QUOKKA bot stopped gracefully")
}
