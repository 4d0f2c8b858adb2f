package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/listabot/bot"
	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/listabot/config"
	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/listabot/webserver"
	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/shared/data"
)

func main() {
	// Connect to database first
	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		mysqlDSN = "listabot:listabot@tcp(127.0.0.1:3306)/listabot"
	}

	db := data.MustMySQL(mysqlDSN)

	if err := data.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cfg := config.Load(db)
	if cfg.Token == "" {
		log.Fatal("DISCORD_TOKEN not set in database or environment")
	}

	rdb := data.MustRedis(cfg.RedisURL)

	b, err := bot.New(bot.Config{
		Token:   cfg.Token,
		AppID:   cfg.AppID,
		GuildID: cfg.GuildID,
		DB:      db,
		Redis:   rdb,
	})
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	if err := b.Start(); err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}

	if cfg.APIAddr != "" {
		go func() {
			if err := webserver.New(db).Run(cfg.APIAddr); err != nil {
				log.Printf("webserver: %v", err)
			}
		}()
	}

	log.Println("List bot is running. Press CTRL-C to exit.")

	// Wait for interrupt
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	b.Stop()
	log.Println("List bot stopped gracefully")
}
