package config

import (
	"log"
	"os"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/shared/data"
	"gorm.io/gorm"
)

type Config struct {
	Token    string
	AppID    string
	GuildID  string // home guild; empty means global command registration
	MySQLDSN string
	RedisURL string
	APIAddr  string // empty disables the read-only HTTP API
}

func Load(db *gorm.DB) Config {
	// Load settings from database
	if err := data.LoadSettings(db); err != nil {
		log.Printf("Failed to load settings: %v", err)
	}

	// Get values from database with env fallbacks
	token := data.GetSetting("discord_token")
	if token == "" {
		token = os.Getenv("DISCORD_TOKEN")
	}

	appID := data.GetSetting("discord_app_id")
	if appID == "" {
		appID = os.Getenv("DISCORD_APP_ID")
	}

	guildID := data.GetSetting("guild_id")
	if guildID == "" {
		guildID = os.Getenv("GUILD_ID")
	}

	return Config{
		Token:    token,
		AppID:    appID,
		GuildID:  guildID,
		MySQLDSN: getenv("MYSQL_DSN", "listabot:listabot@tcp(127.0.0.1:3306)/listabot"),
		RedisURL: getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		APIAddr:  os.Getenv("API_ADDR"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
