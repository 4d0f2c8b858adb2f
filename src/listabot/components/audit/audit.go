package audit

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/discord"
	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/shared/data"
	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/shared/types"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Logger fans successful state changes out to the guild's configured log
// channel and mirrors them on the redis audit stream. Delivery failures are
// logged and swallowed; they must never fail the command that produced them.
type Logger struct {
	db        *gorm.DB
	messenger discord.Messenger
	rdb       *redis.Client
}

func New(db *gorm.DB, messenger discord.Messenger, rdb *redis.Client) *Logger {
	return &Logger{db: db, messenger: messenger, rdb: rdb}
}

func (l *Logger) Log(guildID, content string) {
	if l.rdb != nil {
		payload := map[string]interface{}{
			"guild_id": guildID,
			"content":  content,
			"time":     time.Now().Unix(),
		}
		if err := data.PublishAudit(context.Background(), l.rdb, payload); err != nil {
			log.Printf("audit: publish stream: %v", err)
		}
	}

	var gs types.GuildSetting
	if err := l.db.First(&gs, "guild_id = ?", guildID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("audit: load settings for guild %s: %v", guildID, err)
		}
		return
	}
	if gs.LogChannelID == "" {
		return
	}

	if _, err := l.messenger.ChannelMessageSend(gs.LogChannelID, content); err != nil {
		log.Printf("audit: send to channel %s: %v", gs.LogChannelID, err)
	}
}
