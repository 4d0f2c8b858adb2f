package bot

import (
	"log"
	"sync"
	"time"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/discord"
	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/listabot/components"
	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/listabot/components/audit"
	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/listabot/components/auth"
	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/listabot/components/lists"
	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const commandCooldown = 3 * time.Second

type Config struct {
	Token   string
	AppID   string
	GuildID string // home guild for command registration; empty registers globally
	DB      *gorm.DB
	Redis   *redis.Client
}

type Bot struct {
	session   *discordgo.Session
	db        *gorm.DB
	config    Config
	manager   *lists.Manager
	gate      *auth.Gate
	audit     *audit.Logger
	limiter   *components.RateLimiter
	sweepOnce sync.Once
}

func New(config Config) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		session: dg,
		db:      config.DB,
		config:  config,
		manager: lists.NewManager(config.DB, dg),
		gate:    auth.NewGate(config.DB),
		audit:   audit.New(config.DB, dg, config.Redis),
		limiter: components.NewRateLimiter(commandCooldown),
	}
	bot.limiter.StartCleanup(time.Minute)

	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleInteraction)

	dg.Identify.Intents = discordgo.IntentsGuilds

	return bot, nil
}

func (b *Bot) Start() error {
	return b.session.Open()
}

func (b *Bot) Stop() {
	b.session.Close()
}

func (b *Bot) Manager() *lists.Manager {
	return b.manager
}

func (b *Bot) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("Discord bot logged in as %s", event.User.Username)

	if err := discord.RegisterSlashCommands(s, b.config.AppID, b.config.GuildID); err != nil {
		log.Printf("register slash commands: %v", err)
	}

	// the startup sweep runs once per process; /iniciar_listas re-triggers
	// the same pass on demand
	b.sweepOnce.Do(func() {
		guilds := make([]string, 0, len(event.Guilds))
		for _, g := range event.Guilds {
			guilds = append(guilds, g.ID)
		}
		go b.sweepAll(guilds)
	})
}

func (b *Bot) sweepAll(guildIDs []string) {
	for _, guildID := range guildIDs {
		total, err := b.manager.SweepGuild(guildID)
		if err != nil {
			log.Printf("listas: startup sweep for guild %s: %v", guildID, err)
			continue
		}
		log.Printf("listas: guild %s: %d listas reconciliadas", guildID, total)
	}
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(s, i)
	}
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respondEphemeral(s, i, "Este comando só pode ser usado em um servidor.")
		return
	}

	switch i.ApplicationCommandData().Name {
	case discord.CommandConfig:
		b.handleConfig(s, i)
	case discord.CommandCreateList:
		b.handleCreateList(s, i)
	case discord.CommandAddItem:
		b.handleAddItem(s, i)
	case discord.CommandRemoveItem:
		b.handleRemoveItem(s, i)
	case discord.CommandRemoveList:
		b.handleRemoveList(s, i)
	case discord.CommandInitLists:
		b.handleInitLists(s, i)
	}
}
