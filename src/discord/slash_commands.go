package discord

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	CommandConfig       = "config"
	CommandCreateList   = "criar_lista"
	CommandAddItem      = "adicionar_item"
	CommandRemoveItem   = "remover_item"
	CommandRemoveList   = "remover_lista"
	CommandInitLists    = "iniciar_listas"
	SubAddListChannel   = "adicionar_canal_lista"
	SubRemoveListChann  = "remover_canal_lista"
	SubSetLogChannel    = "definir_canal_logs"
	SubAddRole          = "adicionar_cargo"
	SubRemoveRole       = "remover_cargo"
	SubShow             = "show"
	MaxChoiceSuggestion = 25
)

var adminOnly = int64(discordgo.PermissionAdministrator)

var commandDefinitions = map[string]*discordgo.ApplicationCommand{
	CommandConfig: {
		Name:        CommandConfig,
		Description: "Comandos de configuração do bot",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubShow,
				Description: "Mostra as configurações atuais do bot",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubAddListChannel,
				Description: "Autoriza um canal para usar listas",
				Options: []*discordgo.ApplicationCommandOption{
					channelOption("canal", "Canal a autorizar"),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubRemoveListChann,
				Description: "Revoga permissão de canal para listas",
				Options: []*discordgo.ApplicationCommandOption{
					channelOption("canal", "Canal a revogar"),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubSetLogChannel,
				Description: "Define o canal para logs do bot",
				Options: []*discordgo.ApplicationCommandOption{
					channelOption("canal", "Canal de logs"),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubAddRole,
				Description: "Adiciona cargo permitido para usar comandos",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "cargo",
						Description: "Cargo a permitir",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubRemoveRole,
				Description: "Remove cargo permitido",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "cargo",
						Description: "Cargo a remover",
						Required:    true,
					},
				},
			},
		},
	},
	CommandCreateList: {
		Name:        CommandCreateList,
		Description: "Cria nova lista (ou mostra a existente)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "nome",
				Description: "Nome da lista",
				Required:    true,
			},
		},
	},
	CommandAddItem: {
		Name:        CommandAddItem,
		Description: "Adiciona item na lista",
		Options:     itemCommandOptions(),
	},
	CommandRemoveItem: {
		Name:        CommandRemoveItem,
		Description: "Remove item da lista",
		Options:     itemCommandOptions(),
	},
	CommandRemoveList: {
		Name:        CommandRemoveList,
		Description: "Remove toda uma lista e seus itens",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "nome",
				Description: "Nome da lista a remover",
				Required:    true,
			},
		},
	},
	CommandInitLists: {
		Name:                     CommandInitLists,
		Description:              "(Re)publica todos os embeds de lista",
		DefaultMemberPermissions: &adminOnly,
	},
}

var defaultCommandOrder = []string{
	CommandConfig,
	CommandCreateList,
	CommandAddItem,
	CommandRemoveItem,
	CommandRemoveList,
	CommandInitLists,
}

func channelOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionChannel,
		Name:        name,
		Description: description,
		Required:    true,
		ChannelTypes: []discordgo.ChannelType{
			discordgo.ChannelTypeGuildText,
		},
	}
}

func itemCommandOptions() []*discordgo.ApplicationCommandOption {
	minQty := float64(1)
	return []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "lista",
			Description:  "Nome da lista",
			Required:     true,
			Autocomplete: true,
		},
		{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "item",
			Description:  "Nome do item",
			Required:     true,
			Autocomplete: true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "quantidade",
			Description: "Quantidade",
			MinValue:    &minQty,
		},
	}
}

// RegisterSlashCommands registers the requested slash commands. With an
// empty guildID the commands are registered globally. When no command names
// are provided, all known commands are registered.
func RegisterSlashCommands(s *discordgo.Session, appID, guildID string, names ...string) error {
	if appID == "" {
		appID = s.State.User.ID
	}

	if len(names) == 0 {
		names = defaultCommandOrder
	}

	var failures []string
	for _, name := range names {
		definition, ok := commandDefinitions[name]
		if !ok {
			log.Printf("discord: unknown slash command %q", name)
			continue
		}

		_, err := s.ApplicationCommandCreate(appID, guildID, definition)
		if err != nil {
			if isDuplicateCommandError(err) {
				log.Printf("discord: slash command %q already registered", name)
				continue
			}
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			log.Printf("discord: failed to register command %q: %v", name, err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("discord: slash command registration errors: %s", strings.Join(failures, "; "))
	}

	return nil
}

// DeleteSlashCommands removes all registered slash commands for a guild.
func DeleteSlashCommands(s *discordgo.Session, appID, guildID string) error {
	if appID == "" {
		appID = s.State.User.ID
	}

	commands, err := s.ApplicationCommands(appID, guildID)
	if err != nil {
		return err
	}

	for _, cmd := range commands {
		if err := s.ApplicationCommandDelete(appID, guildID, cmd.ID); err != nil {
			return err
		}
	}

	return nil
}

func isDuplicateCommandError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			msg := strings.ToLower(restErr.Message.Message)
			if strings.Contains(msg, "already exists") {
				return true
			}
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "50035") && strings.Contains(msg, "already exists")
}
