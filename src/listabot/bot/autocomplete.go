package bot

import (
	"log"
	"strings"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/discord"
	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/listabot/components/lists"
	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != discord.CommandAddItem && data.Name != discord.CommandRemoveItem {
		return
	}

	var focused *discordgo.ApplicationCommandInteractionDataOption
	for _, opt := range data.Options {
		if opt.Focused {
			focused = opt
			break
		}
	}
	if focused == nil {
		return
	}

	var values []string
	var err error
	switch focused.Name {
	case "lista":
		values, err = b.manager.Store().ListNames(i.GuildID, i.ChannelID)
	case "item":
		lista := ""
		if opt, ok := optionMap(data.Options)["lista"]; ok {
			lista = opt.StringValue()
		}
		coord := lists.Coord{GuildID: i.GuildID, ChannelID: i.ChannelID, Name: lista}
		values, err = b.manager.Store().ItemNames(coord)
	default:
		return
	}
	if err != nil {
		log.Printf("listas: autocomplete %s: %v", focused.Name, err)
		return
	}

	choices := filterChoices(values, focused.StringValue())
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
}

// filterChoices keeps values containing the typed text, case-insensitively,
// capped at the platform's 25-choice limit.
func filterChoices(values []string, current string) []*discordgo.ApplicationCommandOptionChoice {
	needle := strings.ToLower(current)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, discord.MaxChoiceSuggestion)
	for _, v := range values {
		if needle != "" && !strings.Contains(strings.ToLower(v), needle) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  v,
			Value: v,
		})
		if len(choices) == discord.MaxChoiceSuggestion {
			break
		}
	}
	return choices
}
