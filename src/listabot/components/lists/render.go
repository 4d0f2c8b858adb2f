package lists

import (
	"fmt"
	"strings"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/shared/types"
	"github.com/bwmarrin/discordgo"
)

const (
	embedColor = 0x5865f2

	// EmptyListText is the body rendered when a list has no items.
	EmptyListText = "Sem itens."

	footerText = "Use /adicionar_item, /remover_item ou /remover_lista aqui."
)

// Render builds the embed for a list. Pure: any item slice, including an
// empty one, is valid input.
func Render(listName string, items []types.Item) *discordgo.MessageEmbed {
	description := EmptyListText
	if len(items) > 0 {
		lines := make([]string, len(items))
		for i, it := range items {
			lines[i] = fmt.Sprintf("`[%d]` %s — %d", it.ItemID, it.Name, it.Qty)
		}
		description = strings.Join(lines, "\n")
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Lista: %s", listName),
		Description: description,
		Color:       embedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
}
