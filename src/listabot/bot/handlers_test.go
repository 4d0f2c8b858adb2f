package bot

import (
	"testing"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/discord"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func configInvocation(sub string) discordgo.ApplicationCommandInteractionData {
	return discordgo.ApplicationCommandInteractionData{
		Name: discord.CommandConfig,
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: sub, Type: discordgo.ApplicationCommandOptionSubCommand},
		},
	}
}

func TestReadOnlySkipsCooldownForConfigShow(t *testing.T) {
	assert.True(t, readOnly(configInvocation(discord.SubShow)))
}

func TestReadOnlyKeepsCooldownForMutations(t *testing.T) {
	for _, sub := range []string{
		discord.SubAddListChannel,
		discord.SubRemoveListChann,
		discord.SubSetLogChannel,
		discord.SubAddRole,
		discord.SubRemoveRole,
	} {
		assert.False(t, readOnly(configInvocation(sub)), sub)
	}

	assert.False(t, readOnly(discordgo.ApplicationCommandInteractionData{Name: discord.CommandAddItem}))
	assert.False(t, readOnly(discordgo.ApplicationCommandInteractionData{Name: discord.CommandRemoveList}))
	assert.False(t, readOnly(discordgo.ApplicationCommandInteractionData{Name: discord.CommandConfig}))
}
