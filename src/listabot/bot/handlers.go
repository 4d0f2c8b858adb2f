package bot

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/discord"
	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/listabot/components/auth"
	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/listabot/components/lists"
	"github.com/bwmarrin/discordgo"
)

const (
	msgMissingPermission = "Você não tem permissão para usar este comando."
	msgChannelNotAllowed = "❌ Este canal não está autorizado para uso de listas."
	msgGenericFailure    = "❌ Ocorreu um erro ao executar o comando."
)

// readOnly reports whether an invocation only reads state. Read-only
// commands skip the cooldown; the limiter exists to damp bursts of
// message-editing mutations, not lookups.
func readOnly(data discordgo.ApplicationCommandInteractionData) bool {
	if data.Name != discord.CommandConfig {
		return false
	}
	return len(data.Options) > 0 && data.Options[0].Name == discord.SubShow
}

// checkAccess runs the cooldown, permission and list-channel gates, in that
// order, answering the user ephemerally on the first failure. No gate
// mutates state.
func (b *Bot) checkAccess(s *discordgo.Session, i *discordgo.InteractionCreate, needListChannel bool) bool {
	if !readOnly(i.ApplicationCommandData()) && !b.limiter.CanUse(i.GuildID, i.Member.User.ID) {
		wait := b.limiter.TimeUntilNext(i.GuildID, i.Member.User.ID)
		respondEphemeral(s, i, fmt.Sprintf("Aguarde %.0fs para usar este comando novamente.", wait.Seconds()))
		return false
	}

	if err := b.gate.CheckPermission(i.GuildID, i.Member); err != nil {
		if errors.Is(err, auth.ErrMissingPermission) {
			respondEphemeral(s, i, msgMissingPermission)
		} else {
			log.Printf("listas: permission check: %v", err)
			respondEphemeral(s, i, msgGenericFailure)
		}
		return false
	}

	if needListChannel {
		if err := b.gate.EnsureListChannel(i.GuildID, i.ChannelID); err != nil {
			if errors.Is(err, auth.ErrChannelNotAllowed) {
				respondEphemeral(s, i, msgChannelNotAllowed)
			} else {
				log.Printf("listas: list channel check: %v", err)
				respondEphemeral(s, i, msgGenericFailure)
			}
			return false
		}
	}

	return true
}

func (b *Bot) handleConfig(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.checkAccess(s, i, false) {
		return
	}

	store := b.manager.Store()
	sub := i.ApplicationCommandData().Options[0]
	user := i.Member.User.Mention()

	switch sub.Name {
	case discord.SubShow:
		b.handleConfigShow(s, i)

	case discord.SubAddListChannel:
		canal := sub.Options[0].ChannelValue(s)
		if err := store.AddListChannel(i.GuildID, canal.ID); err != nil {
			log.Printf("listas: add list channel: %v", err)
			respondEphemeral(s, i, msgGenericFailure)
			return
		}
		respondEphemeral(s, i, fmt.Sprintf("✅ Canal <#%s> autorizado para listas.", canal.ID))
		b.audit.Log(i.GuildID, fmt.Sprintf("🔧 Canal autorizado para listas: <#%s> por %s", canal.ID, user))

	case discord.SubRemoveListChann:
		canal := sub.Options[0].ChannelValue(s)
		if err := store.RemoveListChannel(i.GuildID, canal.ID); err != nil {
			log.Printf("listas: remove list channel: %v", err)
			respondEphemeral(s, i, msgGenericFailure)
			return
		}
		respondEphemeral(s, i, fmt.Sprintf("❌ Canal <#%s> removido das listas.", canal.ID))
		b.audit.Log(i.GuildID, fmt.Sprintf("🔧 Canal removido das listas: <#%s> por %s", canal.ID, user))

	case discord.SubSetLogChannel:
		canal := sub.Options[0].ChannelValue(s)
		if err := store.SetLogChannel(i.GuildID, canal.ID); err != nil {
			log.Printf("listas: set log channel: %v", err)
			respondEphemeral(s, i, msgGenericFailure)
			return
		}
		respondEphemeral(s, i, fmt.Sprintf("✅ Canal de logs definido: <#%s>", canal.ID))
		b.audit.Log(i.GuildID, fmt.Sprintf("🔧 Canal de logs definido: <#%s> por %s", canal.ID, user))

	case discord.SubAddRole:
		cargo := sub.Options[0].RoleValue(s, i.GuildID)
		if err := store.AddAllowedRole(i.GuildID, cargo.ID); err != nil {
			log.Printf("listas: add allowed role: %v", err)
			respondEphemeral(s, i, msgGenericFailure)
			return
		}
		respondEphemeral(s, i, fmt.Sprintf("✅ Cargo <@&%s> permitido", cargo.ID))
		b.audit.Log(i.GuildID, fmt.Sprintf("🔧 Cargo permitido adicionado: <@&%s> por %s", cargo.ID, user))

	case discord.SubRemoveRole:
		cargo := sub.Options[0].RoleValue(s, i.GuildID)
		if err := store.RemoveAllowedRole(i.GuildID, cargo.ID); err != nil {
			log.Printf("listas: remove allowed role: %v", err)
			respondEphemeral(s, i, msgGenericFailure)
			return
		}
		respondEphemeral(s, i, fmt.Sprintf("❌ Cargo <@&%s> removido", cargo.ID))
		b.audit.Log(i.GuildID, fmt.Sprintf("🔧 Cargo permitido removido: <@&%s> por %s", cargo.ID, user))
	}
}

func (b *Bot) handleConfigShow(s *discordgo.Session, i *discordgo.InteractionCreate) {
	store := b.manager.Store()

	channels, err := store.ListChannels(i.GuildID)
	if err != nil {
		log.Printf("listas: load list channels: %v", err)
		respondEphemeral(s, i, msgGenericFailure)
		return
	}
	roles, err := store.AllowedRoles(i.GuildID)
	if err != nil {
		log.Printf("listas: load allowed roles: %v", err)
		respondEphemeral(s, i, msgGenericFailure)
		return
	}
	logChannel, err := store.LogChannel(i.GuildID)
	if err != nil {
		log.Printf("listas: load log channel: %v", err)
		respondEphemeral(s, i, msgGenericFailure)
		return
	}

	canais := "Nenhum"
	if len(channels) > 0 {
		mentions := make([]string, len(channels))
		for idx, id := range channels {
			mentions[idx] = fmt.Sprintf("<#%s>", id)
		}
		canais = strings.Join(mentions, ", ")
	}

	logs := "Não definido"
	if logChannel != "" {
		logs = fmt.Sprintf("<#%s>", logChannel)
	}

	cargos := "Nenhum"
	if len(roles) > 0 {
		mentions := make([]string, len(roles))
		for idx, id := range roles {
			mentions[idx] = fmt.Sprintf("<@&%s>", id)
		}
		cargos = strings.Join(mentions, ", ")
	}

	embed := &discordgo.MessageEmbed{
		Title: "Configurações do Bot",
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Canais de Listas", Value: canais},
			{Name: "Canal de Logs", Value: logs},
			{Name: "Cargos Permitidos", Value: cargos},
		},
	}
	respondEmbedEphemeral(s, i, embed)
}

func (b *Bot) handleCreateList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.checkAccess(s, i, true) {
		return
	}

	nome := optionMap(i.ApplicationCommandData().Options)["nome"].StringValue()
	coord := lists.Coord{GuildID: i.GuildID, ChannelID: i.ChannelID, Name: nome}

	created, err := b.manager.CreateList(coord)
	if err != nil {
		log.Printf("listas: criar_lista %q: %v", nome, err)
		respondEphemeral(s, i, msgGenericFailure)
		return
	}

	if !created {
		// list already has a live message; show it instead of re-publishing
		if msg, err := b.manager.Reconciler().LiveMessage(coord); err == nil && msg != nil && len(msg.Embeds) > 0 {
			respondEmbedEphemeral(s, i, msg.Embeds[0])
			return
		}
		respondEphemeral(s, i, fmt.Sprintf("⚠️ Lista **%s** já existe neste canal.", nome))
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("✅ Lista **%s** criada neste canal.", nome))
	b.audit.Log(i.GuildID, fmt.Sprintf("✅ Lista **%s** criada em <#%s> por %s", nome, i.ChannelID, i.Member.User.Mention()))
}

func (b *Bot) handleAddItem(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.checkAccess(s, i, true) {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	lista := opts["lista"].StringValue()
	item := opts["item"].StringValue()
	quantidade := int64(1)
	if opt, ok := opts["quantidade"]; ok {
		quantidade = opt.IntValue()
	}

	coord := lists.Coord{GuildID: i.GuildID, ChannelID: i.ChannelID, Name: lista}
	_, err := b.manager.AddItem(coord, item, quantidade)
	switch {
	case errors.Is(err, lists.ErrListNotFound):
		respondEphemeral(s, i, fmt.Sprintf("⚠️ Lista **%s** não existe.", lista))
		return
	case errors.Is(err, lists.ErrQuantityNotPositive):
		respondEphemeral(s, i, "⚠️ A quantidade deve ser positiva.")
		return
	case err != nil:
		log.Printf("listas: adicionar_item %q em %q: %v", item, lista, err)
		respondEphemeral(s, i, msgGenericFailure)
		return
	}

	msg := fmt.Sprintf("🟢 %s adicionou %dx **%s** na lista **%s**.", i.Member.User.Mention(), quantidade, item, lista)
	respond(s, i, msg)
	b.audit.Log(i.GuildID, msg)
}

func (b *Bot) handleRemoveItem(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.checkAccess(s, i, true) {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	lista := opts["lista"].StringValue()
	item := opts["item"].StringValue()
	quantidade := int64(1)
	if opt, ok := opts["quantidade"]; ok {
		quantidade = opt.IntValue()
	}

	coord := lists.Coord{GuildID: i.GuildID, ChannelID: i.ChannelID, Name: lista}
	_, err := b.manager.RemoveItem(coord, item, quantidade)
	switch {
	case errors.Is(err, lists.ErrItemNotFound):
		respondEphemeral(s, i, fmt.Sprintf("⚠️ Item **%s** não encontrado na lista **%s**.", item, lista))
		return
	case errors.Is(err, lists.ErrQuantityNotPositive):
		respondEphemeral(s, i, "⚠️ A quantidade deve ser positiva.")
		return
	case err != nil:
		log.Printf("listas: remover_item %q de %q: %v", item, lista, err)
		respondEphemeral(s, i, msgGenericFailure)
		return
	}

	respond(s, i, fmt.Sprintf("🔴 %s removeu %dx **%s** da lista **%s**.", i.Member.User.Mention(), quantidade, item, lista))
	b.audit.Log(i.GuildID, fmt.Sprintf("🔴 %s removeu %dx **%s** na lista **%s**.", i.Member.User.Mention(), quantidade, item, lista))
}

func (b *Bot) handleRemoveList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.checkAccess(s, i, true) {
		return
	}

	nome := optionMap(i.ApplicationCommandData().Options)["nome"].StringValue()
	coord := lists.Coord{GuildID: i.GuildID, ChannelID: i.ChannelID, Name: nome}

	err := b.manager.RemoveList(coord)
	switch {
	case errors.Is(err, lists.ErrListNotFound):
		respondEphemeral(s, i, fmt.Sprintf("⚠️ Lista **%s** não existe.", nome))
		return
	case err != nil:
		log.Printf("listas: remover_lista %q: %v", nome, err)
		respondEphemeral(s, i, msgGenericFailure)
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("🗑️ Lista **%s** removida.", nome))
	b.audit.Log(i.GuildID, fmt.Sprintf("🗑️ Lista **%s** e todos os seus itens removidos por %s", nome, i.Member.User.Mention()))
}

func (b *Bot) handleInitLists(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		respondEphemeral(s, i, msgMissingPermission)
		return
	}

	// the sweep touches every list in the guild; defer to stay inside the
	// interaction deadline
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		log.Printf("listas: defer iniciar_listas: %v", err)
		return
	}

	total, err := b.manager.SweepGuild(i.GuildID)
	if err != nil {
		log.Printf("listas: iniciar_listas: %v", err)
		editResponse(s, i, msgGenericFailure)
		return
	}

	editResponse(s, i, fmt.Sprintf("✅ Inicializadas %d listas deste servidor.", total))
	b.audit.Log(i.GuildID, fmt.Sprintf("✅ (Re)publicadas %d listas por %s", total, i.Member.User.Mention()))
}

// Helper functions

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondEmbedEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func editResponse(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
}
