package auth

import (
	"errors"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/shared/types"
	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

var (
	ErrMissingPermission = errors.New("missing permission")
	ErrChannelNotAllowed = errors.New("channel not authorized for lists")
)

// Gate answers authorization questions from the database. It never mutates
// state, so a rejected command leaves no trace.
type Gate struct {
	db *gorm.DB
}

func NewGate(db *gorm.DB) *Gate {
	return &Gate{db: db}
}

// CheckPermission passes administrators and holders of any allow-listed
// role for the guild.
func (g *Gate) CheckPermission(guildID string, member *discordgo.Member) error {
	if member == nil {
		return ErrMissingPermission
	}
	if member.Permissions&discordgo.PermissionAdministrator != 0 {
		return nil
	}

	var rows []types.AllowedRole
	if err := g.db.Where("guild_id = ?", guildID).Find(&rows).Error; err != nil {
		return err
	}
	allowed := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		allowed[r.RoleID] = struct{}{}
	}
	for _, roleID := range member.Roles {
		if _, ok := allowed[roleID]; ok {
			return nil
		}
	}
	return ErrMissingPermission
}

// EnsureListChannel passes only when the channel is allow-listed for list
// commands in this guild.
func (g *Gate) EnsureListChannel(guildID, channelID string) error {
	var count int64
	err := g.db.Model(&types.ListChannel{}).
		Where("guild_id = ? AND channel_id = ?", guildID, channelID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrChannelNotAllowed
	}
	return nil
}
