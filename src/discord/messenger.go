package discord

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// Messenger is the slice of discordgo.Session the bot needs for channel and
// message plumbing. *discordgo.Session satisfies it.
type Messenger interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// IsSoft reports whether err is an expected not-found/forbidden REST outcome
// rather than a transport fault.
func IsSoft(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusForbidden, http.StatusNotFound:
			return true
		}
	}
	return false
}

// SafeChannel resolves a channel, mapping soft failures to (nil, nil).
func SafeChannel(m Messenger, channelID string) (*discordgo.Channel, error) {
	ch, err := m.Channel(channelID)
	if err != nil {
		if IsSoft(err) {
			return nil, nil
		}
		return nil, err
	}
	return ch, nil
}

// SafeMessage fetches a message, mapping soft failures to (nil, nil).
func SafeMessage(m Messenger, channelID, messageID string) (*discordgo.Message, error) {
	msg, err := m.ChannelMessage(channelID, messageID)
	if err != nil {
		if IsSoft(err) {
			return nil, nil
		}
		return nil, err
	}
	return msg, nil
}
