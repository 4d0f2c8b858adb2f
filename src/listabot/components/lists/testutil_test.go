package lists

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/shared/data"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, data.Migrate(db))
	return db
}

func softNotFound() error {
	return &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusNotFound}}
}

// fakeMessenger stands in for the Discord session: it tracks channels and
// messages in memory and answers 404 for anything it does not know.
type fakeMessenger struct {
	channels map[string]bool
	messages map[string]*discordgo.Message // key: channelID ":" messageID
	nextID   int

	sends   int
	edits   int
	deletes int
	plains  []string

	lastEmbed *discordgo.MessageEmbed
}

func newFakeMessenger(channelIDs ...string) *fakeMessenger {
	channels := make(map[string]bool, len(channelIDs))
	for _, id := range channelIDs {
		channels[id] = true
	}
	return &fakeMessenger{
		channels: channels,
		messages: make(map[string]*discordgo.Message),
	}
}

func msgKey(channelID, messageID string) string {
	return channelID + ":" + messageID
}

func (f *fakeMessenger) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if !f.channels[channelID] {
		return nil, softNotFound()
	}
	return &discordgo.Channel{ID: channelID}, nil
}

func (f *fakeMessenger) ChannelMessage(channelID, messageID string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	msg, ok := f.messages[msgKey(channelID, messageID)]
	if !ok {
		return nil, softNotFound()
	}
	return msg, nil
}

func (f *fakeMessenger) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if !f.channels[channelID] {
		return nil, softNotFound()
	}
	f.plains = append(f.plains, content)
	f.nextID++
	return &discordgo.Message{ID: fmt.Sprintf("m%d", f.nextID), ChannelID: channelID, Content: content}, nil
}

func (f *fakeMessenger) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if !f.channels[channelID] {
		return nil, softNotFound()
	}
	f.sends++
	f.nextID++
	f.lastEmbed = embed
	msg := &discordgo.Message{
		ID:        fmt.Sprintf("m%d", f.nextID),
		ChannelID: channelID,
		Embeds:    []*discordgo.MessageEmbed{embed},
	}
	f.messages[msgKey(channelID, msg.ID)] = msg
	return msg, nil
}

func (f *fakeMessenger) ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	msg, ok := f.messages[msgKey(channelID, messageID)]
	if !ok {
		return nil, softNotFound()
	}
	f.edits++
	f.lastEmbed = embed
	msg.Embeds = []*discordgo.MessageEmbed{embed}
	return msg, nil
}

func (f *fakeMessenger) ChannelMessageDelete(channelID, messageID string, _ ...discordgo.RequestOption) error {
	key := msgKey(channelID, messageID)
	if _, ok := f.messages[key]; !ok {
		return softNotFound()
	}
	f.deletes++
	delete(f.messages, key)
	return nil
}
