package lists

import (
	"errors"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/discord"
	"github.com/bwmarrin/discordgo"
)

// Outcome reports how a reconciliation resolved.
type Outcome int

const (
	// OutcomeChannelGone means the channel no longer resolves; its list rows
	// were deleted and no message exists.
	OutcomeChannelGone Outcome = iota
	// OutcomeEdited means the stored message was still live and was edited
	// in place.
	OutcomeEdited
	// OutcomeCreated means a fresh message was sent and the stored pointer
	// updated.
	OutcomeCreated
)

// Reconciler keeps a list's rendered message consistent with its rows.
// Store writes for items happen before any message call, so a transport
// failure here leaves the data intact and the display stale until the next
// pass.
type Reconciler struct {
	store     *Store
	messenger discord.Messenger
}

func NewReconciler(store *Store, messenger discord.Messenger) *Reconciler {
	return &Reconciler{store: store, messenger: messenger}
}

// Reconcile resolves the channel, then edits the stored message with a
// fresh render, or sends a new one and persists its id. Not-found and
// forbidden outcomes on the channel or message are expected and select the
// gone branches; anything else propagates.
func (r *Reconciler) Reconcile(c Coord) (Outcome, error) {
	ch, err := discord.SafeChannel(r.messenger, c.ChannelID)
	if err != nil {
		return 0, err
	}
	if ch == nil {
		if err := r.store.DeleteListsInChannel(c.GuildID, c.ChannelID); err != nil {
			return 0, err
		}
		return OutcomeChannelGone, nil
	}

	list, err := r.store.List(c)
	if err != nil {
		return 0, err
	}

	items, err := r.store.Items(c)
	if err != nil {
		return 0, err
	}
	embed := Render(c.Name, items)

	if list.MessageID != "" {
		msg, err := discord.SafeMessage(r.messenger, c.ChannelID, list.MessageID)
		if err != nil {
			return 0, err
		}
		if msg != nil {
			_, err := r.messenger.ChannelMessageEditEmbed(c.ChannelID, msg.ID, embed)
			if err == nil {
				return OutcomeEdited, nil
			}
			if !discord.IsSoft(err) {
				return 0, err
			}
			// message vanished between fetch and edit; send a new one
		}
	}

	msg, err := r.messenger.ChannelMessageSendEmbed(c.ChannelID, embed)
	if err != nil {
		return 0, err
	}
	if err := r.store.SetMessageID(c, msg.ID); err != nil {
		return 0, err
	}
	return OutcomeCreated, nil
}

// LiveMessage returns the stored message when it still resolves, nil
// otherwise. Used by list creation to skip re-publishing.
func (r *Reconciler) LiveMessage(c Coord) (*discordgo.Message, error) {
	list, err := r.store.List(c)
	if err != nil {
		if errors.Is(err, ErrListNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if list.MessageID == "" {
		return nil, nil
	}
	return discord.SafeMessage(r.messenger, c.ChannelID, list.MessageID)
}
