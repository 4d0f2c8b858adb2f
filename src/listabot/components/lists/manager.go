package lists

import (
	"errors"
	"fmt"
	"log"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/discord"
	"gorm.io/gorm"
)

// Manager implements the list commands: every mutation writes through the
// store first and finishes with one reconciliation of the affected list.
type Manager struct {
	store      *Store
	messenger  discord.Messenger
	reconciler *Reconciler
}

func NewManager(db *gorm.DB, messenger discord.Messenger) *Manager {
	store := NewStore(db)
	return &Manager{
		store:      store,
		messenger:  messenger,
		reconciler: NewReconciler(store, messenger),
	}
}

func (m *Manager) Store() *Store {
	return m.store
}

func (m *Manager) Reconciler() *Reconciler {
	return m.reconciler
}

// AddResult describes the item after an add.
type AddResult struct {
	ItemID  uint32
	Qty     int64
	Created bool
}

// AddItem sums the quantity onto an exactly-named existing item, or assigns
// the next item id from the list's counter and inserts. The list must exist
// for new items.
func (m *Manager) AddItem(c Coord, itemName string, qty int64) (AddResult, error) {
	if qty <= 0 {
		return AddResult{}, ErrQuantityNotPositive
	}

	var res AddResult
	existing, err := m.store.FindItem(c, itemName)
	switch {
	case err == nil:
		newQty := existing.Qty + qty
		if err := m.store.SetItemQty(c, existing.ItemID, newQty); err != nil {
			return AddResult{}, fmt.Errorf("update item qty: %w", err)
		}
		res = AddResult{ItemID: existing.ItemID, Qty: newQty}
	case errors.Is(err, ErrItemNotFound):
		next, err := m.store.NextItemID(c)
		if err != nil {
			return AddResult{}, err
		}
		if err := m.store.CreateItem(c, next, itemName, qty); err != nil {
			return AddResult{}, fmt.Errorf("insert item: %w", err)
		}
		res = AddResult{ItemID: next, Qty: qty, Created: true}
	default:
		return AddResult{}, err
	}

	if _, err := m.reconciler.Reconcile(c); err != nil {
		return res, err
	}
	return res, nil
}

// RemoveResult describes the item after a removal.
type RemoveResult struct {
	ItemID    uint32
	Remaining int64
	Deleted   bool
}

// RemoveItem decrements the quantity, deleting the item outright when the
// removal covers the stored amount. A stored row never keeps qty <= 0.
func (m *Manager) RemoveItem(c Coord, itemName string, qty int64) (RemoveResult, error) {
	if qty <= 0 {
		return RemoveResult{}, ErrQuantityNotPositive
	}

	item, err := m.store.FindItem(c, itemName)
	if err != nil {
		return RemoveResult{}, err
	}

	var res RemoveResult
	if qty >= item.Qty {
		if err := m.store.DeleteItem(c, item.ItemID); err != nil {
			return RemoveResult{}, fmt.Errorf("delete item: %w", err)
		}
		res = RemoveResult{ItemID: item.ItemID, Deleted: true}
	} else {
		remaining := item.Qty - qty
		if err := m.store.SetItemQty(c, item.ItemID, remaining); err != nil {
			return RemoveResult{}, fmt.Errorf("update item qty: %w", err)
		}
		res = RemoveResult{ItemID: item.ItemID, Remaining: remaining}
	}

	if _, err := m.reconciler.Reconcile(c); err != nil {
		return res, err
	}
	return res, nil
}

// CreateList publishes a new list message. When the list already has a live
// message nothing changes and created is false.
func (m *Manager) CreateList(c Coord) (created bool, err error) {
	live, err := m.reconciler.LiveMessage(c)
	if err != nil {
		return false, err
	}
	if live != nil {
		return false, nil
	}

	if err := m.store.EnsureList(c); err != nil {
		return false, fmt.Errorf("ensure list: %w", err)
	}
	if _, err := m.reconciler.Reconcile(c); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveList deletes the list and its items, best-effort deletes the
// rendered message, and posts a plain removal notice. Irreversible.
func (m *Manager) RemoveList(c Coord) error {
	list, err := m.store.List(c)
	if err != nil {
		return err
	}

	if err := m.store.DeleteItems(c); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	if err := m.store.DeleteList(c); err != nil {
		return fmt.Errorf("delete list: %w", err)
	}

	if list.MessageID != "" {
		if err := m.messenger.ChannelMessageDelete(c.ChannelID, list.MessageID); err != nil && !discord.IsSoft(err) {
			return fmt.Errorf("delete message: %w", err)
		}
	}

	notice := fmt.Sprintf("🗑️ Lista **%s** e todos os seus itens foram removidos.", c.Name)
	if _, err := m.messenger.ChannelMessageSend(c.ChannelID, notice); err != nil {
		return fmt.Errorf("send removal notice: %w", err)
	}
	return nil
}

// SweepGuild reconciles every list in the guild. A failure on one list is
// logged and does not abort the rest. Returns the number of lists whose
// message was edited or created.
func (m *Manager) SweepGuild(guildID string) (int, error) {
	allLists, err := m.store.Lists(guildID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, l := range allLists {
		c := Coord{GuildID: l.GuildID, ChannelID: l.ChannelID, Name: l.Name}
		outcome, err := m.reconciler.Reconcile(c)
		if err != nil {
			log.Printf("listas: reconcile %s/%s %q: %v", c.GuildID, c.ChannelID, c.Name, err)
			continue
		}
		if outcome == OutcomeChannelGone {
			// the channel's list rows are already gone; drop its authorization too
			if err := m.store.RemoveListChannel(guildID, l.ChannelID); err != nil {
				log.Printf("listas: remove list channel %s/%s: %v", guildID, l.ChannelID, err)
			}
			continue
		}
		total++
	}
	return total, nil
}
