package lists

import (
	"errors"
	"sort"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/shared/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrListNotFound        = errors.New("list not found")
	ErrItemNotFound        = errors.New("item not found")
	ErrQuantityNotPositive = errors.New("quantity must be positive")
)

// Coord identifies one list.
type Coord struct {
	GuildID   string
	ChannelID string
	Name      string
}

// Store owns all list and item rows. Every command re-reads through it; the
// database is the single source of truth and rendered messages are a
// derived mirror.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) listScope(c Coord) *gorm.DB {
	return s.db.Where("guild_id = ? AND channel_id = ? AND name = ?", c.GuildID, c.ChannelID, c.Name)
}

func (s *Store) itemScope(c Coord) *gorm.DB {
	return s.db.Where("guild_id = ? AND channel_id = ? AND list_name = ?", c.GuildID, c.ChannelID, c.Name)
}

func (s *Store) List(c Coord) (*types.List, error) {
	var list types.List
	if err := s.listScope(c).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return &list, nil
}

func (s *Store) Lists(guildID string) ([]types.List, error) {
	var out []types.List
	err := s.db.Where("guild_id = ?", guildID).Order("channel_id, name").Find(&out).Error
	return out, err
}

func (s *Store) ListNames(guildID, channelID string) ([]string, error) {
	var names []string
	err := s.db.Model(&types.List{}).
		Where("guild_id = ? AND channel_id = ?", guildID, channelID).
		Order("name").
		Pluck("name", &names).Error
	return names, err
}

// EnsureList creates the list row when absent. An existing row keeps its
// id_counter and message pointer so item ids are never recycled.
func (s *Store) EnsureList(c Coord) error {
	list := types.List{
		GuildID:   c.GuildID,
		ChannelID: c.ChannelID,
		Name:      c.Name,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}, {Name: "channel_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&list).Error
}

func (s *Store) SetMessageID(c Coord, messageID string) error {
	return s.listScope(c).Model(&types.List{}).Update("message_id", messageID).Error
}

// NextItemID increments the list's counter and returns the new value. The
// increment runs as an atomic expression inside a transaction, so two
// concurrent adds never observe the same id.
func (s *Store) NextItemID(c Coord) (uint32, error) {
	var next uint32
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&types.List{}).
			Where("guild_id = ? AND channel_id = ? AND name = ?", c.GuildID, c.ChannelID, c.Name).
			Update("id_counter", gorm.Expr("id_counter + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrListNotFound
		}

		var list types.List
		if err := tx.Where("guild_id = ? AND channel_id = ? AND name = ?", c.GuildID, c.ChannelID, c.Name).
			First(&list).Error; err != nil {
			return err
		}
		next = list.IDCounter
		return nil
	})
	return next, err
}

func (s *Store) DeleteList(c Coord) error {
	return s.listScope(c).Delete(&types.List{}).Error
}

// DeleteListsInChannel clears every list registered for a channel. Used by
// reconciliation when the channel itself no longer resolves.
func (s *Store) DeleteListsInChannel(guildID, channelID string) error {
	return s.db.Where("guild_id = ? AND channel_id = ?", guildID, channelID).Delete(&types.List{}).Error
}

func (s *Store) Items(c Coord) ([]types.Item, error) {
	var out []types.Item
	err := s.itemScope(c).Order("item_id").Find(&out).Error
	return out, err
}

// FindItem matches the stored name exactly, byte for byte. The comparison
// runs in Go because MySQL's default collation would fold case.
func (s *Store) FindItem(c Coord, name string) (*types.Item, error) {
	items, err := s.Items(c)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Name == name {
			return &items[i], nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *Store) ItemNames(c Coord) ([]string, error) {
	items, err := s.Items(c)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(items))
	names := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Name]; ok {
			continue
		}
		seen[it.Name] = struct{}{}
		names = append(names, it.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) CreateItem(c Coord, itemID uint32, name string, qty int64) error {
	item := types.Item{
		GuildID:   c.GuildID,
		ChannelID: c.ChannelID,
		ListName:  c.Name,
		ItemID:    itemID,
		Name:      name,
		Qty:       qty,
	}
	return s.db.Create(&item).Error
}

func (s *Store) SetItemQty(c Coord, itemID uint32, qty int64) error {
	return s.itemScope(c).Model(&types.Item{}).Where("item_id = ?", itemID).Update("qty", qty).Error
}

func (s *Store) DeleteItem(c Coord, itemID uint32) error {
	return s.itemScope(c).Where("item_id = ?", itemID).Delete(&types.Item{}).Error
}

func (s *Store) DeleteItems(c Coord) error {
	return s.itemScope(c).Delete(&types.Item{}).Error
}

func (s *Store) ListChannels(guildID string) ([]string, error) {
	var channels []string
	err := s.db.Model(&types.ListChannel{}).
		Where("guild_id = ?", guildID).
		Pluck("channel_id", &channels).Error
	return channels, err
}

func (s *Store) AddListChannel(guildID, channelID string) error {
	row := types.ListChannel{GuildID: guildID, ChannelID: channelID}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}, {Name: "channel_id"}},
		DoNothing: true,
	}).Create(&row).Error
}

func (s *Store) RemoveListChannel(guildID, channelID string) error {
	return s.db.Where("guild_id = ? AND channel_id = ?", guildID, channelID).
		Delete(&types.ListChannel{}).Error
}

func (s *Store) IsListChannel(guildID, channelID string) (bool, error) {
	var count int64
	err := s.db.Model(&types.ListChannel{}).
		Where("guild_id = ? AND channel_id = ?", guildID, channelID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) AllowedRoles(guildID string) ([]string, error) {
	var roles []string
	err := s.db.Model(&types.AllowedRole{}).
		Where("guild_id = ?", guildID).
		Pluck("role_id", &roles).Error
	return roles, err
}

func (s *Store) AddAllowedRole(guildID, roleID string) error {
	row := types.AllowedRole{GuildID: guildID, RoleID: roleID}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}, {Name: "role_id"}},
		DoNothing: true,
	}).Create(&row).Error
}

func (s *Store) RemoveAllowedRole(guildID, roleID string) error {
	return s.db.Where("guild_id = ? AND role_id = ?", guildID, roleID).
		Delete(&types.AllowedRole{}).Error
}

func (s *Store) LogChannel(guildID string) (string, error) {
	var gs types.GuildSetting
	if err := s.db.First(&gs, "guild_id = ?", guildID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return gs.LogChannelID, nil
}

func (s *Store) SetLogChannel(guildID, channelID string) error {
	gs := types.GuildSetting{GuildID: guildID, LogChannelID: channelID}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"log_channel_id"}),
	}).Create(&gs).Error
}
