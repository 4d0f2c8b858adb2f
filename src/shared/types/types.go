package types

import "time"

// Lists, one embed message per (guild, channel, name).
type List struct {
	ID        uint64 `gorm:"primaryKey"`
	GuildID   string `gorm:"size:64;not null;uniqueIndex:idx_list_coord,priority:1"`
	ChannelID string `gorm:"size:64;not null;uniqueIndex:idx_list_coord,priority:2"`
	Name      string `gorm:"size:100;not null;uniqueIndex:idx_list_coord,priority:3"`
	IDCounter uint32 `gorm:"not null;default:0"`
	MessageID string `gorm:"size:64"` // empty until the embed has been sent
	CreatedAt time.Time
	UpdatedAt time.Time
}

// List entries. ItemID comes from the owning list's IDCounter and is never
// reused, even after the item is deleted.
type Item struct {
	ID        uint64 `gorm:"primaryKey"`
	GuildID   string `gorm:"size:64;not null;index:idx_item_coord,priority:1"`
	ChannelID string `gorm:"size:64;not null;index:idx_item_coord,priority:2"`
	ListName  string `gorm:"size:100;not null;index:idx_item_coord,priority:3"`
	ItemID    uint32 `gorm:"not null"`
	Name      string `gorm:"size:100;not null"`
	Qty       int64  `gorm:"not null"` // always > 0 for a stored row
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Channels authorized to host list commands.
type ListChannel struct {
	ID        uint64 `gorm:"primaryKey"`
	GuildID   string `gorm:"size:64;not null;uniqueIndex:idx_list_channel,priority:1"`
	ChannelID string `gorm:"size:64;not null;uniqueIndex:idx_list_channel,priority:2"`
}

// Roles allowed to run list and config commands (admins always pass).
type AllowedRole struct {
	ID      uint64 `gorm:"primaryKey"`
	GuildID string `gorm:"size:64;not null;uniqueIndex:idx_allowed_role,priority:1"`
	RoleID  string `gorm:"size:64;not null;uniqueIndex:idx_allowed_role,priority:2"`
}

// Per-guild settings. At most one row per guild.
type GuildSetting struct {
	GuildID      string `gorm:"primaryKey;size:64"`
	LogChannelID string `gorm:"size:64"`
	UpdatedAt    time.Time
}

// Global settings, used as configuration fallback for env vars.
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:32;not null"`
	Value string `gorm:"size:256;not null"`
}
