package models

import (
	"time"

	"gorm.io/gorm"
)

// GameServer is a managed game server. PanelID is the identifier on the
// external control panel; all power/file/backup operations are relayed there.
type GameServer struct {
	gorm.Model
	Name    string `gorm:"unique;not null"`
	PanelID string `gorm:"uniqueIndex;not null"`
	Address string `gorm:"not null"`
	Port    int    `gorm:"default:25565"`
	Game    string `gorm:"default:'minecraft'"`

	Checks []UptimeCheck `gorm:"foreignKey:ServerID;constraint:OnDelete:CASCADE"`
}

// UptimeCheck is one sample of the periodic ping. Aggregation over a window of
// these rows is a pure reduction; nothing else is stored.
type UptimeCheck struct {
	gorm.Model
	ServerID       uint      `gorm:"index;not null"`
	Online         bool      `gorm:"not null"`
	ResponseTimeMs int       `gorm:"default:0"`
	PlayersOnline  int       `gorm:"default:0"`
	CheckedAt      time.Time `gorm:"index;not null"`
}
