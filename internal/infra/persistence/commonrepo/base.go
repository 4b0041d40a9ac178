package commonrepo

import "time"

// Mode is embedded by tables keyed by an auto-increment id.
type Mode struct {
	ID        uint64    `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index;autoCreateTime"`
	UpdatedAt time.Time `gorm:"index;autoUpdateTime"`
}

// UUIDMode is embedded by tables keyed by an application-generated UUID.
type UUIDMode struct {
	ID        string    `gorm:"primarykey;size:36"`
	CreatedAt time.Time `gorm:"index;autoCreateTime"`
	UpdatedAt time.Time `gorm:"index;autoUpdateTime"`
}
