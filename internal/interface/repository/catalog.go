package repository

import (
	"patroltrack-service/internal/domain/entity"
)

// Locations and Checkpoints are catalog tables owned by the location
// service. The core only joins them for projections; it never writes them.

// Locations GORM model for database mapping
type Locations struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"column:name"`
	Latitude  float64 `gorm:"column:latitude"`
	Longitude float64 `gorm:"column:longitude"`
}

// TableName overrides the default table name
func (Locations) TableName() string {
	return "locations"
}

// Checkpoints GORM model for database mapping
type Checkpoints struct {
	ID         uint    `gorm:"primaryKey"`
	LocationID uint    `gorm:"column:location_id;index"`
	Name       string  `gorm:"column:name"`
	Latitude   float64 `gorm:"column:latitude"`
	Longitude  float64 `gorm:"column:longitude"`
}

// TableName overrides the default table name
func (Checkpoints) TableName() string {
	return "checkpoints"
}

func (m Locations) toEntity() entity.Location {
	return entity.Location{
		ID:        m.ID,
		Name:      m.Name,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
	}
}

func (m Checkpoints) toEntity() entity.Checkpoint {
	return entity.Checkpoint{
		ID:         m.ID,
		LocationID: m.LocationID,
		Name:       m.Name,
		Latitude:   m.Latitude,
		Longitude:  m.Longitude,
	}
}
