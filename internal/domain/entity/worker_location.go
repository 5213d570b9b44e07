package entity

import (
	"time"
)

// WorkerLocation is the last-known position of a worker. Upserted, no
// history retained.
type WorkerLocation struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	WorkerID  uint      `bson:"workerId" json:"workerId"`
	Latitude  float64   `bson:"latitude" json:"latitude"`
	Longitude float64   `bson:"longitude" json:"longitude"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
