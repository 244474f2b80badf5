package domain

import "time"

const (
	DeviceMobile  = "mobile"
	DeviceDesktop = "desktop"
	DeviceTablet  = "tablet"
)

// UsageEvent is a single gameplay sample reported by a game server. Analytics
// reports are aggregated from these; nothing is synthesized.
type UsageEvent struct {
	ID             string    `json:"id" bson:"id"`
	GameID         string    `json:"game_id" bson:"game_id"`
	Players        int       `json:"players" bson:"players"`
	Revenue        float64   `json:"revenue" bson:"revenue"`
	SessionMinutes float64   `json:"session_minutes" bson:"session_minutes"`
	Device         string    `json:"device" bson:"device"`
	Region         string    `json:"region" bson:"region"`
	Returning      bool      `json:"returning" bson:"returning"`
	Timestamp      time.Time `json:"timestamp" bson:"timestamp"`
}
