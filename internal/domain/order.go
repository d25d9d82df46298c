package domain

import "time"

// Order is the irreversible commitment derived from exactly one confirmed
// lead. It carries no status of its own: its existence is its state.
type Order struct {
	ID          int64     `json:"id"`
	LeadID      int64     `json:"lead_id" gorm:"uniqueIndex"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}
