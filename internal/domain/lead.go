package domain

import (
	"encoding/json"
	"time"
)

type LeadStatus string

const (
	LeadStatusLead      LeadStatus = "lead"
	LeadStatusConfirmed LeadStatus = "confirmed"
)

// Lead is an unconfirmed customer inquiry in the CRM. Measurements and
// photos are opaque blobs captured by sales staff; the engine never parses
// them.
type Lead struct {
	ID           int64           `json:"id"`
	CustomerName string          `json:"customer_name" validate:"required"`
	Contact      string          `json:"contact,omitempty"`
	Details      string          `json:"details,omitempty" gorm:"type:text"`
	Measurements json.RawMessage `json:"measurements,omitempty" gorm:"type:json"`
	Photos       json.RawMessage `json:"photos,omitempty" gorm:"type:json"`
	DeliveryDate *time.Time      `json:"delivery_date,omitempty"`
	Status       LeadStatus      `json:"status"`
	CreatedBy    int64           `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (l *Lead) IsConfirmed() bool {
	return l.Status == LeadStatusConfirmed
}
