package crm

import (
	"encoding/json"
	"time"
)

type CreateLeadRequest struct {
	CustomerName string          `json:"customer_name" binding:"required" validate:"required,min=2"`
	Contact      string          `json:"contact"`
	Details      string          `json:"details"`
	Measurements json.RawMessage `json:"measurements"`
	Photos       json.RawMessage `json:"photos"`
	DeliveryDate *time.Time      `json:"delivery_date"`
}

type UpdateLeadRequest struct {
	CustomerName *string         `json:"customer_name" validate:"omitempty,min=2"`
	Contact      *string         `json:"contact"`
	Details      *string         `json:"details"`
	Measurements json.RawMessage `json:"measurements"`
	Photos       json.RawMessage `json:"photos"`
	DeliveryDate *time.Time      `json:"delivery_date"`
}
