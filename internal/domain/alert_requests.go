package domain

import (
	"time"

	"github.com/google/uuid"
)

type CreateAlertRequest struct {
	Category    AlertCategory `json:"category" validate:"required,category"`
	Description string        `json:"description"`
	Latitude    float64       `json:"latitude" validate:"lat"`
	Longitude   float64       `json:"longitude" validate:"lng"`
	Address     string        `json:"address"`
	Accuracy    *float64      `json:"accuracy"`
	UserID      uuid.UUID     `json:"user_id" validate:"required"`
	UserName    string        `json:"user_name"`
	UserPhone   string        `json:"user_phone"`
}

type AcknowledgeRequest struct {
	ResponderID   uuid.UUID `json:"responder_id" validate:"required"`
	ResponderName string    `json:"responder_name" validate:"required"`
}

type ResolveRequest struct {
	Notes string `json:"notes"`
}

type EscalateRequest struct {
	Priority AlertPriority `json:"priority" validate:"required,oneof=low medium high critical"`
}

type AppendLocationRequest struct {
	Latitude  float64   `json:"latitude" validate:"lat"`
	Longitude float64   `json:"longitude" validate:"lng"`
	Timestamp time.Time `json:"timestamp"`
	Accuracy  *float64  `json:"accuracy"`
}

type PresenceRequest struct {
	Online bool `json:"online"`
}

type ListAlertsRequest struct {
	Status   string `json:"status"`
	Category string `json:"category"`
	Since    string `json:"since"`
}

type ListAlertsResponse struct {
	Alerts []*Alert `json:"alerts"`
	Total  int      `json:"total"`
}
