package domain

import (
	"time"

	"github.com/google/uuid"
)

type AlertStatus string

const (
	AlertPending    AlertStatus = "pending"
	AlertResponding AlertStatus = "responding"
	AlertResolved   AlertStatus = "resolved"
	AlertCancelled  AlertStatus = "cancelled"
)

// Terminal reports whether the status accepts no further lifecycle moves.
// Location samples are still accepted on terminal alerts.
func (s AlertStatus) Terminal() bool {
	return s == AlertResolved || s == AlertCancelled
}

type AlertCategory string

const (
	CategoryMedical  AlertCategory = "medical"
	CategoryFire     AlertCategory = "fire"
	CategoryPolice   AlertCategory = "police"
	CategoryRescue   AlertCategory = "rescue"
	CategoryCrime    AlertCategory = "crime"
	CategoryAccident AlertCategory = "accident"
	CategoryNatural  AlertCategory = "natural"
	CategorySOS      AlertCategory = "SOS"
	CategoryOther    AlertCategory = "other"
)

func (c AlertCategory) Valid() bool {
	switch c {
	case CategoryMedical, CategoryFire, CategoryPolice, CategoryRescue,
		CategoryCrime, CategoryAccident, CategoryNatural, CategorySOS, CategoryOther:
		return true
	}
	return false
}

type AlertPriority string

const (
	PriorityLow      AlertPriority = "low"
	PriorityMedium   AlertPriority = "medium"
	PriorityHigh     AlertPriority = "high"
	PriorityCritical AlertPriority = "critical"
)

var priorityRank = map[AlertPriority]int{
	PriorityLow:      0,
	PriorityMedium:   1,
	PriorityHigh:     2,
	PriorityCritical: 3,
}

func (p AlertPriority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Rank orders priorities low < medium < high < critical.
func (p AlertPriority) Rank() int { return priorityRank[p] }

type Location struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Address   string   `json:"address,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

func (l Location) InRange() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

type LocationSample struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
}

// Contact is a snapshot of one emergency contact as it existed at alert
// creation. Edits to the user's contact list never change a past alert.
type Contact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	Primary      bool   `json:"primary"`
}

type Alert struct {
	ID               uuid.UUID        `json:"id"`
	Category         AlertCategory    `json:"category"`
	Description      string           `json:"description"`
	Location         Location         `json:"location"`
	LocationHistory  []LocationSample `json:"location_history"`
	LastLocationAt   time.Time        `json:"last_location_at"`
	Online           bool             `json:"online"`
	UserID           uuid.UUID        `json:"user_id"`
	UserName         string           `json:"user_name"`
	UserPhone        string           `json:"user_phone"`
	Contacts         []Contact        `json:"contacts"`
	ContactsMissing  bool             `json:"contacts_missing"`
	Priority         AlertPriority    `json:"priority"`
	Status           AlertStatus      `json:"status"`
	ResponderID      *uuid.UUID       `json:"responder_id,omitempty"`
	ResponderName    string           `json:"responder_name,omitempty"`
	ResponseTime     *time.Time       `json:"response_time,omitempty"`
	ResolvedTime     *time.Time       `json:"resolved_time,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Clone returns a deep copy. Store implementations hand out clones so a
// caller can never mutate a record outside an Update mutator.
func (a *Alert) Clone() *Alert {
	cp := *a
	if a.LocationHistory != nil {
		cp.LocationHistory = append([]LocationSample(nil), a.LocationHistory...)
	}
	if a.Contacts != nil {
		cp.Contacts = append([]Contact(nil), a.Contacts...)
	}
	if a.ResponderID != nil {
		id := *a.ResponderID
		cp.ResponderID = &id
	}
	if a.ResponseTime != nil {
		t := *a.ResponseTime
		cp.ResponseTime = &t
	}
	if a.ResolvedTime != nil {
		t := *a.ResolvedTime
		cp.ResolvedTime = &t
	}
	if a.Location.Accuracy != nil {
		acc := *a.Location.Accuracy
		cp.Location.Accuracy = &acc
	}
	return &cp
}

// AlertFilter narrows List results. Nil fields match everything.
type AlertFilter struct {
	Status      *AlertStatus
	Category    *AlertCategory
	Since       *time.Time
	UserID      *uuid.UUID
	ResponderID *uuid.UUID
}

func (f AlertFilter) Matches(a *Alert) bool {
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	if f.Category != nil && a.Category != *f.Category {
		return false
	}
	if f.Since != nil && a.CreatedAt.Before(*f.Since) {
		return false
	}
	if f.UserID != nil && a.UserID != *f.UserID {
		return false
	}
	if f.ResponderID != nil && (a.ResponderID == nil || *a.ResponderID != *f.ResponderID) {
		return false
	}
	return true
}
