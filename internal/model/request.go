package model

import json "github.com/goccy/go-json"

// CalculateRequest is sent to the backend calculation endpoint. Exactly one
// of ApartmentSize and VolumeM3 is set.
type CalculateRequest struct {
	OriginPostalCode       string        `json:"origin_postal_code"`
	DestinationPostalCode  string        `json:"destination_postal_code"`
	ApartmentSize          ApartmentSize `json:"apartment_size,omitempty"`
	VolumeM3               *float64      `json:"volume_m3,omitempty"`
	OriginFloor            int           `json:"origin_floor"`
	DestinationFloor       int           `json:"destination_floor"`
	OriginHasElevator      bool          `json:"origin_has_elevator"`
	DestinationHasElevator bool          `json:"destination_has_elevator"`
	Services               []ServiceLine `json:"services"`
}

// SubmitRequest is sent to the backend submission endpoint.
type SubmitRequest struct {
	CompanySlug   string          `json:"company_slug,omitempty"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone *string         `json:"customer_phone,omitempty"`
	CustomerName  *string         `json:"customer_name,omitempty"`
	Origin        Location        `json:"origin"`
	Destination   Location        `json:"destination"`
	Inventory     []InventoryItem `json:"inventory"`
	Services      []ServiceLine   `json:"services"`
}

// Action is one user input event applied to a session.
type Action struct {
	Name       string          `json:"action"`
	Properties json.RawMessage `json:"properties"`
}

type ActionsRequest struct {
	Actions []Action `json:"actions"`
}

type TransitionRequest struct {
	Event string `json:"event"`
}
