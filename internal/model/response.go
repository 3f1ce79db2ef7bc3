package model

// TruckTier is the truck-capacity bar shown while the inventory grows.
type TruckTier struct {
	CapacityM3 float64 `json:"capacity_m3"`
	Progress   float64 `json:"progress"`
	Label      string  `json:"label"`
}

// Preview holds the locally computed display values for a session.
type Preview struct {
	VolumeM3              float64                 `json:"volume_m3"`
	Truck                 TruckTier               `json:"truck"`
	ServiceCosts          map[ServiceType]float64 `json:"service_costs"`
	ExternalLiftSuggested bool                    `json:"external_lift_suggested"`
}

// PatchOp is one RFC 6902 operation.
type PatchOp struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value,omitempty"`
}

// SessionView is what the API returns for every session request.
type SessionView struct {
	SessionID string    `json:"session_id"`
	Step      string    `json:"step"`
	Session   *Session  `json:"session"`
	Preview   Preview   `json:"preview"`
	Messages  []Message `json:"messages"`
	Patch     []PatchOp `json:"patch,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
