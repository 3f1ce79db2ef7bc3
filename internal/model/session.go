package model

// Step is one screen of the wizard. Values are stable and shown to clients.
type Step int

const (
	StepInstant Step = iota + 1
	StepSmartProfile
	StepSmartPreview
	StepInventory
	StepServices
	StepContact
)

var stepNames = map[Step]string{
	StepInstant:      "instant",
	StepSmartProfile: "smart_profile",
	StepSmartPreview: "smart_preview",
	StepInventory:    "inventory",
	StepServices:     "services",
	StepContact:      "contact",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s Step) Valid() bool {
	_, ok := stepNames[s]
	return ok
}

// Route records which path through the wizard the user committed to.
type Route string

const (
	RouteUnset  Route = ""
	RouteManual Route = "manual"
	RouteSmart  Route = "smart"
)

type ApartmentSize string

const (
	SizeStudio     ApartmentSize = "studio"
	SizeOneBR      ApartmentSize = "1br"
	SizeTwoBR      ApartmentSize = "2br"
	SizeThreeBR    ApartmentSize = "3br"
	SizeFourBRPlus ApartmentSize = "4br+"
)

// Volumes the backend assumes for an apartment size when no volume is sent.
var apartmentVolumes = map[ApartmentSize]float64{
	SizeStudio:     15,
	SizeOneBR:      25,
	SizeTwoBR:      40,
	SizeThreeBR:    60,
	SizeFourBRPlus: 80,
}

func (a ApartmentSize) Valid() bool {
	_, ok := apartmentVolumes[a]
	return ok
}

// FallbackVolume returns the typical volume for the size, 0 if unknown.
func (a ApartmentSize) FallbackVolume() float64 {
	return apartmentVolumes[a]
}

// Location is one end of the move.
type Location struct {
	Street      string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Floor       int    `json:"floor"`
	HasElevator bool   `json:"has_elevator"`
}

type InventoryItem struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	VolumeM3 float64 `json:"volume_m3"`
	Category string  `json:"category,omitempty"`
}

type Customer struct {
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Name  string `json:"name,omitempty"`
}

// SmartProfile holds the answers to the profile questions of the smart route.
type SmartProfile struct {
	ApartmentSize   ApartmentSize `json:"apartment_size"`
	HouseholdType   string        `json:"household_type"`
	FurnishingLevel string        `json:"furnishing_level"`
	HasHomeOffice   *bool         `json:"has_home_office"`
	HasKids         *bool         `json:"has_kids"`
	YearsLived      int           `json:"years_lived"`
	SpecialItems    []string      `json:"special_items"`
}

const DefaultFurnishingLevel = "normal"

// Session is the complete state of one wizard run.
type Session struct {
	CurrentStep   Step                    `json:"current_step"`
	Route         Route                   `json:"route"`
	DetailedMode  bool                    `json:"detailed_mode"`
	ApartmentSize ApartmentSize           `json:"apartment_size,omitempty"`
	Origin        Location                `json:"origin"`
	Destination   Location                `json:"destination"`
	Inventory     []InventoryItem         `json:"inventory"`
	Services      map[ServiceType]Service `json:"services"`
	SmartProfile  *SmartProfile           `json:"smart_profile"`
	Prediction    *Prediction             `json:"prediction"`
	Quote         *QuoteResult            `json:"quote"`
	Customer      Customer                `json:"customer"`
	Error         string                  `json:"error,omitempty"`
	Submitted     *SubmittedQuote         `json:"submitted"`
}

// NewSession returns an empty session positioned at the first step.
func NewSession() *Session {
	return &Session{
		CurrentStep: StepInstant,
		Inventory:   []InventoryItem{},
		Services:    map[ServiceType]Service{},
	}
}

// Clone returns a deep copy safe to hand out to readers.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Inventory = append([]InventoryItem{}, s.Inventory...)
	c.Services = make(map[ServiceType]Service, len(s.Services))
	for k, v := range s.Services {
		c.Services[k] = v.clone()
	}
	if s.SmartProfile != nil {
		p := *s.SmartProfile
		p.SpecialItems = append([]string{}, s.SmartProfile.SpecialItems...)
		p.HasHomeOffice = cloneBool(s.SmartProfile.HasHomeOffice)
		p.HasKids = cloneBool(s.SmartProfile.HasKids)
		c.SmartProfile = &p
	}
	c.Prediction = s.Prediction.Clone()
	if s.Quote != nil {
		q := *s.Quote
		c.Quote = &q
	}
	c.Submitted = s.Submitted.Clone()
	return &c
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
