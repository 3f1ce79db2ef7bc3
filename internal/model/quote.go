package model

type PriceRange struct {
	Min Decimal `json:"min"`
	Max Decimal `json:"max"`
}

type Breakdown struct {
	VolumeCost     PriceRange `json:"volume_cost"`
	DistanceCost   PriceRange `json:"distance_cost"`
	LaborCost      PriceRange `json:"labor_cost"`
	FloorSurcharge Decimal    `json:"floor_surcharge"`
	ServicesCost   PriceRange `json:"services_cost"`
}

type QuoteSuggestions struct {
	ExternalLiftOrigin      bool `json:"external_lift_origin"`
	ExternalLiftDestination bool `json:"external_lift_destination"`
}

// QuoteResult is the authoritative answer of the calculation endpoint.
type QuoteResult struct {
	MinPrice       Decimal          `json:"min_price"`
	MaxPrice       Decimal          `json:"max_price"`
	DistanceKm     Decimal          `json:"distance_km"`
	EstimatedHours Decimal          `json:"estimated_hours"`
	VolumeM3       Decimal          `json:"volume_m3"`
	Breakdown      Breakdown        `json:"breakdown"`
	Suggestions    QuoteSuggestions `json:"suggestions"`
}

// SubmittedQuote is the persisted quote record returned by the submission endpoint.
type SubmittedQuote struct {
	ID                 string          `json:"id"`
	CompanyID          string          `json:"company_id"`
	CustomerEmail      string          `json:"customer_email"`
	CustomerPhone      *string         `json:"customer_phone"`
	CustomerName       *string         `json:"customer_name"`
	OriginAddress      Location        `json:"origin_address"`
	DestinationAddress Location        `json:"destination_address"`
	DistanceKm         Decimal         `json:"distance_km"`
	EstimatedHours     Decimal         `json:"estimated_hours"`
	Inventory          []InventoryItem `json:"inventory"`
	Services           []ServiceLine   `json:"services"`
	MinPrice           Decimal         `json:"min_price"`
	MaxPrice           Decimal         `json:"max_price"`
	VolumeM3           Decimal         `json:"volume_m3"`
	Status             string          `json:"status"`
	PDFURL             *string         `json:"pdf_url"`
	CreatedAt          string          `json:"created_at"`
}

func (q *SubmittedQuote) Clone() *SubmittedQuote {
	if q == nil {
		return nil
	}
	c := *q
	c.CustomerPhone = cloneString(q.CustomerPhone)
	c.CustomerName = cloneString(q.CustomerName)
	c.PDFURL = cloneString(q.PDFURL)
	c.Inventory = append([]InventoryItem{}, q.Inventory...)
	c.Services = append([]ServiceLine{}, q.Services...)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// ItemTemplate is a catalog entry the inventory editor can add.
type ItemTemplate struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	VolumeM3           Decimal `json:"volume_m3"`
	WeightKg           Decimal `json:"weight_kg"`
	DisassemblyMinutes int     `json:"disassembly_minutes"`
	PackingMinutes     int     `json:"packing_minutes"`
}
