package model

type TypicalItem struct {
	Name       string  `json:"name"`
	VolumeM3   Decimal `json:"volume_m3"`
	Quantity   int     `json:"quantity"`
	Confidence Decimal `json:"confidence,omitempty"`
}

type PredictionSuggestion struct {
	Question     string  `json:"question"`
	Item         string  `json:"item"`
	VolumeImpact Decimal `json:"volume_impact"`
}

// Prediction is the smart-profile volume estimate, plus the last quick
// adjustment applied to it.
type Prediction struct {
	PredictedVolumeM3  Decimal                  `json:"predicted_volume_m3"`
	VolumeRange        [2]Decimal               `json:"volume_range"`
	ConfidenceScore    Decimal                  `json:"confidence_score"`
	TypicalItems       map[string][]TypicalItem `json:"typical_items"`
	TypicalBoxes       int                      `json:"typical_boxes"`
	ProfileKey         string                   `json:"profile_key"`
	PersonaDescription string                   `json:"persona_description"`
	Breakdown          map[string]Decimal       `json:"breakdown"`
	Suggestions        []PredictionSuggestion   `json:"suggestions"`
	Adjustment         *Adjustment              `json:"adjustment,omitempty"`
}

// Volume is the adjusted volume when an adjustment exists, the predicted one otherwise.
func (p *Prediction) Volume() float64 {
	if p == nil {
		return 0
	}
	if p.Adjustment != nil {
		return p.Adjustment.AdjustedVolumeM3.Float()
	}
	return p.PredictedVolumeM3.Float()
}

func (p *Prediction) Clone() *Prediction {
	if p == nil {
		return nil
	}
	c := *p
	c.TypicalItems = make(map[string][]TypicalItem, len(p.TypicalItems))
	for room, items := range p.TypicalItems {
		c.TypicalItems[room] = append([]TypicalItem{}, items...)
	}
	c.Breakdown = make(map[string]Decimal, len(p.Breakdown))
	for k, v := range p.Breakdown {
		c.Breakdown[k] = v
	}
	c.Suggestions = append([]PredictionSuggestion{}, p.Suggestions...)
	if p.Adjustment != nil {
		a := *p.Adjustment
		c.Adjustment = &a
	}
	return &c
}

// QuickAdjustment fine-tunes a prediction with sliders instead of item entry.
type QuickAdjustment struct {
	ProfileKey        string  `json:"profile_key"`
	FurnitureLevel    int     `json:"furniture_level"`
	BoxCount          int     `json:"box_count"`
	HasWashingMachine bool    `json:"has_washing_machine"`
	HasMountedKitchen bool    `json:"has_mounted_kitchen"`
	KitchenMeters     float64 `json:"kitchen_meters"`
	HasLargePlants    bool    `json:"has_large_plants"`
	BicycleCount      int     `json:"bicycle_count"`
}

type Adjustment struct {
	AdjustedVolumeM3 Decimal    `json:"adjusted_volume_m3"`
	VolumeRange      [2]Decimal `json:"volume_range"`
	ConfidenceScore  Decimal    `json:"confidence_score"`
}
