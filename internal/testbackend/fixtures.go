package testbackend

import (
	"fmt"
	"math"
	"strconv"

	"quote-wizard/internal/model"
)

const (
	fakeDistanceKm  = 585.3
	fakeMinPerM3    = 25.0
	fakeMaxPerM3    = 32.0
	fakeHoursPerM3  = 0.2
	fakeBoxVolumeM3 = 0.06
)

// QuoteFor is the deterministic quote the fake backend answers with.
func QuoteFor(req model.CalculateRequest) model.QuoteResult {
	volume := req.ApartmentSize.FallbackVolume()
	if req.VolumeM3 != nil {
		volume = *req.VolumeM3
	}
	var services float64
	for _, s := range req.Services {
		if s.Enabled && s.Cost != nil {
			services += *s.Cost
		}
	}
	lo := round2(volume*fakeMinPerM3 + services)
	hi := round2(volume*fakeMaxPerM3 + services)
	return model.QuoteResult{
		MinPrice:       model.Decimal(lo),
		MaxPrice:       model.Decimal(hi),
		DistanceKm:     fakeDistanceKm,
		EstimatedHours: model.Decimal(round2(volume * fakeHoursPerM3)),
		VolumeM3:       model.Decimal(volume),
		Breakdown: model.Breakdown{
			VolumeCost:   model.PriceRange{Min: model.Decimal(volume * fakeMinPerM3), Max: model.Decimal(volume * fakeMaxPerM3)},
			ServicesCost: model.PriceRange{Min: model.Decimal(services), Max: model.Decimal(services)},
		},
		Suggestions: model.QuoteSuggestions{
			ExternalLiftOrigin:      req.OriginFloor > 4 && !req.OriginHasElevator,
			ExternalLiftDestination: req.DestinationFloor > 4 && !req.DestinationHasElevator,
		},
	}
}

// The real backend serializes decimals as strings; prices go out that way.
type quoteWireResult struct {
	model.QuoteResult
	MinPrice string `json:"min_price"`
	MaxPrice string `json:"max_price"`
}

func quoteWire(q model.QuoteResult) quoteWireResult {
	return quoteWireResult{
		QuoteResult: q,
		MinPrice:    strconv.FormatFloat(q.MinPrice.Float(), 'f', 2, 64),
		MaxPrice:    strconv.FormatFloat(q.MaxPrice.Float(), 'f', 2, 64),
	}
}

func submittedFor(req model.SubmitRequest, n int) model.SubmittedQuote {
	var volume float64
	for _, it := range req.Inventory {
		volume += float64(it.Quantity) * it.VolumeM3
	}
	return model.SubmittedQuote{
		ID:                 fmt.Sprintf("quote-%d", n),
		CompanyID:          "company-" + req.CompanySlug,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		CustomerName:       req.CustomerName,
		OriginAddress:      req.Origin,
		DestinationAddress: req.Destination,
		DistanceKm:         fakeDistanceKm,
		Inventory:          req.Inventory,
		Services:           req.Services,
		MinPrice:           model.Decimal(round2(volume * fakeMinPerM3)),
		MaxPrice:           model.Decimal(round2(volume * fakeMaxPerM3)),
		VolumeM3:           model.Decimal(volume),
		Status:             "pending",
		CreatedAt:          "2026-01-01T00:00:00Z",
	}
}

func adjustmentFor(p model.Prediction, req model.QuickAdjustment) model.Adjustment {
	base := p.PredictedVolumeM3.Float()
	v := base + base*float64(req.FurnitureLevel)*0.10
	v += float64(req.BoxCount-p.TypicalBoxes) * fakeBoxVolumeM3
	if req.HasWashingMachine {
		v += 0.8
	}
	if req.HasMountedKitchen {
		v += req.KitchenMeters * 1.5
	}
	if req.HasLargePlants {
		v += 2.0
	}
	v += float64(req.BicycleCount) * 0.5
	v = math.Round(v*10) / 10
	return model.Adjustment{
		AdjustedVolumeM3: model.Decimal(v),
		VolumeRange:      [2]model.Decimal{model.Decimal(math.Round(v*8.8) / 10), model.Decimal(math.Round(v*11.2) / 10)},
		ConfidenceScore:  0.8,
	}
}

func DefaultTemplates() []model.ItemTemplate {
	return []model.ItemTemplate{
		{ID: "sofa_3_seat", Name: "Sofa (3-seat)", Category: "living_room", VolumeM3: 2.5, WeightKg: 60, DisassemblyMinutes: 0, PackingMinutes: 10},
		{ID: "tv_stand", Name: "TV stand", Category: "living_room", VolumeM3: 0.6, WeightKg: 25, PackingMinutes: 5},
		{ID: "double_bed", Name: "Double bed", Category: "bedroom", VolumeM3: 2.0, WeightKg: 70, DisassemblyMinutes: 30},
		{ID: "wardrobe_2_door", Name: "Wardrobe (2-door)", Category: "bedroom", VolumeM3: 1.8, WeightKg: 80, DisassemblyMinutes: 40},
		{ID: "moving_box", Name: "Moving box", Category: "boxes", VolumeM3: 0.06, WeightKg: 15},
	}
}

func DefaultPrediction() model.Prediction {
	return model.Prediction{
		PredictedVolumeM3: 32.5,
		VolumeRange:       [2]model.Decimal{28.6, 36.4},
		ConfidenceScore:   0.88,
		TypicalItems: map[string][]model.TypicalItem{
			"living_room": {
				{Name: "Sofa (3-seat)", VolumeM3: 2.5, Quantity: 1},
				{Name: "TV stand", VolumeM3: 0.6, Quantity: 1},
			},
			"bedroom": {
				{Name: "Double bed", VolumeM3: 2.0, Quantity: 1},
				{Name: "Wardrobe (2-door)", VolumeM3: 1.8, Quantity: 2},
			},
		},
		TypicalBoxes:       40,
		ProfileKey:         "2br_couple_normal",
		PersonaDescription: "Couple in a two-bedroom apartment",
		Breakdown:          map[string]model.Decimal{"living_room": 3.1, "bedroom": 5.6},
	}
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
