package heuristics

import "quote-wizard/internal/model"

// DisplayVolume picks the best volume known for the session: the itemized
// inventory, then the smart prediction, then the last quote, then the
// typical volume of the apartment size.
func DisplayVolume(s *model.Session) float64 {
	if v := InventoryVolume(s.Inventory); v > 0 {
		return v
	}
	if v := s.Prediction.Volume(); v > 0 {
		return v
	}
	if s.Quote != nil && s.Quote.VolumeM3 > 0 {
		return s.Quote.VolumeM3.Float()
	}
	return s.ApartmentSize.FallbackVolume()
}

// ServiceCost previews the cost of one slider-driven service from its metadata.
// ok is false for services without a local formula.
func ServiceCost(t model.ServiceType, meta model.ServiceMetadata) (cost float64, ok bool) {
	switch t {
	case model.ServiceKitchenAssembly:
		return KitchenCost(meta.KitchenMeters), true
	case model.ServiceDisposal:
		return DisposalCost(meta.DisposalVolumeM3), true
	case model.ServiceLongCarry:
		return LongCarryCost(meta.CarryDistanceM), true
	}
	return 0, false
}

// Compute builds the preview block returned with every session snapshot.
func Compute(s *model.Session) model.Preview {
	volume := DisplayVolume(s)

	costs := make(map[model.ServiceType]float64)
	for t, svc := range s.Services {
		if !svc.Enabled {
			continue
		}
		if c, ok := ServiceCost(t, svc.Metadata); ok {
			costs[t] = c
		}
	}

	var quoteVolume float64
	if s.Quote != nil {
		quoteVolume = s.Quote.VolumeM3.Float()
	}

	return model.Preview{
		VolumeM3:              volume,
		Truck:                 Truck(volume),
		ServiceCosts:          costs,
		ExternalLiftSuggested: SuggestExternalLift(s.Origin, s.Destination, quoteVolume),
	}
}
