package steps

import (
	"quote-wizard/internal/model"
	"quote-wizard/internal/store"
)

// GuardInstantReady blocks leaving the instant step while its inputs could
// not be priced as entered.
func GuardInstantReady(s *model.Session) *model.Message {
	for _, l := range []struct {
		field string
		value string
	}{
		{"origin.postal_code", s.Origin.PostalCode},
		{"destination.postal_code", s.Destination.PostalCode},
	} {
		switch {
		case l.value == "":
			m := model.Critical("POSTAL_CODE_REQUIRED", l.field, "Postal code is required")
			return &m
		case !store.ValidPostalCode(l.value):
			m := model.Critical("INVALID_POSTAL_CODE", l.field, "Postal code must have 5 digits")
			return &m
		}
	}
	if !s.ApartmentSize.Valid() {
		m := model.Critical("APARTMENT_SIZE_REQUIRED", "apartment_size", "Select the apartment size")
		return &m
	}
	return nil
}

func GuardHasQuote(s *model.Session) *model.Message {
	if s.Quote == nil {
		m := model.Critical("QUOTE_REQUIRED", "", "No quote has been calculated yet")
		return &m
	}
	return nil
}

// GuardNoError blocks while a remote failure is stored on the session.
func GuardNoError(s *model.Session) *model.Message {
	if s.Error != "" {
		m := model.Critical("REMOTE_ERROR", "", s.Error)
		return &m
	}
	return nil
}

func GuardHasPrediction(s *model.Session) *model.Message {
	if s.Prediction == nil {
		m := model.Critical("PREDICTION_REQUIRED", "", "No smart prediction is available")
		return &m
	}
	return nil
}

func GuardInventoryNotEmpty(s *model.Session) *model.Message {
	if len(s.Inventory) == 0 {
		m := model.Critical("INVENTORY_EMPTY", "inventory", "Add at least one item")
		return &m
	}
	return nil
}

func GuardProfileComplete(s *model.Session) *model.Message {
	p := s.SmartProfile
	switch {
	case p == nil || !p.ApartmentSize.Valid():
		m := model.Critical("PROFILE_INCOMPLETE", "smart_profile.apartment_size", "Select the apartment size")
		return &m
	case p.HouseholdType == "":
		m := model.Critical("PROFILE_INCOMPLETE", "smart_profile.household_type", "Select the household type")
		return &m
	}
	return nil
}

func guardRouteNot(r model.Route) Guard {
	return func(s *model.Session) *model.Message {
		if s.Route == r {
			m := model.Critical("ROUTE_LOCKED", "", "The "+string(r)+" route has already been chosen")
			return &m
		}
		return nil
	}
}
