// Package store owns the state of a single wizard session. Setters are total:
// they normalize invalid input instead of failing, and none of them moves the
// wizard to another step except SetStep.
//
// A Store is not safe for concurrent use; the engine serializes access.
package store

import (
	"strings"

	"quote-wizard/internal/heuristics"
	"quote-wizard/internal/model"
)

const (
	postalCodeLength = 5
	maxYearsLived    = 50
)

// Side selects one end of the move.
type Side int

const (
	Origin Side = iota
	Destination
)

// ParseSide maps the wire names "origin" and "destination".
func ParseSide(s string) (Side, bool) {
	switch s {
	case "origin":
		return Origin, true
	case "destination":
		return Destination, true
	}
	return Origin, false
}

func (s Side) String() string {
	if s == Destination {
		return "destination"
	}
	return "origin"
}

type Store struct {
	s *model.Session
}

func New() *Store {
	return &Store{s: model.NewSession()}
}

// Snapshot returns a deep copy of the whole session.
func (st *Store) Snapshot() *model.Session { return st.s.Clone() }

// Reset discards everything and starts over at the first step.
func (st *Store) Reset() { st.s = model.NewSession() }

func (st *Store) Step() model.Step                   { return st.s.CurrentStep }
func (st *Store) Route() model.Route                 { return st.s.Route }
func (st *Store) DetailedMode() bool                 { return st.s.DetailedMode }
func (st *Store) ApartmentSize() model.ApartmentSize { return st.s.ApartmentSize }
func (st *Store) Customer() model.Customer           { return st.s.Customer }
func (st *Store) Error() string                      { return st.s.Error }

func (st *Store) Location(side Side) model.Location {
	return *st.loc(side)
}

func (st *Store) Inventory() []model.InventoryItem {
	return append([]model.InventoryItem{}, st.s.Inventory...)
}

func (st *Store) Services() map[model.ServiceType]model.Service {
	return st.s.Clone().Services
}

func (st *Store) SmartProfile() *model.SmartProfile { return st.s.Clone().SmartProfile }
func (st *Store) Prediction() *model.Prediction     { return st.s.Prediction.Clone() }
func (st *Store) Submitted() *model.SubmittedQuote  { return st.s.Submitted.Clone() }

func (st *Store) Quote() *model.QuoteResult {
	if st.s.Quote == nil {
		return nil
	}
	q := *st.s.Quote
	return &q
}

func (st *Store) SetStep(step model.Step) {
	if step.Valid() {
		st.s.CurrentStep = step
	}
}

// SetRoute records the chosen path. Once a route is chosen it is kept until
// Reset.
func (st *Store) SetRoute(r model.Route) {
	if st.s.Route == model.RouteUnset {
		st.s.Route = r
	}
}

func (st *Store) SetDetailedMode(on bool) { st.s.DetailedMode = on }

func (st *Store) loc(side Side) *model.Location {
	if side == Destination {
		return &st.s.Destination
	}
	return &st.s.Origin
}

// NormalizePostalCode strips everything but digits and keeps at most five.
func NormalizePostalCode(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == postalCodeLength {
			break
		}
	}
	return b.String()
}

// ValidPostalCode reports whether code is exactly five digits.
func ValidPostalCode(code string) bool {
	return len(code) == postalCodeLength && NormalizePostalCode(code) == code
}

func (st *Store) SetPostalCode(side Side, raw string) {
	st.loc(side).PostalCode = NormalizePostalCode(raw)
}

func (st *Store) SetFloor(side Side, floor int) {
	if floor < 0 {
		floor = 0
	}
	st.loc(side).Floor = floor
}

func (st *Store) SetElevator(side Side, has bool) {
	st.loc(side).HasElevator = has
}

func (st *Store) SetAddress(side Side, street, city string) {
	l := st.loc(side)
	l.Street = strings.TrimSpace(street)
	l.City = strings.TrimSpace(city)
}

// SetApartmentSize stores a known size; unknown sizes clear the field.
func (st *Store) SetApartmentSize(size model.ApartmentSize) {
	if !size.Valid() {
		size = ""
	}
	st.s.ApartmentSize = size
}

// PricedLocation holds the location fields the calculation request carries.
type PricedLocation struct {
	PostalCode  string
	Floor       int
	HasElevator bool
}

func pricedLocation(l model.Location) PricedLocation {
	return PricedLocation{PostalCode: l.PostalCode, Floor: l.Floor, HasElevator: l.HasElevator}
}

// InstantInputs is the part of the session that drives the instant preview.
type InstantInputs struct {
	Origin        PricedLocation
	Destination   PricedLocation
	ApartmentSize model.ApartmentSize
	Services      string
}

func (st *Store) InstantInputs() InstantInputs {
	var svc strings.Builder
	for _, line := range model.ServiceLines(st.s.Services) {
		if line.Enabled {
			svc.WriteString(string(line.ServiceType))
			svc.WriteByte(',')
		}
	}
	return InstantInputs{
		Origin:        pricedLocation(st.s.Origin),
		Destination:   pricedLocation(st.s.Destination),
		ApartmentSize: st.s.ApartmentSize,
		Services:      svc.String(),
	}
}

// InstantReady reports whether the instant step has everything a
// calculation needs.
func (st *Store) InstantReady() bool {
	return ValidPostalCode(st.s.Origin.PostalCode) &&
		ValidPostalCode(st.s.Destination.PostalCode) &&
		st.s.ApartmentSize.Valid()
}

func (st *Store) SetCustomer(c model.Customer) {
	st.s.Customer = model.Customer{
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
		Name:  strings.TrimSpace(c.Name),
	}
}

// SetSmartProfile stores the profile answers, defaulting the furnishing
// level and clamping years lived.
func (st *Store) SetSmartProfile(p model.SmartProfile) {
	if p.FurnishingLevel == "" {
		p.FurnishingLevel = model.DefaultFurnishingLevel
	}
	if p.YearsLived < 0 {
		p.YearsLived = 0
	}
	if p.YearsLived > maxYearsLived {
		p.YearsLived = maxYearsLived
	}
	if !p.ApartmentSize.Valid() {
		p.ApartmentSize = ""
	}
	p.SpecialItems = dedupe(p.SpecialItems)
	st.s.SmartProfile = &p
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

func (st *Store) SetPrediction(p *model.Prediction) { st.s.Prediction = p.Clone() }

// SetAdjustment attaches a quick adjustment to the current prediction. It is
// dropped when no prediction exists.
func (st *Store) SetAdjustment(a model.Adjustment) {
	if st.s.Prediction == nil {
		return
	}
	st.s.Prediction.Adjustment = &a
}

// SetQuote replaces the quote wholesale.
func (st *Store) SetQuote(q *model.QuoteResult) {
	if q == nil {
		st.s.Quote = nil
		return
	}
	c := *q
	st.s.Quote = &c
}

func (st *Store) SetError(msg string) { st.s.Error = msg }
func (st *Store) ClearError()         { st.s.Error = "" }

func (st *Store) SetSubmitted(q *model.SubmittedQuote) { st.s.Submitted = q.Clone() }

// CalculationVolume returns the explicit volume to price, or ok=false when
// the apartment size should be sent instead.
func (st *Store) CalculationVolume() (volume float64, ok bool) {
	switch {
	case st.s.Route == model.RouteManual || st.s.DetailedMode:
		return heuristics.InventoryVolume(st.s.Inventory), true
	case st.s.Route == model.RouteSmart && st.s.Prediction != nil:
		return st.s.Prediction.Volume(), true
	}
	return 0, false
}
