package store

import (
	"quote-wizard/internal/heuristics"
	"quote-wizard/internal/model"
)

// ToggleService switches a service on or off. Enabling one insurance tier
// switches the other one off. Slider-driven services only turn on while their
// previewed cost is positive.
func (st *Store) ToggleService(t model.ServiceType, enabled bool) {
	if !t.Valid() {
		return
	}
	if _, ok := heuristics.ServiceCost(t, model.ServiceMetadata{}); ok {
		st.updateSlider(t, enabled, func(*model.ServiceMetadata) {})
		return
	}
	svc := st.s.Services[t]
	svc.Enabled = enabled
	st.s.Services[t] = svc
	if enabled && t.IsInsurance() {
		st.disableOtherInsurance(t)
	}
}

func (st *Store) disableOtherInsurance(keep model.ServiceType) {
	for _, t := range []model.ServiceType{model.ServiceInsuranceBasic, model.ServiceInsurancePremium} {
		if t == keep {
			continue
		}
		if svc, ok := st.s.Services[t]; ok {
			svc.Enabled = false
			st.s.Services[t] = svc
		}
	}
}

// SelectInsurance enables exactly the given tier, or none.
func (st *Store) SelectInsurance(tier model.InsuranceTier, declaredValue float64) {
	if declaredValue < 0 {
		declaredValue = 0
	}
	t, ok := tier.ServiceType()
	if !ok {
		st.disableOtherInsurance("")
		return
	}
	svc := st.s.Services[t]
	svc.Enabled = true
	svc.Metadata.DeclaredValue = declaredValue
	st.s.Services[t] = svc
	st.disableOtherInsurance(t)
}

// InsuranceTier returns the enabled insurance tier.
func (st *Store) InsuranceTier() model.InsuranceTier {
	switch {
	case st.s.Services[model.ServiceInsurancePremium].Enabled:
		return model.InsurancePremium
	case st.s.Services[model.ServiceInsuranceBasic].Enabled:
		return model.InsuranceBasic
	}
	return model.InsuranceNone
}

// SetKitchenMeters stores the clamped kitchen length; the service is enabled
// exactly when the previewed cost is positive.
func (st *Store) SetKitchenMeters(m float64) {
	m = heuristics.ClampKitchenMeters(m)
	st.setSlider(model.ServiceKitchenAssembly, func(md *model.ServiceMetadata) { md.KitchenMeters = m })
}

func (st *Store) SetDisposalVolume(v float64) {
	v = heuristics.ClampDisposalVolume(v)
	st.setSlider(model.ServiceDisposal, func(md *model.ServiceMetadata) { md.DisposalVolumeM3 = v })
}

func (st *Store) SetCarryDistance(d float64) {
	d = heuristics.ClampCarryDistance(d)
	st.setSlider(model.ServiceLongCarry, func(md *model.ServiceMetadata) { md.CarryDistanceM = d })
}

func (st *Store) setSlider(t model.ServiceType, set func(*model.ServiceMetadata)) {
	st.updateSlider(t, true, set)
}

func (st *Store) updateSlider(t model.ServiceType, enabled bool, set func(*model.ServiceMetadata)) {
	svc := st.s.Services[t]
	set(&svc.Metadata)
	cost, _ := heuristics.ServiceCost(t, svc.Metadata)
	svc.Enabled = enabled && cost > 0
	svc.Cost = &cost
	st.s.Services[t] = svc
}
