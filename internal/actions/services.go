package actions

import (
	"fmt"

	"quote-wizard/internal/heuristics"
	"quote-wizard/internal/model"
	"quote-wizard/internal/store"
)

type toggleProps struct {
	ServiceType model.ServiceType `json:"service_type"`
	Enabled     bool              `json:"enabled"`
}

type ToggleServiceHandler struct{}

func (h *ToggleServiceHandler) Validate(st *store.Store, action *model.Action) []model.Message {
	var msgs []model.Message
	var props toggleProps
	if m := decode(action, &props); m != nil {
		return append(msgs, *m)
	}
	if !props.ServiceType.Valid() {
		msgs = append(msgs, model.Critical("UNKNOWN_SERVICE", "service_type",
			fmt.Sprintf("Unknown service %q", props.ServiceType)))
	}
	return msgs
}

func (h *ToggleServiceHandler) Apply(st *store.Store, action *model.Action) []model.Message {
	var props toggleProps
	decode(action, &props)
	st.ToggleService(props.ServiceType, props.Enabled)
	return nil
}

type sliderKind int

const (
	sliderKitchen sliderKind = iota
	sliderDisposal
	sliderCarry
)

type sliderProps struct {
	Value float64 `json:"value"`
}

// SliderHandler sets one of the slider-driven service inputs. Out of range
// values are clamped with a warning.
type SliderHandler struct {
	Kind sliderKind
}

func (h *SliderHandler) Validate(st *store.Store, action *model.Action) []model.Message {
	var msgs []model.Message
	var props sliderProps
	if m := decode(action, &props); m != nil {
		return append(msgs, *m)
	}
	field, clamped := h.clamp(props.Value)
	if clamped != props.Value {
		msgs = append(msgs, model.Warning("VALUE_CLAMPED", field,
			fmt.Sprintf("%v is out of range; using %v", props.Value, clamped)))
	}
	return msgs
}

func (h *SliderHandler) Apply(st *store.Store, action *model.Action) []model.Message {
	var props sliderProps
	decode(action, &props)
	switch h.Kind {
	case sliderKitchen:
		st.SetKitchenMeters(props.Value)
	case sliderDisposal:
		st.SetDisposalVolume(props.Value)
	case sliderCarry:
		st.SetCarryDistance(props.Value)
	}
	return nil
}

func (h *SliderHandler) clamp(v float64) (field string, clamped float64) {
	switch h.Kind {
	case sliderKitchen:
		return "services.kitchen_assembly.kitchen_meters", heuristics.ClampKitchenMeters(v)
	case sliderDisposal:
		return "services.disposal.disposal_volume_m3", heuristics.ClampDisposalVolume(v)
	default:
		return "services.long_carry.carry_distance_m", heuristics.ClampCarryDistance(v)
	}
}

type insuranceProps struct {
	Tier          model.InsuranceTier `json:"tier"`
	DeclaredValue float64             `json:"declared_value"`
}

type SelectInsuranceHandler struct{}

func (h *SelectInsuranceHandler) Validate(st *store.Store, action *model.Action) []model.Message {
	var msgs []model.Message
	var props insuranceProps
	if m := decode(action, &props); m != nil {
		return append(msgs, *m)
	}
	switch props.Tier {
	case model.InsuranceNone, model.InsuranceBasic, model.InsurancePremium:
	default:
		msgs = append(msgs, model.Critical("INVALID_INSURANCE_TIER", "tier",
			"Insurance tier must be none, basic or premium"))
		return msgs
	}
	if props.DeclaredValue < 0 {
		msgs = append(msgs, model.Critical("INVALID_DECLARED_VALUE", "declared_value",
			"Declared value must be non-negative"))
	}
	return msgs
}

func (h *SelectInsuranceHandler) Apply(st *store.Store, action *model.Action) []model.Message {
	var props insuranceProps
	decode(action, &props)
	st.SelectInsurance(props.Tier, props.DeclaredValue)
	return nil
}
