package actions

import (
	"fmt"

	"quote-wizard/internal/model"
	"quote-wizard/internal/store"
)

var furnishingLevels = map[string]bool{"": true, "minimal": true, "normal": true, "full": true}

type apartmentSizeProps struct {
	ApartmentSize model.ApartmentSize `json:"apartment_size"`
}

type SetApartmentSizeHandler struct{}

func (h *SetApartmentSizeHandler) Validate(st *store.Store, action *model.Action) []model.Message {
	var msgs []model.Message
	var props apartmentSizeProps
	if m := decode(action, &props); m != nil {
		return append(msgs, *m)
	}
	if !props.ApartmentSize.Valid() {
		msgs = append(msgs, model.Critical("INVALID_APARTMENT_SIZE", "apartment_size",
			fmt.Sprintf("Unknown apartment size %q", props.ApartmentSize)))
	}
	return msgs
}

func (h *SetApartmentSizeHandler) Apply(st *store.Store, action *model.Action) []model.Message {
	var props apartmentSizeProps
	decode(action, &props)
	st.SetApartmentSize(props.ApartmentSize)
	return nil
}

// SetProfileHandler stores the smart-profile answers.
type SetProfileHandler struct{}

func (h *SetProfileHandler) Validate(st *store.Store, action *model.Action) []model.Message {
	var msgs []model.Message
	var props model.SmartProfile
	if m := decode(action, &props); m != nil {
		return append(msgs, *m)
	}
	if props.ApartmentSize != "" && !props.ApartmentSize.Valid() {
		msgs = append(msgs, model.Critical("INVALID_APARTMENT_SIZE", "smart_profile.apartment_size",
			fmt.Sprintf("Unknown apartment size %q", props.ApartmentSize)))
		return msgs
	}
	if !furnishingLevels[props.FurnishingLevel] {
		msgs = append(msgs, model.Critical("INVALID_FURNISHING_LEVEL", "smart_profile.furnishing_level",
			"Furnishing level must be minimal, normal or full"))
		return msgs
	}
	if props.YearsLived < 0 || props.YearsLived > 50 {
		msgs = append(msgs, model.Warning("YEARS_LIVED_CLAMPED", "smart_profile.years_lived",
			"Years lived is limited to 0..50"))
	}
	return msgs
}

func (h *SetProfileHandler) Apply(st *store.Store, action *model.Action) []model.Message {
	var props model.SmartProfile
	decode(action, &props)
	st.SetSmartProfile(props)
	return nil
}
