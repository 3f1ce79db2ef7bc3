package actions

import (
	"fmt"

	"quote-wizard/internal/model"
	"quote-wizard/internal/store"
)

type locationProps struct {
	Location    string `json:"location"`
	PostalCode  string `json:"postal_code"`
	Floor       int    `json:"floor"`
	HasElevator bool   `json:"has_elevator"`
	Street      string `json:"address"`
	City        string `json:"city"`
}

func decodeLocation(action *model.Action) (locationProps, store.Side, *model.Message) {
	var props locationProps
	if m := decode(action, &props); m != nil {
		return props, store.Origin, m
	}
	s, m := side(props.Location)
	return props, s, m
}

type SetPostalCodeHandler struct{}

func (h *SetPostalCodeHandler) Validate(st *store.Store, action *model.Action) []model.Message {
	var msgs []model.Message
	props, s, m := decodeLocation(action)
	if m != nil {
		return append(msgs, *m)
	}
	if code := store.NormalizePostalCode(props.PostalCode); code != "" && !store.ValidPostalCode(code) {
		msgs = append(msgs, model.Warning("POSTAL_CODE_INCOMPLETE", s.String()+".postal_code",
			"Postal code must have 5 digits"))
	}
	return msgs
}

func (h *SetPostalCodeHandler) Apply(st *store.Store, action *model.Action) []model.Message {
	props, s, _ := decodeLocation(action)
	st.SetPostalCode(s, props.PostalCode)
	return nil
}

type SetFloorHandler struct{}

func (h *SetFloorHandler) Validate(st *store.Store, action *model.Action) []model.Message {
	var msgs []model.Message
	props, s, m := decodeLocation(action)
	if m != nil {
		return append(msgs, *m)
	}
	if props.Floor < 0 {
		msgs = append(msgs, model.Warning("FLOOR_CLAMPED", s.String()+".floor",
			fmt.Sprintf("Floor %d is below ground; using 0", props.Floor)))
	}
	return msgs
}

func (h *SetFloorHandler) Apply(st *store.Store, action *model.Action) []model.Message {
	props, s, _ := decodeLocation(action)
	st.SetFloor(s, props.Floor)
	return nil
}

type SetElevatorHandler struct{}

func (h *SetElevatorHandler) Validate(st *store.Store, action *model.Action) []model.Message {
	if _, _, m := decodeLocation(action); m != nil {
		return []model.Message{*m}
	}
	return nil
}

func (h *SetElevatorHandler) Apply(st *store.Store, action *model.Action) []model.Message {
	props, s, _ := decodeLocation(action)
	st.SetElevator(s, props.HasElevator)
	return nil
}

type SetAddressHandler struct{}

func (h *SetAddressHandler) Validate(st *store.Store, action *model.Action) []model.Message {
	if _, _, m := decodeLocation(action); m != nil {
		return []model.Message{*m}
	}
	return nil
}

func (h *SetAddressHandler) Apply(st *store.Store, action *model.Action) []model.Message {
	props, s, _ := decodeLocation(action)
	st.SetAddress(s, props.Street, props.City)
	return nil
}
