package actions

type Registry struct {
	handlers map[string]Handler
}

func NewRegistry(templates TemplateLookup) *Registry {
	return &Registry{handlers: map[string]Handler{
		"set_postal_code":     &SetPostalCodeHandler{},
		"set_floor":           &SetFloorHandler{},
		"set_elevator":        &SetElevatorHandler{},
		"set_address":         &SetAddressHandler{},
		"set_apartment_size":  &SetApartmentSizeHandler{},
		"set_profile":         &SetProfileHandler{},
		"add_item":            &AddItemHandler{Templates: templates},
		"set_item_quantity":   &SetItemQuantityHandler{},
		"remove_item":         &RemoveItemHandler{},
		"toggle_service":      &ToggleServiceHandler{},
		"set_kitchen_meters":  &SliderHandler{Kind: sliderKitchen},
		"set_disposal_volume": &SliderHandler{Kind: sliderDisposal},
		"set_carry_distance":  &SliderHandler{Kind: sliderCarry},
		"select_insurance":    &SelectInsuranceHandler{},
		"set_customer":        &SetCustomerHandler{},
	}}
}

func (r *Registry) Get(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}
