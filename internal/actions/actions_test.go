package actions

import (
	"testing"

	json "github.com/goccy/go-json"

	"quote-wizard/internal/model"
	"quote-wizard/internal/store"
)

type fakeCatalog map[string]model.ItemTemplate

func (c fakeCatalog) Cached(id string) (model.ItemTemplate, bool) {
	t, ok := c[id]
	return t, ok
}

func act(name, props string) *model.Action {
	return &model.Action{Name: name, Properties: json.RawMessage(props)}
}

// run validates and applies like the engine does.
func run(t *testing.T, r *Registry, st *store.Store, a *model.Action) []model.Message {
	t.Helper()
	h, ok := r.Get(a.Name)
	if !ok {
		t.Fatalf("no handler for %s", a.Name)
	}
	msgs := h.Validate(st, a)
	if model.HasCritical(msgs) {
		return msgs
	}
	return append(msgs, h.Apply(st, a)...)
}

func TestPostalCodeAction(t *testing.T) {
	r := NewRegistry(nil)
	st := store.New()

	msgs := run(t, r, st, act("set_postal_code", `{"location":"origin","postal_code":"101"}`))
	if len(msgs) != 1 || msgs[0].Level != model.LevelWarning || msgs[0].Code != "POSTAL_CODE_INCOMPLETE" {
		t.Fatalf("expected incomplete warning, got %+v", msgs)
	}
	if st.Location(store.Origin).PostalCode != "101" {
		t.Fatal("partial input must still be stored")
	}

	msgs = run(t, r, st, act("set_postal_code", `{"location":"moon","postal_code":"10115"}`))
	if !model.HasCritical(msgs) || msgs[0].Code != "INVALID_LOCATION" {
		t.Fatalf("expected INVALID_LOCATION, got %+v", msgs)
	}

	msgs = run(t, r, st, act("set_postal_code", `{"location":"destination","postal_code":"80-331"}`))
	if len(msgs) != 0 || st.Location(store.Destination).PostalCode != "80331" {
		t.Fatalf("expected normalized destination, got %+v %q", msgs, st.Location(store.Destination).PostalCode)
	}
}

func TestInvalidProperties(t *testing.T) {
	r := NewRegistry(nil)
	msgs := run(t, r, store.New(), act("set_floor", `{"location":"origin","floor":"third"}`))
	if !model.HasCritical(msgs) || msgs[0].Code != "INVALID_PROPERTIES" {
		t.Fatalf("expected INVALID_PROPERTIES, got %+v", msgs)
	}
}

func TestAddItemUsesCatalog(t *testing.T) {
	r := NewRegistry(fakeCatalog{
		"double_bed": {ID: "double_bed", Name: "Double bed", Category: "bedroom", VolumeM3: 2},
	})
	st := store.New()

	if msgs := run(t, r, st, act("add_item", `{"item_id":"double_bed","quantity":2}`)); len(msgs) != 0 {
		t.Fatalf("unexpected messages %+v", msgs)
	}
	inv := st.Inventory()
	if len(inv) != 1 || inv[0].Name != "Double bed" || inv[0].VolumeM3 != 2 || inv[0].Quantity != 2 {
		t.Fatalf("unexpected inventory %+v", inv)
	}

	run(t, r, st, act("add_item", `{"item_id":"double_bed"}`))
	if st.Inventory()[0].Quantity != 3 {
		t.Fatalf("expected merge to quantity 3, got %d", st.Inventory()[0].Quantity)
	}

	msgs := run(t, r, st, act("add_item", `{"item_id":"piano"}`))
	if !model.HasCritical(msgs) || msgs[0].Code != "UNKNOWN_ITEM" {
		t.Fatalf("expected UNKNOWN_ITEM, got %+v", msgs)
	}
	if msgs := run(t, r, st, act("add_item", `{"item_id":"piano","name":"Piano","volume_m3":1.5}`)); len(msgs) != 0 {
		t.Fatalf("explicit volume must be accepted, got %+v", msgs)
	}
}

func TestItemQuantityActions(t *testing.T) {
	r := NewRegistry(nil)
	st := store.New()
	run(t, r, st, act("add_item", `{"item_id":"box","volume_m3":0.06,"quantity":10}`))

	msgs := run(t, r, st, act("set_item_quantity", `{"item_id":"box","quantity":0}`))
	if len(msgs) != 1 || msgs[0].Code != "ITEM_REMOVED" {
		t.Fatalf("expected ITEM_REMOVED warning, got %+v", msgs)
	}
	if st.HasItem("box") {
		t.Fatal("zero quantity must remove the line")
	}

	msgs = run(t, r, st, act("remove_item", `{"item_id":"box"}`))
	if !model.HasCritical(msgs) || msgs[0].Code != "ITEM_NOT_FOUND" {
		t.Fatalf("expected ITEM_NOT_FOUND, got %+v", msgs)
	}
}

func TestSliderActions(t *testing.T) {
	tests := []struct {
		action  string
		props   string
		service model.ServiceType
		warning bool
		cost    float64
	}{
		{"set_kitchen_meters", `{"value":4}`, model.ServiceKitchenAssembly, false, 180},
		{"set_kitchen_meters", `{"value":12}`, model.ServiceKitchenAssembly, true, 450},
		{"set_disposal_volume", `{"value":5}`, model.ServiceDisposal, false, 305},
		{"set_carry_distance", `{"value":25}`, model.ServiceLongCarry, false, 70},
		{"set_carry_distance", `{"value":-5}`, model.ServiceLongCarry, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.action+tt.props, func(t *testing.T) {
			st := store.New()
			msgs := run(t, NewRegistry(nil), st, act(tt.action, tt.props))
			if (len(msgs) == 1 && msgs[0].Code == "VALUE_CLAMPED") != tt.warning {
				t.Fatalf("unexpected messages %+v", msgs)
			}
			svc := st.Services()[tt.service]
			if svc.Cost == nil || *svc.Cost != tt.cost {
				t.Fatalf("expected cost %v, got %v", tt.cost, svc.Cost)
			}
		})
	}
}

func TestSelectInsuranceAction(t *testing.T) {
	r := NewRegistry(nil)
	st := store.New()
	run(t, r, st, act("select_insurance", `{"tier":"basic","declared_value":15000}`))
	run(t, r, st, act("select_insurance", `{"tier":"premium","declared_value":30000}`))

	enabled := 0
	for _, svc := range []model.ServiceType{model.ServiceInsuranceBasic, model.ServiceInsurancePremium} {
		if st.Services()[svc].Enabled {
			enabled++
		}
	}
	if enabled != 1 || st.InsuranceTier() != model.InsurancePremium {
		t.Fatalf("expected only premium enabled, got %d enabled, tier %s", enabled, st.InsuranceTier())
	}

	msgs := run(t, r, st, act("select_insurance", `{"tier":"gold"}`))
	if !model.HasCritical(msgs) {
		t.Fatal("unknown tier must be rejected")
	}
}

func TestSetCustomerFlagsBadEmail(t *testing.T) {
	r := NewRegistry(nil)
	st := store.New()
	msgs := run(t, r, st, act("set_customer", `{"email":"anna@","name":"Anna"}`))
	if len(msgs) != 1 || msgs[0].Code != "INVALID_EMAIL" || msgs[0].Level != model.LevelWarning {
		t.Fatalf("expected INVALID_EMAIL warning, got %+v", msgs)
	}
	if st.Customer().Name != "Anna" {
		t.Fatal("customer must be stored despite the warning")
	}
}

func TestSetProfileAction(t *testing.T) {
	r := NewRegistry(nil)
	st := store.New()
	msgs := run(t, r, st, act("set_profile", `{"apartment_size":"2br","household_type":"couple","years_lived":70}`))
	if len(msgs) != 1 || msgs[0].Code != "YEARS_LIVED_CLAMPED" {
		t.Fatalf("expected YEARS_LIVED_CLAMPED, got %+v", msgs)
	}
	p := st.SmartProfile()
	if p.YearsLived != 50 || p.FurnishingLevel != "normal" {
		t.Fatalf("unexpected profile %+v", p)
	}

	msgs = run(t, r, st, act("set_profile", `{"apartment_size":"castle"}`))
	if !model.HasCritical(msgs) {
		t.Fatal("unknown size must be rejected")
	}
}
