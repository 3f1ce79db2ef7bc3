package steps

import (
	"testing"

	"quote-wizard/internal/model"
)

func ready() *model.Session {
	s := model.NewSession()
	s.Origin.PostalCode = "10115"
	s.Destination.PostalCode = "80331"
	s.ApartmentSize = model.SizeTwoBR
	return s
}

func quoted() *model.Session {
	s := ready()
	s.Quote = &model.QuoteResult{MinPrice: 900, MaxPrice: 1200, VolumeM3: 40}
	return s
}

func TestPlanInstantNext(t *testing.T) {
	tests := []struct {
		name    string
		session func() *model.Session
		code    string
	}{
		{"no quote", ready, "QUOTE_REQUIRED"},
		{"empty session", model.NewSession, "POSTAL_CODE_REQUIRED"},
		{"short origin", func() *model.Session { s := quoted(); s.Origin.PostalCode = "101"; return s }, "INVALID_POSTAL_CODE"},
		{"missing destination", func() *model.Session { s := quoted(); s.Destination.PostalCode = ""; return s }, "POSTAL_CODE_REQUIRED"},
		{"missing size", func() *model.Session { s := quoted(); s.ApartmentSize = ""; return s }, "APARTMENT_SIZE_REQUIRED"},
		{"remote error", func() *model.Session { s := quoted(); s.Error = "backend down"; return s }, "REMOTE_ERROR"},
		{"manual route", func() *model.Session { s := quoted(); s.Route = model.RouteManual; return s }, "ROUTE_LOCKED"},
		{"ok", quoted, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, msgs := Plan(tt.session(), EventNext)
			if tt.code == "" {
				if len(msgs) != 0 {
					t.Fatalf("expected no messages, got %+v", msgs)
				}
				if tr.To != model.StepSmartProfile {
					t.Fatalf("expected smart_profile, got %s", tr.To)
				}
				return
			}
			if len(msgs) != 1 || msgs[0].Code != tt.code {
				t.Fatalf("expected %s, got %+v", tt.code, msgs)
			}
		})
	}
}

func TestInventoryFirstSetsManualRoute(t *testing.T) {
	tr, msgs := Plan(quoted(), EventInventoryFirst)
	if len(msgs) != 0 {
		t.Fatalf("unexpected messages %+v", msgs)
	}
	if tr.Route != model.RouteManual || tr.To != model.StepInventory {
		t.Fatalf("unexpected transition %+v", tr)
	}

	s := quoted()
	s.Route = model.RouteSmart
	if _, msgs := Plan(s, EventInventoryFirst); len(msgs) == 0 {
		t.Fatal("smart route must block the manual entry")
	}

	s = quoted()
	s.Destination.PostalCode = "8033"
	_, msgs = Plan(s, EventInventoryFirst)
	if len(msgs) != 1 || msgs[0].Code != "INVALID_POSTAL_CODE" || msgs[0].Field != "destination.postal_code" {
		t.Fatalf("malformed postal code must block the manual entry, got %+v", msgs)
	}
}

func TestSmartPreviewBranches(t *testing.T) {
	s := quoted()
	s.CurrentStep = model.StepSmartPreview
	s.Route = model.RouteSmart
	s.Prediction = &model.Prediction{PredictedVolumeM3: 30}

	confirm, msgs := Plan(s, EventConfirm)
	if len(msgs) != 0 || confirm.Destination(s) != model.StepServices {
		t.Fatalf("confirm must skip inventory, got %s %+v", confirm.Destination(s), msgs)
	}
	if confirm.DetailedMode {
		t.Fatal("confirm must not enable detailed mode")
	}

	adjust, msgs := Plan(s, EventAdjust)
	if len(msgs) != 0 || adjust.Destination(s) != model.StepInventory {
		t.Fatalf("adjust must go to inventory, got %s %+v", adjust.Destination(s), msgs)
	}
	if !adjust.DetailedMode {
		t.Fatal("adjust must enable detailed mode")
	}
}

func TestProfileGuard(t *testing.T) {
	s := quoted()
	s.CurrentStep = model.StepSmartProfile
	if _, msgs := Plan(s, EventNext); len(msgs) != 1 || msgs[0].Field != "smart_profile.apartment_size" {
		t.Fatalf("expected apartment size message, got %+v", msgs)
	}
	s.SmartProfile = &model.SmartProfile{ApartmentSize: model.SizeTwoBR}
	if _, msgs := Plan(s, EventNext); len(msgs) != 1 || msgs[0].Field != "smart_profile.household_type" {
		t.Fatalf("expected household type message, got %+v", msgs)
	}
	s.SmartProfile.HouseholdType = "couple"
	tr, msgs := Plan(s, EventNext)
	if len(msgs) != 0 {
		t.Fatalf("unexpected messages %+v", msgs)
	}
	if len(tr.Effects) != 1 || tr.Effects[0] != EffectFetchPrediction {
		t.Fatalf("expected prediction fetch, got %v", tr.Effects)
	}
}

func TestBackTargets(t *testing.T) {
	tests := []struct {
		name     string
		from     model.Step
		route    model.Route
		detailed bool
		want     model.Step
	}{
		{"services manual", model.StepServices, model.RouteManual, false, model.StepInventory},
		{"services smart detailed", model.StepServices, model.RouteSmart, true, model.StepInventory},
		{"services smart confirmed", model.StepServices, model.RouteSmart, false, model.StepSmartPreview},
		{"inventory smart", model.StepInventory, model.RouteSmart, true, model.StepSmartPreview},
		{"inventory manual", model.StepInventory, model.RouteManual, false, model.StepInstant},
		{"contact", model.StepContact, model.RouteManual, false, model.StepServices},
		{"profile", model.StepSmartProfile, model.RouteUnset, false, model.StepInstant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := model.NewSession()
			s.CurrentStep = tt.from
			s.Route = tt.route
			s.DetailedMode = tt.detailed
			s.Prediction = &model.Prediction{PredictedVolumeM3: 20}
			s.Error = "stale error does not block going back"

			tr, msgs := Plan(s, EventBack)
			if len(msgs) != 0 {
				t.Fatalf("back must always be allowed, got %+v", msgs)
			}
			if got := tr.Destination(s); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestArriveWithoutPredictionRedirects(t *testing.T) {
	s := model.NewSession()
	s.CurrentStep = model.StepServices
	s.Route = model.RouteSmart
	tr, _ := Plan(s, EventBack)
	if got := tr.Destination(s); got != model.StepSmartProfile {
		t.Fatalf("expected redirect to smart_profile, got %s", got)
	}
}

func TestUnknownEvent(t *testing.T) {
	s := model.NewSession()
	if _, msgs := Plan(s, EventConfirm); len(msgs) != 1 || msgs[0].Code != "INVALID_TRANSITION" {
		t.Fatalf("expected INVALID_TRANSITION, got %+v", msgs)
	}
}

func TestSubmittedSessionIsFrozen(t *testing.T) {
	s := quoted()
	s.CurrentStep = model.StepContact
	s.Submitted = &model.SubmittedQuote{ID: "q-1"}
	if _, msgs := Plan(s, EventBack); len(msgs) != 1 || msgs[0].Code != "SESSION_SUBMITTED" {
		t.Fatalf("expected SESSION_SUBMITTED, got %+v", msgs)
	}
}

func TestEvents(t *testing.T) {
	got := Events(model.StepSmartPreview)
	if len(got) != 3 {
		t.Fatalf("expected back, confirm and adjust, got %v", got)
	}
}
