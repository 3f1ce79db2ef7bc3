// Package steps holds the wizard's step graph: which event moves which step
// where, and under what conditions.
package steps

import (
	"fmt"

	"quote-wizard/internal/model"
)

type Event string

const (
	EventNext           Event = "next"
	EventBack           Event = "back"
	EventConfirm        Event = "confirm"
	EventAdjust         Event = "adjust"
	EventInventoryFirst Event = "inventory_first"
)

// Effect is work the engine performs between the guards and the commit of a
// transition, in the order listed.
type Effect int

const (
	// EffectFetchPrediction requests a smart prediction for the stored profile.
	EffectFetchPrediction Effect = iota + 1
	// EffectImportPrediction turns the prediction's typical items into inventory.
	EffectImportPrediction
	// EffectRecalculate runs an awaited quote calculation.
	EffectRecalculate
)

// Guard returns a blocking message, or nil when the transition may proceed.
type Guard func(s *model.Session) *model.Message

type Transition struct {
	From  model.Step
	Event Event
	To    model.Step
	// Target overrides To for transitions whose destination depends on the session.
	Target func(s *model.Session) model.Step
	// Guards run before any effect, PostGuards after all effects.
	Guards     []Guard
	Effects    []Effect
	PostGuards []Guard
	// Route and DetailedMode are recorded on commit when set.
	Route        model.Route
	DetailedMode bool
}

type TransitionKey struct {
	From  model.Step
	Event Event
}

var table = map[TransitionKey]Transition{
	{model.StepInstant, EventNext}: {
		To:     model.StepSmartProfile,
		Guards: []Guard{GuardInstantReady, GuardHasQuote, GuardNoError, guardRouteNot(model.RouteManual)},
	},
	{model.StepInstant, EventInventoryFirst}: {
		To:     model.StepInventory,
		Guards: []Guard{GuardInstantReady, GuardHasQuote, GuardNoError, guardRouteNot(model.RouteSmart)},
		Route:  model.RouteManual,
	},
	{model.StepSmartProfile, EventNext}: {
		To:         model.StepSmartPreview,
		Guards:     []Guard{GuardProfileComplete},
		Effects:    []Effect{EffectFetchPrediction},
		PostGuards: []Guard{GuardNoError, GuardHasPrediction},
		Route:      model.RouteSmart,
	},
	{model.StepSmartPreview, EventConfirm}: {
		To:      model.StepServices,
		Guards:  []Guard{GuardHasPrediction},
		Effects: []Effect{EffectImportPrediction},
	},
	{model.StepSmartPreview, EventAdjust}: {
		To:           model.StepInventory,
		Guards:       []Guard{GuardHasPrediction},
		Effects:      []Effect{EffectImportPrediction},
		DetailedMode: true,
	},
	{model.StepInventory, EventNext}: {
		To:         model.StepServices,
		Guards:     []Guard{GuardInventoryNotEmpty},
		Effects:    []Effect{EffectRecalculate},
		PostGuards: []Guard{GuardNoError},
	},
	{model.StepServices, EventNext}: {
		To:         model.StepContact,
		Effects:    []Effect{EffectRecalculate},
		PostGuards: []Guard{GuardNoError},
	},

	{model.StepInstant, EventBack}:      {To: model.StepInstant},
	{model.StepSmartProfile, EventBack}: {To: model.StepInstant},
	{model.StepSmartPreview, EventBack}: {To: model.StepSmartProfile},
	{model.StepInventory, EventBack}:    {Target: backFromInventory},
	{model.StepServices, EventBack}:     {Target: backFromServices},
	{model.StepContact, EventBack}:      {To: model.StepServices},
}

func init() {
	for k, t := range table {
		t.From, t.Event = k.From, k.Event
		table[k] = t
	}
}

// Lookup returns the transition registered for the pair.
func Lookup(from model.Step, event Event) (Transition, bool) {
	t, ok := table[TransitionKey{From: from, Event: event}]
	return t, ok
}

// Events lists the events registered for a step.
func Events(from model.Step) []Event {
	var out []Event
	for _, e := range []Event{EventNext, EventBack, EventConfirm, EventAdjust, EventInventoryFirst} {
		if _, ok := table[TransitionKey{From: from, Event: e}]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Plan finds the transition for the session's current step and evaluates
// its guards. A non-empty message list means the transition is blocked.
func Plan(s *model.Session, event Event) (Transition, []model.Message) {
	if s.Submitted != nil {
		return Transition{}, []model.Message{model.Critical("SESSION_SUBMITTED", "",
			"The quote has already been submitted; restart to begin a new one")}
	}
	t, ok := Lookup(s.CurrentStep, event)
	if !ok {
		return Transition{}, []model.Message{model.Critical("INVALID_TRANSITION", "",
			fmt.Sprintf("Event %q is not allowed in step %s", event, s.CurrentStep))}
	}
	return t, Check(s, t.Guards)
}

// Check runs guards in order and stops at the first blocking one.
func Check(s *model.Session, guards []Guard) []model.Message {
	for _, g := range guards {
		if m := g(s); m != nil {
			return []model.Message{*m}
		}
	}
	return nil
}

// Destination resolves where the transition leads for this session,
// redirecting away from steps the session cannot display.
func (t Transition) Destination(s *model.Session) model.Step {
	to := t.To
	if t.Target != nil {
		to = t.Target(s)
	}
	return Arrive(s, to)
}

// Arrive returns the step actually shown when the session lands on to.
func Arrive(s *model.Session, to model.Step) model.Step {
	if to == model.StepSmartPreview && s.Prediction == nil {
		return model.StepSmartProfile
	}
	return to
}

func backFromInventory(s *model.Session) model.Step {
	if s.Route == model.RouteSmart {
		return model.StepSmartPreview
	}
	return model.StepInstant
}

func backFromServices(s *model.Session) model.Step {
	if s.Route == model.RouteManual || s.DetailedMode {
		return model.StepInventory
	}
	return model.StepSmartPreview
}
