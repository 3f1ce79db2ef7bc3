// Package engine runs one wizard session: it applies user actions to the
// session store, drives the step graph and syncs with the pricing backend.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"quote-wizard/internal/actions"
	"quote-wizard/internal/heuristics"
	"quote-wizard/internal/jsonpatch"
	"quote-wizard/internal/model"
	"quote-wizard/internal/quotesync"
	"quote-wizard/internal/steps"
	"quote-wizard/internal/store"
)

const DefaultDebounce = 500 * time.Millisecond

// Backend is everything a wizard asks of the pricing service.
type Backend interface {
	quotesync.Backend
	SmartPrediction(ctx context.Context, profile model.SmartProfile) (*model.Prediction, error)
	QuickAdjustment(ctx context.Context, adj model.QuickAdjustment) (*model.Adjustment, error)
}

type Deps struct {
	Backend     Backend
	Templates   actions.TemplateLookup
	CompanySlug string
	Debounce    time.Duration
	Logger      *zap.Logger
}

// Wizard owns one session. All methods are safe for concurrent use; state
// changes are serialized by mu and remote calls run without holding it.
type Wizard struct {
	id       string
	backend  Backend
	registry *actions.Registry
	sync     *quotesync.Adapter
	debounce *quotesync.Debouncer
	logger   *zap.Logger

	mu sync.Mutex
	st *store.Store

	transitioning atomic.Bool
	lastUsed      atomic.Int64
}

func New(id string, deps Deps) *Wizard {
	if deps.Debounce <= 0 {
		deps.Debounce = DefaultDebounce
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	logger := deps.Logger.With(zap.String("session_id", id))
	w := &Wizard{
		id:       id,
		backend:  deps.Backend,
		registry: actions.NewRegistry(deps.Templates),
		sync:     quotesync.NewAdapter(deps.Backend, deps.CompanySlug, logger),
		debounce: quotesync.NewDebouncer(deps.Debounce),
		logger:   logger,
		st:       store.New(),
	}
	w.touch()
	return w
}

func (w *Wizard) ID() string { return w.id }

// LastUsed is when the session last handled a request.
func (w *Wizard) LastUsed() time.Time { return time.Unix(0, w.lastUsed.Load()) }

func (w *Wizard) touch() { w.lastUsed.Store(time.Now().UnixNano()) }

// Close stops any pending background work.
func (w *Wizard) Close() { w.debounce.Cancel() }

func (w *Wizard) View() model.SessionView {
	w.touch()
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked(nil, nil)
}

// Apply processes actions in order. Processing stops at the first action
// that yields a critical message; actions before it stay applied.
func (w *Wizard) Apply(ctx context.Context, batch []model.Action) model.SessionView {
	w.touch()
	w.mu.Lock()
	defer w.mu.Unlock()

	before := w.st.Snapshot()
	if before.Submitted != nil {
		return w.viewLocked([]model.Message{model.Critical("SESSION_SUBMITTED", "",
			"The quote has already been submitted; restart to begin a new one")}, nil)
	}
	instantBefore := w.st.InstantInputs()

	var allMessages []model.Message
	for i := range batch {
		action := &batch[i]
		handler, ok := w.registry.Get(action.Name)
		if !ok {
			allMessages = append(allMessages, model.Critical("UNKNOWN_ACTION", "",
				fmt.Sprintf("Unknown action: %s", action.Name)))
			break
		}

		msgs := handler.Validate(w.st, action)
		allMessages = append(allMessages, msgs...)
		if model.HasCritical(msgs) {
			break
		}

		msgs = handler.Apply(w.st, action)
		allMessages = append(allMessages, msgs...)
		if model.HasCritical(msgs) {
			break
		}
	}

	if w.st.Step() == model.StepInstant && w.st.InstantInputs() != instantBefore {
		// the quote priced other inputs
		w.sync.Invalidate()
		w.st.SetQuote(nil)
		if w.st.InstantReady() {
			w.debounce.Schedule(w.debouncedRecalculate)
		} else {
			w.debounce.Cancel()
		}
	}

	return w.viewLocked(allMessages, before)
}

func (w *Wizard) debouncedRecalculate() {
	if msgs := w.recalculate(context.Background()); len(msgs) > 0 {
		w.logger.Debug("instant preview skipped", zap.String("code", msgs[0].Code))
	}
}

// recalculate runs one awaited calculation. Messages are returned when the
// inputs cannot be priced and nothing was sent.
func (w *Wizard) recalculate(ctx context.Context) []model.Message {
	w.mu.Lock()
	req, msgs := quotesync.CalculateRequest(w.st)
	if len(msgs) > 0 {
		w.mu.Unlock()
		return msgs
	}
	ticket := w.sync.Issue()
	w.mu.Unlock()

	q, err := w.sync.Calculate(ctx, req)
	if err != nil {
		w.logger.Warn("quote calculation failed", zap.Error(err))
	}

	w.mu.Lock()
	w.sync.Merge(w.st, ticket, q, err)
	w.mu.Unlock()
	return nil
}

// Transition moves the wizard along the step graph. Blocked transitions
// leave the step unchanged and explain why.
func (w *Wizard) Transition(ctx context.Context, event steps.Event) model.SessionView {
	w.touch()
	if !w.transitioning.CompareAndSwap(false, true) {
		return w.viewWith(model.Critical("TRANSITION_IN_PROGRESS", "", "Another step change is in progress"))
	}
	defer w.transitioning.Store(false)

	w.mu.Lock()
	from := w.st.Step()
	w.mu.Unlock()

	// A pending instant preview is run now so the guards see fresh numbers.
	if from == model.StepInstant && event != steps.EventBack {
		w.debounce.Flush()
	}

	w.mu.Lock()
	before := w.st.Snapshot()
	t, msgs := steps.Plan(before, event)
	w.mu.Unlock()
	if len(msgs) > 0 {
		return w.viewWith(msgs...)
	}

	for _, eff := range t.Effects {
		if msgs := w.runEffect(ctx, eff); len(msgs) > 0 {
			return w.viewWith(msgs...)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	current := w.st.Snapshot()
	if current.CurrentStep != t.From {
		return w.viewLocked([]model.Message{model.Critical("STEP_CHANGED", "",
			"The session changed while the step was being validated")}, before)
	}
	if msgs := steps.Check(current, t.PostGuards); len(msgs) > 0 {
		return w.viewLocked(msgs, before)
	}

	if t.Route != model.RouteUnset {
		w.st.SetRoute(t.Route)
	}
	if t.DetailedMode {
		w.st.SetDetailedMode(true)
	}
	to := t.Destination(w.st.Snapshot())
	w.st.SetStep(to)
	if to != model.StepInstant {
		w.debounce.Cancel()
	}
	w.logger.Info("step changed",
		zap.String("from", t.From.String()),
		zap.String("to", to.String()),
		zap.String("event", string(event)),
	)
	return w.viewLocked(nil, before)
}

func (w *Wizard) runEffect(ctx context.Context, eff steps.Effect) []model.Message {
	switch eff {
	case steps.EffectFetchPrediction:
		return w.fetchPrediction(ctx)
	case steps.EffectImportPrediction:
		w.mu.Lock()
		w.st.ImportPrediction()
		w.mu.Unlock()
	case steps.EffectRecalculate:
		return w.recalculate(ctx)
	}
	return nil
}

func (w *Wizard) fetchPrediction(ctx context.Context) []model.Message {
	w.mu.Lock()
	profile := w.st.SmartProfile()
	w.mu.Unlock()
	if profile == nil {
		return []model.Message{model.Critical("PROFILE_INCOMPLETE", "smart_profile", "Answer the profile questions first")}
	}

	p, err := w.backend.SmartPrediction(ctx, *profile)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.logger.Warn("smart prediction failed", zap.Error(err))
		w.st.SetError(quotesync.ErrorMessage(err))
		return nil
	}
	w.st.SetPrediction(p)
	w.st.ClearError()
	return nil
}

// Adjust applies a quick adjustment to the current prediction. A failure
// keeps the unadjusted prediction and is reported as a warning.
func (w *Wizard) Adjust(ctx context.Context, adj model.QuickAdjustment) model.SessionView {
	w.touch()
	w.mu.Lock()
	before := w.st.Snapshot()
	if before.CurrentStep != model.StepSmartPreview || before.Prediction == nil {
		defer w.mu.Unlock()
		return w.viewLocked([]model.Message{model.Critical("ADJUSTMENT_NOT_AVAILABLE", "",
			"Quick adjustments are only available on the smart preview")}, nil)
	}
	adj.ProfileKey = before.Prediction.ProfileKey
	msgs := clampAdjustment(&adj)
	w.mu.Unlock()

	a, err := w.backend.QuickAdjustment(ctx, adj)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.logger.Warn("quick adjustment failed", zap.Error(err))
		msgs = append(msgs, model.Warning("ADJUSTMENT_FAILED", "", quotesync.ErrorMessage(err)))
		return w.viewLocked(msgs, before)
	}
	w.st.SetAdjustment(*a)
	return w.viewLocked(msgs, before)
}

func clampAdjustment(adj *model.QuickAdjustment) []model.Message {
	var msgs []model.Message
	clampInt := func(v *int, lo, hi int, field string) {
		if *v < lo || *v > hi {
			msgs = append(msgs, model.Warning("VALUE_CLAMPED", field, fmt.Sprintf("%s is limited to %d..%d", field, lo, hi)))
			*v = max(lo, min(*v, hi))
		}
	}
	clampInt(&adj.FurnitureLevel, -2, 2, "furniture_level")
	clampInt(&adj.BoxCount, 0, 100, "box_count")
	clampInt(&adj.BicycleCount, 0, 10, "bicycle_count")
	if adj.KitchenMeters < 0 || adj.KitchenMeters > 15 {
		msgs = append(msgs, model.Warning("VALUE_CLAMPED", "kitchen_meters", "kitchen_meters is limited to 0..15"))
		adj.KitchenMeters = max(0, min(adj.KitchenMeters, 15))
	}
	return msgs
}

// Submit sends the session to the backend. A failed submission keeps the
// session editable; a successful one freezes it until Restart.
func (w *Wizard) Submit(ctx context.Context) model.SessionView {
	w.touch()
	w.mu.Lock()
	before := w.st.Snapshot()
	var blocked []model.Message
	switch {
	case before.Submitted != nil:
		blocked = []model.Message{model.Critical("SESSION_SUBMITTED", "", "The quote has already been submitted")}
	case before.CurrentStep != model.StepContact:
		blocked = []model.Message{model.Critical("INVALID_STEP", "", "Quotes are submitted from the contact step")}
	}
	var req model.SubmitRequest
	if blocked == nil {
		req, blocked = w.sync.SubmitRequest(w.st)
	}
	if len(blocked) > 0 {
		defer w.mu.Unlock()
		return w.viewLocked(blocked, nil)
	}
	w.mu.Unlock()

	q, err := w.sync.Submit(ctx, req)
	if errors.Is(err, quotesync.ErrSubmitInFlight) {
		return w.viewWith(model.Critical("SUBMIT_IN_PROGRESS", "", err.Error()))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	quotesync.MergeSubmission(w.st, q, err)
	if err != nil {
		w.logger.Warn("quote submission failed", zap.Error(err))
		return w.viewLocked([]model.Message{model.Critical("REMOTE_ERROR", "", w.st.Error())}, before)
	}
	w.logger.Info("quote submitted", zap.String("quote_id", q.ID))
	return w.viewLocked(nil, before)
}

// Restart discards the session contents and starts over.
func (w *Wizard) Restart() model.SessionView {
	w.touch()
	w.debounce.Cancel()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sync.Invalidate()
	w.st.Reset()
	return w.viewLocked(nil, nil)
}

func (w *Wizard) viewWith(msgs ...model.Message) model.SessionView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked(msgs, nil)
}

// viewLocked renders the session. When before is set the view carries the
// patch from before to now.
func (w *Wizard) viewLocked(msgs []model.Message, before *model.Session) model.SessionView {
	snap := w.st.Snapshot()
	if msgs == nil {
		msgs = []model.Message{}
	}
	view := model.SessionView{
		SessionID: w.id,
		Step:      snap.CurrentStep.String(),
		Session:   snap,
		Preview:   heuristics.Compute(snap),
		Messages:  msgs,
	}
	if before != nil {
		patch, err := jsonpatch.Between(before, snap)
		if err != nil {
			w.logger.Error("session diff failed", zap.Error(err))
		}
		view.Patch = patch
	}
	return view
}
