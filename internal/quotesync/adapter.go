// Package quotesync moves session data to and from the pricing backend.
//
// Calls are split in three phases so the caller can hold its session lock
// only while reading and merging: build a request from the store, call the
// backend without the lock, then merge the answer back. Every calculation
// gets a ticket and only the answer to the newest ticket is merged.
package quotesync

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"quote-wizard/internal/model"
	"quote-wizard/internal/pricingapi"
	"quote-wizard/internal/store"
)

var ErrSubmitInFlight = errors.New("a submission is already in progress")

// Backend is the part of the pricing API the adapter needs.
type Backend interface {
	Calculate(ctx context.Context, req model.CalculateRequest) (*model.QuoteResult, error)
	Submit(ctx context.Context, req model.SubmitRequest) (*model.SubmittedQuote, error)
}

type Ticket uint64

type Adapter struct {
	backend     Backend
	companySlug string
	logger      *zap.Logger

	latest     atomic.Uint64
	submitting atomic.Bool
}

func NewAdapter(backend Backend, companySlug string, logger *zap.Logger) *Adapter {
	return &Adapter{backend: backend, companySlug: companySlug, logger: logger}
}

// Issue hands out a new ticket, superseding every earlier one.
func (a *Adapter) Issue() Ticket { return Ticket(a.latest.Add(1)) }

// Invalidate supersedes every ticket issued so far without starting a request.
func (a *Adapter) Invalidate() { a.latest.Add(1) }

func (a *Adapter) IsCurrent(t Ticket) bool { return uint64(t) == a.latest.Load() }

// CalculateRequest builds the calculation input from the store. Messages are
// returned instead of a request when the inputs cannot be priced.
func CalculateRequest(st *store.Store) (model.CalculateRequest, []model.Message) {
	origin, dest := st.Location(store.Origin), st.Location(store.Destination)
	if msgs := validatePostalCodes(origin, dest); len(msgs) > 0 {
		return model.CalculateRequest{}, msgs
	}

	req := model.CalculateRequest{
		OriginPostalCode:       origin.PostalCode,
		DestinationPostalCode:  dest.PostalCode,
		OriginFloor:            origin.Floor,
		DestinationFloor:       dest.Floor,
		OriginHasElevator:      origin.HasElevator,
		DestinationHasElevator: dest.HasElevator,
		Services:               model.ServiceLines(st.Services()),
	}
	if v, ok := st.CalculationVolume(); ok {
		req.VolumeM3 = &v
		return req, nil
	}
	if !st.ApartmentSize().Valid() {
		return model.CalculateRequest{}, []model.Message{
			model.Critical("APARTMENT_SIZE_REQUIRED", "apartment_size", "Select the apartment size"),
		}
	}
	req.ApartmentSize = st.ApartmentSize()
	return req, nil
}

// Calculate performs one calculation call. It does not touch any session.
func (a *Adapter) Calculate(ctx context.Context, req model.CalculateRequest) (*model.QuoteResult, error) {
	return a.backend.Calculate(ctx, req)
}

// Merge applies a calculation outcome to the store when t is still the
// newest ticket. It reports whether anything was applied.
func (a *Adapter) Merge(st *store.Store, t Ticket, q *model.QuoteResult, err error) bool {
	if !a.IsCurrent(t) {
		a.logger.Debug("discarding superseded calculation", zap.Uint64("ticket", uint64(t)))
		return false
	}
	if err != nil {
		st.SetError(ErrorMessage(err))
		return true
	}
	st.SetQuote(q)
	st.ClearError()
	return true
}

// SubmitRequest builds the submission input, or the local validation
// messages that prevent it.
func (a *Adapter) SubmitRequest(st *store.Store) (model.SubmitRequest, []model.Message) {
	c := st.Customer()
	origin, dest := st.Location(store.Origin), st.Location(store.Destination)

	msgs := validateCustomer(c)
	msgs = append(msgs, validatePostalCodes(origin, dest)...)
	if len(msgs) > 0 {
		return model.SubmitRequest{}, msgs
	}

	req := model.SubmitRequest{
		CompanySlug:   a.companySlug,
		CustomerEmail: c.Email,
		Origin:        origin,
		Destination:   dest,
		Inventory:     st.Inventory(),
		Services:      model.ServiceLines(st.Services()),
	}
	if c.Phone != "" {
		req.CustomerPhone = &c.Phone
	}
	if c.Name != "" {
		req.CustomerName = &c.Name
	}
	return req, nil
}

// Submit performs the submission call. A second call while one is running
// fails with ErrSubmitInFlight without reaching the backend.
func (a *Adapter) Submit(ctx context.Context, req model.SubmitRequest) (*model.SubmittedQuote, error) {
	if !a.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer a.submitting.Store(false)
	return a.backend.Submit(ctx, req)
}

func (a *Adapter) Submitting() bool { return a.submitting.Load() }

// MergeSubmission stores the persisted quote, or the error leaving the
// session editable.
func MergeSubmission(st *store.Store, q *model.SubmittedQuote, err error) {
	if err != nil {
		st.SetError(ErrorMessage(err))
		return
	}
	st.ClearError()
	st.SetSubmitted(q)
}

// ErrorMessage turns a backend failure into the text stored on the session.
func ErrorMessage(err error) string {
	var apiErr *pricingapi.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The pricing service did not answer in time"
	}
	return "The pricing service is unavailable"
}
