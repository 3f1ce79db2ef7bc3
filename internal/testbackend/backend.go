// Package testbackend serves a fake pricing backend over an in-memory
// listener. It counts calls, records request bodies, can fail chosen
// endpoints, and can hold calculation responses until released.
package testbackend

import (
	"net"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"go.uber.org/zap"

	"quote-wizard/internal/model"
	"quote-wizard/internal/pricingapi"
)

const (
	URL = "http://pricing.test"

	PathCalculate       = "/api/v1/quote/calculate"
	PathSubmit          = "/api/v1/quote/submit"
	PathTemplates       = "/api/v1/quote/inventory/templates"
	PathSmartPrediction = "/api/v1/smart/smart-prediction"
	PathQuickAdjustment = "/api/v1/smart/quick-adjustment"
)

type failure struct {
	status int
	detail string
}

type Backend struct {
	ln  *fasthttputil.InmemoryListener
	srv *fasthttp.Server

	mu          sync.Mutex
	calls       map[string]int
	failures    map[string]failure
	calculates  []model.CalculateRequest
	submits     []model.SubmitRequest
	holding     bool
	held        []chan struct{}
	heldChanged chan struct{}

	Templates  []model.ItemTemplate
	Prediction model.Prediction
}

// Start serves the fake backend until Close.
func Start() *Backend {
	b := &Backend{
		ln:          fasthttputil.NewInmemoryListener(),
		calls:       make(map[string]int),
		failures:    make(map[string]failure),
		heldChanged: make(chan struct{}, 64),
		Templates:   DefaultTemplates(),
		Prediction:  DefaultPrediction(),
	}
	b.srv = &fasthttp.Server{Handler: b.handle}
	go b.srv.Serve(b.ln)
	return b
}

func (b *Backend) Close() {
	b.ReleaseAll()
	b.srv.Shutdown()
	b.ln.Close()
}

// Client returns a pricing client wired to this backend.
func (b *Backend) Client(logger *zap.Logger) *pricingapi.Client {
	return pricingapi.New(URL, 2*time.Second, logger, pricingapi.WithDial(b.Dial))
}

// Dial satisfies fasthttp.DialFunc.
func (b *Backend) Dial(addr string) (net.Conn, error) { return b.ln.Dial() }

// Calls returns how often path was requested.
func (b *Backend) Calls(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

func (b *Backend) CalculateRequests() []model.CalculateRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.CalculateRequest{}, b.calculates...)
}

func (b *Backend) SubmitRequests() []model.SubmitRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.SubmitRequest{}, b.submits...)
}

// Fail makes path answer with status and a FastAPI style detail until Recover.
func (b *Backend) Fail(path string, status int, detail string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[path] = failure{status: status, detail: detail}
}

func (b *Backend) Recover(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, path)
}

// Hold makes subsequent calculation requests wait for Release.
func (b *Backend) Hold() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.holding = true
}

// WaitHeld blocks until n calculation requests are waiting or timeout passes.
func (b *Backend) WaitHeld(n int, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		b.mu.Lock()
		got := len(b.held)
		b.mu.Unlock()
		if got >= n {
			return true
		}
		select {
		case <-b.heldChanged:
		case <-deadline:
			return false
		}
	}
}

// Release lets the i-th held request (in arrival order) answer.
func (b *Backend) Release(i int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < len(b.held) && b.held[i] != nil {
		close(b.held[i])
		b.held[i] = nil
	}
}

func (b *Backend) ReleaseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.holding = false
	for i, ch := range b.held {
		if ch != nil {
			close(ch)
			b.held[i] = nil
		}
	}
}

func (b *Backend) handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	b.mu.Lock()
	b.calls[path]++
	f, failing := b.failures[path]
	b.mu.Unlock()

	if failing {
		writeJSON(ctx, f.status, map[string]string{"detail": f.detail})
		return
	}

	switch path {
	case PathCalculate:
		b.calculate(ctx)
	case PathSubmit:
		b.submit(ctx)
	case PathTemplates:
		b.templates(ctx)
	case PathSmartPrediction:
		writeJSON(ctx, fasthttp.StatusOK, b.Prediction)
	case PathQuickAdjustment:
		b.quickAdjustment(ctx)
	default:
		writeJSON(ctx, fasthttp.StatusNotFound, map[string]string{"detail": "Not Found"})
	}
}

func (b *Backend) calculate(ctx *fasthttp.RequestCtx) {
	var req model.CalculateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeJSON(ctx, fasthttp.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	b.mu.Lock()
	b.calculates = append(b.calculates, req)
	var gate chan struct{}
	if b.holding {
		gate = make(chan struct{})
		b.held = append(b.held, gate)
	}
	b.mu.Unlock()

	if gate != nil {
		select {
		case b.heldChanged <- struct{}{}:
		default:
		}
		<-gate
	}
	writeJSON(ctx, fasthttp.StatusOK, quoteWire(QuoteFor(req)))
}

func (b *Backend) submit(ctx *fasthttp.RequestCtx) {
	var req model.SubmitRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeJSON(ctx, fasthttp.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	b.mu.Lock()
	b.submits = append(b.submits, req)
	n := len(b.submits)
	b.mu.Unlock()

	writeJSON(ctx, fasthttp.StatusOK, submittedFor(req, n))
}

func (b *Backend) templates(ctx *fasthttp.RequestCtx) {
	category := string(ctx.QueryArgs().Peek("category"))
	out := make([]model.ItemTemplate, 0, len(b.Templates))
	for _, t := range b.Templates {
		if category == "" || t.Category == category {
			out = append(out, t)
		}
	}
	writeJSON(ctx, fasthttp.StatusOK, out)
}

func (b *Backend) quickAdjustment(ctx *fasthttp.RequestCtx) {
	var req model.QuickAdjustment
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeJSON(ctx, fasthttp.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, adjustmentFor(b.Prediction, req))
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	b, _ := json.Marshal(v)
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(b)
}
