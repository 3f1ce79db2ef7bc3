// Package handler exposes wizard sessions over a JSON API.
package handler

import (
	"errors"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"quote-wizard/internal/catalog"
	"quote-wizard/internal/engine"
	"quote-wizard/internal/model"
	"quote-wizard/internal/sessions"
	"quote-wizard/internal/steps"
)

type Handler struct {
	sessions *sessions.Registry
	catalog  *catalog.Catalog
	logger   *zap.Logger
}

func New(reg *sessions.Registry, cat *catalog.Catalog, logger *zap.Logger) *Handler {
	return &Handler{sessions: reg, catalog: cat, logger: logger}
}

// Handle is the fasthttp entry point.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	h.route(ctx)
	h.logger.Debug("request",
		zap.ByteString("method", ctx.Method()),
		zap.ByteString("path", ctx.Path()),
		zap.Int("status", ctx.Response.StatusCode()),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (h *Handler) route(ctx *fasthttp.RequestCtx) {
	parts := strings.Split(strings.Trim(string(ctx.Path()), "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] == "health":
		if !allow(ctx, fasthttp.MethodGet) {
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]interface{}{"status": "ok", "sessions": h.sessions.Len()})

	case len(parts) == 1 && parts[0] == "templates":
		if !allow(ctx, fasthttp.MethodGet) {
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, h.catalog.Templates(ctx, string(ctx.QueryArgs().Peek("category"))))

	case len(parts) == 1 && parts[0] == "sessions":
		if !allow(ctx, fasthttp.MethodPost) {
			return
		}
		writeJSON(ctx, fasthttp.StatusCreated, h.sessions.Create().View())

	case len(parts) == 2 && parts[0] == "sessions":
		h.session(ctx, parts[1])

	case len(parts) == 3 && parts[0] == "sessions":
		h.sessionCommand(ctx, parts[1], parts[2])

	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) session(ctx *fasthttp.RequestCtx, id string) {
	switch string(ctx.Method()) {
	case fasthttp.MethodGet:
		w, ok := h.wizard(ctx, id)
		if !ok {
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, w.View())
	case fasthttp.MethodDelete:
		if err := h.sessions.Delete(id); err != nil {
			writeError(ctx, fasthttp.StatusNotFound, "Session not found")
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	default:
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *Handler) sessionCommand(ctx *fasthttp.RequestCtx, id, command string) {
	if !allow(ctx, fasthttp.MethodPost) {
		return
	}
	w, ok := h.wizard(ctx, id)
	if !ok {
		return
	}

	switch command {
	case "actions":
		var req model.ActionsRequest
		if !decode(ctx, &req) {
			return
		}
		if len(req.Actions) == 0 {
			writeError(ctx, fasthttp.StatusBadRequest, "At least one action is required")
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, w.Apply(ctx, req.Actions))

	case "transition":
		var req model.TransitionRequest
		if !decode(ctx, &req) {
			return
		}
		if req.Event == "" {
			writeError(ctx, fasthttp.StatusBadRequest, "event is required")
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, w.Transition(ctx, steps.Event(req.Event)))

	case "adjustment":
		var req model.QuickAdjustment
		if !decode(ctx, &req) {
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, w.Adjust(ctx, req))

	case "submit":
		writeJSON(ctx, fasthttp.StatusOK, w.Submit(ctx))

	case "restart":
		writeJSON(ctx, fasthttp.StatusOK, w.Restart())

	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) wizard(ctx *fasthttp.RequestCtx, id string) (*engine.Wizard, bool) {
	w, err := h.sessions.Get(id)
	if errors.Is(err, sessions.ErrNotFound) {
		writeError(ctx, fasthttp.StatusNotFound, "Session not found")
		return nil, false
	}
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return nil, false
	}
	return w, true
}

func allow(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) != method {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

func decode(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Encoding response failed")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	b, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(b)
}
