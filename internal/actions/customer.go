package actions

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"quote-wizard/internal/model"
	"quote-wizard/internal/store"
)

// SetCustomerHandler stores contact details. A malformed email is kept and
// only flagged; submission rejects it.
type SetCustomerHandler struct{}

func (h *SetCustomerHandler) Validate(st *store.Store, action *model.Action) []model.Message {
	var msgs []model.Message
	var props model.Customer
	if m := decode(action, &props); m != nil {
		return append(msgs, *m)
	}
	if err := validation.Validate(strings.TrimSpace(props.Email), is.EmailFormat); err != nil {
		msgs = append(msgs, model.Warning("INVALID_EMAIL", "customer.email", "Email address looks invalid"))
	}
	return msgs
}

func (h *SetCustomerHandler) Apply(st *store.Store, action *model.Action) []model.Message {
	var props model.Customer
	decode(action, &props)
	st.SetCustomer(props)
	return nil
}
