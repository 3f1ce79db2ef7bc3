package quotesync

import (
	"errors"
	"regexp"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"quote-wizard/internal/model"
)

var postalCodeRule = validation.Match(regexp.MustCompile(`^[0-9]{5}$`)).
	Error("must be exactly 5 digits")

func validateCustomer(c model.Customer) []model.Message {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required.Error("is required"), is.EmailFormat.Error("must be a valid email address")),
		validation.Field(&c.Phone, validation.Length(0, 40)),
		validation.Field(&c.Name, validation.Length(0, 200)),
	)
	return toMessages(err, "customer.", "INVALID_CUSTOMER", "EMAIL_REQUIRED")
}

type postalCodes struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

func validatePostalCodes(origin, dest model.Location) []model.Message {
	pc := postalCodes{Origin: origin.PostalCode, Destination: dest.PostalCode}
	err := validation.ValidateStruct(&pc,
		validation.Field(&pc.Origin, validation.Required.Error("is required"), postalCodeRule),
		validation.Field(&pc.Destination, validation.Required.Error("is required"), postalCodeRule),
	)
	msgs := toMessages(err, "", "INVALID_POSTAL_CODE", "POSTAL_CODE_REQUIRED")
	for i := range msgs {
		msgs[i].Field += ".postal_code"
	}
	return msgs
}

// toMessages flattens ozzo field errors into critical messages sorted by
// field. Missing values get requiredCode, everything else code.
func toMessages(err error, prefix, code, requiredCode string) []model.Message {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return []model.Message{model.Critical(code, "", err.Error())}
	}
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]model.Message, 0, len(fields))
	for _, f := range fields {
		c := code
		var ve validation.Error
		if errors.As(errs[f], &ve) && ve.Code() == validation.ErrRequired.Code() {
			c = requiredCode
		}
		msgs = append(msgs, model.Critical(c, prefix+f, f+" "+errs[f].Error()))
	}
	return msgs
}
