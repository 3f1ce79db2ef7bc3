package actions

import (
	json "github.com/goccy/go-json"

	"quote-wizard/internal/model"
	"quote-wizard/internal/store"
)

// Handler defines the contract for every user action. Validate must not
// change the store; Apply runs only when Validate returned no critical
// message.
type Handler interface {
	Validate(st *store.Store, action *model.Action) []model.Message
	Apply(st *store.Store, action *model.Action) []model.Message
}

// TemplateLookup resolves catalog items already loaded in memory.
type TemplateLookup interface {
	Cached(itemID string) (model.ItemTemplate, bool)
}

func decode(action *model.Action, v interface{}) *model.Message {
	if len(action.Properties) == 0 {
		return nil
	}
	if err := json.Unmarshal(action.Properties, v); err != nil {
		m := model.Critical("INVALID_PROPERTIES", "", "Invalid properties for "+action.Name+": "+err.Error())
		return &m
	}
	return nil
}

func side(name string) (store.Side, *model.Message) {
	s, ok := store.ParseSide(name)
	if !ok {
		m := model.Critical("INVALID_LOCATION", "location", `Location must be "origin" or "destination"`)
		return s, &m
	}
	return s, nil
}
