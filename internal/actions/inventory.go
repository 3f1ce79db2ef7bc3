package actions

import (
	"fmt"

	"quote-wizard/internal/model"
	"quote-wizard/internal/store"
)

type itemProps struct {
	ItemID   string   `json:"item_id"`
	Name     string   `json:"name"`
	Quantity *int     `json:"quantity"`
	VolumeM3 *float64 `json:"volume_m3"`
	Category string   `json:"category"`
}

// AddItemHandler adds an inventory line. Name, volume and category default
// to the catalog template with the same id.
type AddItemHandler struct {
	Templates TemplateLookup
}

func (h *AddItemHandler) Validate(st *store.Store, action *model.Action) []model.Message {
	var msgs []model.Message
	var props itemProps
	if m := decode(action, &props); m != nil {
		return append(msgs, *m)
	}
	if props.ItemID == "" {
		msgs = append(msgs, model.Critical("ITEM_ID_REQUIRED", "item_id", "item_id is required"))
		return msgs
	}
	if props.Quantity != nil && *props.Quantity < 0 {
		msgs = append(msgs, model.Critical("INVALID_QUANTITY", "quantity", "Quantity must be non-negative"))
		return msgs
	}
	if props.VolumeM3 != nil && *props.VolumeM3 < 0 {
		msgs = append(msgs, model.Critical("INVALID_VOLUME", "volume_m3", "Volume must be non-negative"))
		return msgs
	}
	if props.VolumeM3 == nil && !st.HasItem(props.ItemID) {
		if _, ok := h.lookup(props.ItemID); !ok {
			msgs = append(msgs, model.Critical("UNKNOWN_ITEM", "item_id",
				fmt.Sprintf("Item %s is not in the catalog; provide volume_m3", props.ItemID)))
			return msgs
		}
	}
	return msgs
}

func (h *AddItemHandler) Apply(st *store.Store, action *model.Action) []model.Message {
	var props itemProps
	decode(action, &props)

	item := model.InventoryItem{ItemID: props.ItemID, Name: props.Name, Quantity: 1, Category: props.Category}
	if tpl, ok := h.lookup(props.ItemID); ok {
		item.VolumeM3 = tpl.VolumeM3.Float()
		if item.Name == "" {
			item.Name = tpl.Name
		}
		if item.Category == "" {
			item.Category = tpl.Category
		}
	}
	if props.Quantity != nil {
		item.Quantity = *props.Quantity
	}
	if props.VolumeM3 != nil {
		item.VolumeM3 = *props.VolumeM3
	}
	if item.Name == "" {
		item.Name = item.ItemID
	}
	st.AddItem(item)
	return nil
}

func (h *AddItemHandler) lookup(id string) (model.ItemTemplate, bool) {
	if h.Templates == nil {
		return model.ItemTemplate{}, false
	}
	return h.Templates.Cached(id)
}

type SetItemQuantityHandler struct{}

func (h *SetItemQuantityHandler) Validate(st *store.Store, action *model.Action) []model.Message {
	var msgs []model.Message
	var props itemProps
	if m := decode(action, &props); m != nil {
		return append(msgs, *m)
	}
	if !st.HasItem(props.ItemID) {
		msgs = append(msgs, model.Critical("ITEM_NOT_FOUND", "item_id",
			fmt.Sprintf("Item %s is not in the inventory", props.ItemID)))
		return msgs
	}
	if props.Quantity == nil {
		msgs = append(msgs, model.Critical("QUANTITY_REQUIRED", "quantity", "quantity is required"))
		return msgs
	}
	if *props.Quantity <= 0 {
		msgs = append(msgs, model.Warning("ITEM_REMOVED", "quantity",
			fmt.Sprintf("Item %s removed", props.ItemID)))
	}
	return msgs
}

func (h *SetItemQuantityHandler) Apply(st *store.Store, action *model.Action) []model.Message {
	var props itemProps
	decode(action, &props)
	st.SetItemQuantity(props.ItemID, *props.Quantity)
	return nil
}

type RemoveItemHandler struct{}

func (h *RemoveItemHandler) Validate(st *store.Store, action *model.Action) []model.Message {
	var msgs []model.Message
	var props itemProps
	if m := decode(action, &props); m != nil {
		return append(msgs, *m)
	}
	if !st.HasItem(props.ItemID) {
		msgs = append(msgs, model.Critical("ITEM_NOT_FOUND", "item_id",
			fmt.Sprintf("Item %s is not in the inventory", props.ItemID)))
	}
	return msgs
}

func (h *RemoveItemHandler) Apply(st *store.Store, action *model.Action) []model.Message {
	var props itemProps
	decode(action, &props)
	st.RemoveItem(props.ItemID)
	return nil
}
