package store

import (
	"sort"
	"strings"
	"unicode"

	"quote-wizard/internal/model"
)

const (
	boxItemID   = "moving_box"
	boxName     = "Moving box"
	boxVolumeM3 = 0.06
	boxCategory = "boxes"
)

// AddItem appends a line or, when the item_id is already present, adds the
// quantity to the existing line.
func (st *Store) AddItem(item model.InventoryItem) {
	item.ItemID = strings.TrimSpace(item.ItemID)
	if item.ItemID == "" {
		return
	}
	if item.VolumeM3 < 0 {
		item.VolumeM3 = 0
	}
	if i := st.indexOf(item.ItemID); i >= 0 {
		st.setQuantityAt(i, st.s.Inventory[i].Quantity+item.Quantity)
		return
	}
	if item.Quantity <= 0 {
		return
	}
	st.s.Inventory = append(st.s.Inventory, item)
}

// SetItemQuantity overwrites the quantity of a line. Zero or less removes it.
func (st *Store) SetItemQuantity(itemID string, qty int) {
	if i := st.indexOf(itemID); i >= 0 {
		st.setQuantityAt(i, qty)
	}
}

func (st *Store) RemoveItem(itemID string) {
	st.SetItemQuantity(itemID, 0)
}

func (st *Store) HasItem(itemID string) bool {
	return st.indexOf(itemID) >= 0
}

func (st *Store) indexOf(itemID string) int {
	for i, it := range st.s.Inventory {
		if it.ItemID == itemID {
			return i
		}
	}
	return -1
}

func (st *Store) setQuantityAt(i, qty int) {
	if qty <= 0 {
		st.s.Inventory = append(st.s.Inventory[:i], st.s.Inventory[i+1:]...)
		return
	}
	st.s.Inventory[i].Quantity = qty
}

// ImportPrediction replaces the inventory with the typical items of the
// current prediction, one line per room and item, plus the typical boxes.
func (st *Store) ImportPrediction() {
	st.s.Inventory = []model.InventoryItem{}
	p := st.s.Prediction
	if p == nil {
		return
	}

	rooms := make([]string, 0, len(p.TypicalItems))
	for room := range p.TypicalItems {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)

	for _, room := range rooms {
		for _, it := range p.TypicalItems[room] {
			qty := it.Quantity
			if qty <= 0 {
				qty = 1
			}
			st.AddItem(model.InventoryItem{
				ItemID:   slug(room) + "_" + slug(it.Name),
				Name:     it.Name,
				Quantity: qty,
				VolumeM3: it.VolumeM3.Float(),
				Category: room,
			})
		}
	}
	if p.TypicalBoxes > 0 {
		st.AddItem(model.InventoryItem{
			ItemID:   boxItemID,
			Name:     boxName,
			Quantity: p.TypicalBoxes,
			VolumeM3: boxVolumeM3,
			Category: boxCategory,
		})
	}
}

func slug(s string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
			continue
		}
		sep = true
	}
	return b.String()
}
