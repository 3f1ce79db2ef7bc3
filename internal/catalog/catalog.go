// Package catalog caches the item templates offered by the inventory editor.
package catalog

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"quote-wizard/internal/model"
)

type Source interface {
	ItemTemplates(ctx context.Context, category string) ([]model.ItemTemplate, error)
}

// Catalog loads the full template list once and serves every category from
// memory. A failed load yields an empty list and is retried on the next call.
type Catalog struct {
	source Source
	logger *zap.Logger

	group singleflight.Group
	byID  sync.Map

	mu     sync.RWMutex
	all    []model.ItemTemplate
	loaded bool
}

func New(source Source, logger *zap.Logger) *Catalog {
	return &Catalog{source: source, logger: logger}
}

// Templates returns the templates of category, or all of them for "".
func (c *Catalog) Templates(ctx context.Context, category string) []model.ItemTemplate {
	all, err := c.load(ctx)
	if err != nil {
		c.logger.Warn("item templates unavailable", zap.Error(err))
		return []model.ItemTemplate{}
	}
	out := make([]model.ItemTemplate, 0, len(all))
	for _, t := range all {
		if category == "" || t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Categories lists the distinct categories of the loaded templates.
func (c *Catalog) Categories(ctx context.Context) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range c.Templates(ctx, "") {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Cached looks an item up without loading.
func (c *Catalog) Cached(itemID string) (model.ItemTemplate, bool) {
	v, ok := c.byID.Load(itemID)
	if !ok {
		return model.ItemTemplate{}, false
	}
	return v.(model.ItemTemplate), true
}

func (c *Catalog) load(ctx context.Context) ([]model.ItemTemplate, error) {
	c.mu.RLock()
	if c.loaded {
		all := c.all
		c.mu.RUnlock()
		return all, nil
	}
	c.mu.RUnlock()

	v, err, shared := c.group.Do("all", func() (interface{}, error) {
		c.mu.RLock()
		if c.loaded {
			all := c.all
			c.mu.RUnlock()
			return all, nil
		}
		c.mu.RUnlock()

		all, err := c.source.ItemTemplates(ctx, "")
		if err != nil {
			return nil, err
		}
		for _, t := range all {
			c.byID.Store(t.ID, t)
		}
		c.mu.Lock()
		c.all, c.loaded = all, true
		c.mu.Unlock()
		c.logger.Info("item templates loaded", zap.Int("count", len(all)))
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("item template load shared")
	}
	return v.([]model.ItemTemplate), nil
}
