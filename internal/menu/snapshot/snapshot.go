package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/beanboard/menu-service/internal/menu"
	"github.com/beanboard/menu-service/internal/storage"
	"github.com/beanboard/menu-service/pkg/logger"
	"github.com/beanboard/menu-service/pkg/metrics"
	"github.com/robfig/cron/v3"
)

// presignTTL is how long the download link returned for a snapshot stays valid.
const presignTTL = 15 * time.Minute

// Lister is the read side of the menu service.
type Lister interface {
	List(ctx context.Context) ([]menu.MenuItem, error)
}

// Snapshot describes one exported copy of the menu.
type Snapshot struct {
	Key     string    `json:"key"`
	Items   int       `json:"items"`
	TakenAt time.Time `json:"takenAt"`
	URL     string    `json:"url,omitempty"`
}

type document struct {
	TakenAt time.Time       `json:"takenAt"`
	Items   []menu.MenuItem `json:"items"`
}

// Exporter writes the full menu as a JSON object to object storage.
type Exporter struct {
	menu   Lister
	store  storage.ObjectStore
	prefix string
	now    func() time.Time
}

func NewExporter(l Lister, store storage.ObjectStore, prefix string) *Exporter {
	return &Exporter{menu: l, store: store, prefix: prefix, now: time.Now}
}

// Take lists the menu and uploads it under <prefix>menu-<timestamp>.json.
func (e *Exporter) Take(ctx context.Context) (*Snapshot, error) {
	items, err := e.menu.List(ctx)
	if err != nil {
		metrics.MenuOperations.WithLabelValues("snapshot", "store_error").Inc()
		return nil, fmt.Errorf("snapshot: list menu: %w", err)
	}
	taken := e.now().UTC()
	body, err := json.Marshal(document{TakenAt: taken, Items: items})
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	key := fmt.Sprintf("%smenu-%s.json", e.prefix, taken.Format("20060102T150405.000000000Z"))
	if err := e.store.UploadFile(ctx, key, bytes.NewReader(body), int64(len(body)), "application/json"); err != nil {
		metrics.MenuOperations.WithLabelValues("snapshot", "store_error").Inc()
		return nil, fmt.Errorf("snapshot: upload %s: %w", key, err)
	}
	snap := &Snapshot{Key: key, Items: len(items), TakenAt: taken}
	if u, err := e.store.GetPresignedURL(ctx, key, presignTTL); err == nil {
		snap.URL = u
	} else {
		logger.Warnf("snapshot: presign %s: %v", key, err)
	}
	metrics.MenuOperations.WithLabelValues("snapshot", "ok").Inc()
	logger.WithFields(map[string]interface{}{"key": key, "items": len(items)}).Info("menu snapshot stored")
	return snap, nil
}

// Schedule runs Take on the given cron spec until the returned cron is stopped.
func (e *Exporter) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := e.Take(ctx); err != nil {
			logger.Errorf("scheduled snapshot failed: %v", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("snapshot: invalid schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
