package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beanboard/menu-service/internal/menu"
	"github.com/beanboard/menu-service/internal/menu/repository"
	"github.com/beanboard/menu-service/pkg/logger"
	"github.com/beanboard/menu-service/pkg/metrics"
)

// Service defines the menu operations used by the handler layer.
type Service interface {
	List(ctx context.Context) ([]menu.MenuItem, error)
	Create(ctx context.Context, item menu.MenuItem) (menu.MenuItem, error)
	Update(ctx context.Context, id string, p menu.Patch) error
	Delete(ctx context.Context, id string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// NewService returns a Service over the given store.
func NewService(store repository.Store) Service {
	return &menuService{store: store}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return NewService(repository.NewMemoryRepo())
}

type menuService struct {
	store repository.Store
}

func (s *menuService) List(ctx context.Context) ([]menu.MenuItem, error) {
	var items []menu.MenuItem
	err := observe("list", func() error {
		var err error
		items, err = s.store.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.MenuItems.Set(float64(len(items)))
	return items, nil
}

func (s *menuService) Create(ctx context.Context, item menu.MenuItem) (menu.MenuItem, error) {
	item.ID = ""
	if err := menu.Validate(item); err != nil {
		metrics.MenuOperations.WithLabelValues("create", outcome(err)).Inc()
		return menu.MenuItem{}, err
	}
	err := observe("create", func() error {
		id, err := s.store.Add(ctx, item)
		item.ID = id
		return err
	})
	if err != nil {
		return menu.MenuItem{}, err
	}
	logger.WithFields(map[string]interface{}{"menu_item_id": item.ID, "menuName": item.Name}).Info("menu item created")
	return item, nil
}

func (s *menuService) Update(ctx context.Context, id string, p menu.Patch) error {
	if err := menu.ValidatePatch(p); err != nil {
		metrics.MenuOperations.WithLabelValues("update", outcome(err)).Inc()
		return err
	}
	err := observe("update", func() error {
		return s.store.Update(ctx, id, p)
	})
	if err != nil {
		return err
	}
	logger.WithFields(map[string]interface{}{"menu_item_id": id, "fields": len(p.Fields())}).Info("menu item updated")
	return nil
}

func (s *menuService) Delete(ctx context.Context, id string) error {
	err := observe("delete", func() error {
		return s.store.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	logger.WithFields(map[string]interface{}{"menu_item_id": id}).Info("menu item deleted")
	return nil
}

func (s *menuService) Ping(ctx context.Context) error {
	if p, ok := s.store.(repository.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// observe runs one store call, records its latency and outcome, and wraps
// unexpected store errors in menu.ErrStoreFailure.
func observe(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.MenuOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, menu.ErrNotFound) {
		err = fmt.Errorf("%w: %w", menu.ErrStoreFailure, err)
		logger.Errorf("menu %s failed: %v", op, err)
	}
	metrics.MenuOperations.WithLabelValues(op, outcome(err)).Inc()
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, menu.ErrValidation):
		return "validation"
	case errors.Is(err, menu.ErrNotFound):
		return "not_found"
	}
	return "store_error"
}
