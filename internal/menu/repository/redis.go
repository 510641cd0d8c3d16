package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/beanboard/menu-service/internal/menu"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisRepo stores each menu item as a hash under "<prefix>item:<id>" and
// keeps a sorted set "<prefix>ids" scored by a creation sequence for enumeration.
type RedisRepo struct {
	client *redis.Client
	prefix string
}

// NewRedisRepo creates a Redis-backed menu repository. Prefix may be empty.
func NewRedisRepo(client *redis.Client, prefix string) *RedisRepo {
	if prefix == "" {
		prefix = "menu:"
	}
	return &RedisRepo{client: client, prefix: prefix}
}

func (r *RedisRepo) itemKey(id string) string { return r.prefix + "item:" + id }
func (r *RedisRepo) idsKey() string          { return r.prefix + "ids" }
func (r *RedisRepo) seqKey() string          { return r.prefix + "seq" }

func hashFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		switch t := v.(type) {
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		default:
			out[k] = v
		}
	}
	return out
}

func (r *RedisRepo) Add(ctx context.Context, item menu.MenuItem) (string, error) {
	id := uuid.NewString()
	fields := hashFields(menu.FullPatch(item).Fields())
	seq, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return "", fmt.Errorf("store menu item: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.itemKey(id), fields)
		pipe.ZAdd(ctx, r.idsKey(), redis.Z{Score: float64(seq), Member: id})
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("store menu item: %w", err)
	}
	return id, nil
}

func (r *RedisRepo) List(ctx context.Context) ([]menu.MenuItem, error) {
	ids, err := r.client.ZRange(ctx, r.idsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list menu ids: %w", err)
	}
	out := make([]menu.MenuItem, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, r.itemKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load menu items: %w", err)
	}
	for i, cmd := range cmds {
		h := cmd.Val()
		if len(h) == 0 {
			// index entry without a hash; skip it
			continue
		}
		it, err := decodeHash(ids[i], h)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

func decodeHash(id string, h map[string]string) (menu.MenuItem, error) {
	it := menu.MenuItem{ID: id, Name: h[menu.FieldName], Category: h[menu.FieldCategory]}
	if v, ok := h[menu.FieldPrice]; ok {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return it, fmt.Errorf("decode %s of %s: %w", menu.FieldPrice, id, err)
		}
		it.Price = p
	}
	if v, ok := h[menu.FieldAvailable]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return it, fmt.Errorf("decode %s of %s: %w", menu.FieldAvailable, id, err)
		}
		it.Available = b
	}
	return it, nil
}

func (r *RedisRepo) Update(ctx context.Context, id string, p menu.Patch) error {
	key := r.itemKey(id)
	fields := hashFields(p.Fields())
	if len(fields) == 0 {
		return nil
	}
	// WATCH makes the existence check and the write one atomic step.
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return menu.ErrNotFound
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, menu.ErrNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	return nil
}

func (r *RedisRepo) Delete(ctx context.Context, id string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.itemKey(id))
		pipe.ZRem(ctx, r.idsKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}

func (r *RedisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
