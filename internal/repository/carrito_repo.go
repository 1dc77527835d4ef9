package repository

import (
	"context"
	"encoding/json"
	"time"

	"minegocio/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Cart snapshots survive a crash/restart but not indefinitely.
const carritoTTL = 7 * 24 * time.Hour

// CarritoRepository persists per-user cart snapshots in Redis.
type CarritoRepository interface {
	Get(ctx context.Context, usuarioID uuid.UUID) (*model.Carrito, error)
	Save(ctx context.Context, usuarioID uuid.UUID, c *model.Carrito) error
	Clear(ctx context.Context, usuarioID uuid.UUID) error
}

type carritoRepo struct{ rdb *redis.Client }

func NewCarritoRepository(rdb *redis.Client) CarritoRepository { return &carritoRepo{rdb: rdb} }

func carritoKey(usuarioID uuid.UUID) string { return "carrito:" + usuarioID.String() }

// Get returns an empty cart when no snapshot exists.
func (r *carritoRepo) Get(ctx context.Context, usuarioID uuid.UUID) (*model.Carrito, error) {
	data, err := r.rdb.Get(ctx, carritoKey(usuarioID)).Bytes()
	if err == redis.Nil {
		return &model.Carrito{}, nil
	}
	if err != nil {
		return nil, err
	}
	var c model.Carrito
	if err := json.Unmarshal(data, &c); err != nil {
		// Corrupt snapshot — treat as empty rather than blocking the user.
		return &model.Carrito{}, nil
	}
	return &c, nil
}

func (r *carritoRepo) Save(ctx context.Context, usuarioID uuid.UUID, c *model.Carrito) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, carritoKey(usuarioID), data, carritoTTL).Err()
}

func (r *carritoRepo) Clear(ctx context.Context, usuarioID uuid.UUID) error {
	return r.rdb.Del(ctx, carritoKey(usuarioID)).Err()
}
