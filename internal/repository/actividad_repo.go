package repository

import (
	"context"
	"encoding/json"

	"minegocio/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	actividadKey = "actividad:log"
	// MaxActividad caps the log. LPUSH + LTRIM keeps the newest entries and
	// evicts the oldest on overflow.
	MaxActividad = 100
)

// ActividadRepository is the capped, append-only activity log (newest first).
type ActividadRepository interface {
	Append(ctx context.Context, e *model.ActividadEntrada) error
	List(ctx context.Context) ([]model.ActividadEntrada, error)
}

type actividadRepo struct{ rdb *redis.Client }

func NewActividadRepository(rdb *redis.Client) ActividadRepository {
	return &actividadRepo{rdb: rdb}
}

func (r *actividadRepo) Append(ctx context.Context, e *model.ActividadEntrada) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, actividadKey, data)
	pipe.LTrim(ctx, actividadKey, 0, MaxActividad-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *actividadRepo) List(ctx context.Context) ([]model.ActividadEntrada, error) {
	raw, err := r.rdb.LRange(ctx, actividadKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	entradas := make([]model.ActividadEntrada, 0, len(raw))
	for _, item := range raw {
		var e model.ActividadEntrada
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		entradas = append(entradas, e)
	}
	return entradas, nil
}
