package model

import "time"

// Activity entry types.
const (
	ActividadLogin  = "login"
	ActividadLogout = "logout"
	ActividadCreate = "create"
	ActividadUpdate = "update"
	ActividadDelete = "delete"
)

// ActividadEntrada is one entry in the capped activity log (most-recent-first,
// max 100 entries — the oldest is evicted on overflow). Stored as JSON in a
// Redis list, not in Postgres.
type ActividadEntrada struct {
	ID          string    `json:"id"`
	UsuarioID   string    `json:"usuario_id"`
	Usuario     string    `json:"usuario"`
	Accion      string    `json:"accion"`
	Descripcion string    `json:"descripcion"`
	Tipo        string    `json:"tipo"`
	Fecha       time.Time `json:"fecha"`
}
