package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is referenced by pedidos and facturas by id only (weak reference,
// no cascading delete).
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Email     *string
	Telefono  *string
	Ciudad    string `gorm:"not null"`
	Direccion *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
