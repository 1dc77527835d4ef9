package dto

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre" validate:"required"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Ciudad    string  `json:"ciudad" validate:"required"`
	Direccion *string `json:"direccion"`
}

type ActualizarClienteRequest struct {
	Nombre    string  `json:"nombre"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Ciudad    string  `json:"ciudad"`
	Direccion *string `json:"direccion"`
}

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Email     *string `json:"email,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Ciudad    string  `json:"ciudad"`
	Direccion *string `json:"direccion,omitempty"`
	CreatedAt string  `json:"created_at"`
}
