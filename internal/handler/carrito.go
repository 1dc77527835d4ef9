package handler

import (
	"errors"
	"net/http"

	"minegocio/internal/apierror"
	"minegocio/internal/dto"
	"minegocio/internal/middleware"
	"minegocio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CarritoHandler manages the per-user cart and the checkout that consumes it.
// All routes resolve the cart owner from the JWT claims, never from the body.
type CarritoHandler struct {
	svc      service.CarritoService
	checkout service.CheckoutService
}

func NewCarritoHandler(svc service.CarritoService, checkout service.CheckoutService) *CarritoHandler {
	return &CarritoHandler{svc: svc, checkout: checkout}
}

func (h *CarritoHandler) Obtener(c *gin.Context) {
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	// envio is a preview-only query param; it never persists with the cart
	resp, err := h.svc.Obtener(c.Request.Context(), usuarioID, c.Query("envio"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener el carrito"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarritoHandler) AgregarItem(c *gin.Context) {
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarItem(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarritoHandler) ActualizarCantidad(c *gin.Context) {
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	productoID, err := uuid.Parse(c.Param("producto_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCantidad(c.Request.Context(), usuarioID, productoID, req.Cantidad)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarritoHandler) QuitarItem(c *gin.Context) {
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	productoID, err := uuid.Parse(c.Param("producto_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.QuitarItem(c.Request.Context(), usuarioID, productoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarritoHandler) Vaciar(c *gin.Context) {
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	if err := h.svc.Vaciar(c.Request.Context(), usuarioID); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al vaciar el carrito"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Confirmar runs the checkout. A partial failure still answers with the
// created pedido/factura plus the list of lines that could not be attached.
func (h *CarritoHandler) Confirmar(c *gin.Context) {
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.checkout.ConfirmarCompra(c.Request.Context(), usuarioID, req)
	if err != nil {
		var partial *apierror.PartialError
		if errors.As(err, &partial) && resp != nil {
			c.JSON(http.StatusMultiStatus, gin.H{
				"resultado": resp,
				"aviso":     partial,
			})
			return
		}
		switch {
		case errors.Is(err, service.ErrCarritoVacio), errors.Is(err, service.ErrSinCliente):
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// usuarioFromClaims pulls the authenticated user's UUID out of the JWT.
func usuarioFromClaims(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token inválido"))
		return uuid.Nil, false
	}
	return id, true
}
