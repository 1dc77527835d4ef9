package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"minegocio/internal/apierror"
	"minegocio/internal/dto"
	"minegocio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type KardexHandler struct{ svc service.KardexService }

func NewKardexHandler(svc service.KardexService) *KardexHandler {
	return &KardexHandler{svc: svc}
}

func (h *KardexHandler) Registrar(c *gin.Context) {
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	var req dto.RegistrarMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), usuarioID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStockInsuficiente):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		case errors.Is(err, service.ErrMovimientoInvalido):
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *KardexHandler) Existencias(c *gin.Context) {
	resp, err := h.svc.Existencias(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar existencias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *KardexHandler) Movimientos(c *gin.Context) {
	var productoID *uuid.UUID
	if raw := c.Query("producto_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("producto_id inválido"))
			return
		}
		productoID = &id
	}
	resp, err := h.svc.Movimientos(c.Request.Context(), productoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar movimientos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarExcel streams the full movement history as an .xlsx workbook.
func (h *KardexHandler) ExportarExcel(c *gin.Context) {
	data, err := h.svc.ExportarExcel(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el archivo"))
		return
	}
	filename := fmt.Sprintf("kardex_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
