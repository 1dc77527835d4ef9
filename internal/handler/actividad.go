package handler

import (
	"net/http"

	"minegocio/internal/apierror"
	"minegocio/internal/repository"

	"github.com/gin-gonic/gin"
)

// ActividadHandler reads straight from the capped Redis log — there is no
// service layer in between because listing is the only query.
type ActividadHandler struct{ repo repository.ActividadRepository }

func NewActividadHandler(repo repository.ActividadRepository) *ActividadHandler {
	return &ActividadHandler{repo: repo}
}

func (h *ActividadHandler) Listar(c *gin.Context) {
	entradas, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar la actividad"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entradas, "total": len(entradas)})
}
