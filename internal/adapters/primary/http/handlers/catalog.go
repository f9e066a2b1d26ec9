package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/primary/http/dto"
)

func (h *Handler) ListBaseModels(c *gin.Context) {
	specs := h.catalogSvc.List(c.Query("family"))

	items := make([]dto.BaseModelResponse, 0, len(specs))
	for _, spec := range specs {
		items = append(items, dto.ToBaseModelResponse(spec))
	}

	c.JSON(http.StatusOK, dto.ListBaseModelsResponse{Items: items, Total: len(items)})
}

func (h *Handler) GetBaseModel(c *gin.Context) {
	spec, err := h.catalogSvc.Get(c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBaseModelResponse(spec))
}
