package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/primary/http/dto"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/services"
)

func (h *Handler) BuildPackage(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	var req dto.BuildPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkg, err := h.packagingSvc.Build(c.Request.Context(), services.BuildPackageRequest{
		ProjectID:    projectID,
		Name:         req.Name,
		BaseModelID:  req.BaseModelID,
		Overrides:    req.Overrides,
		Requirements: req.Requirements,
		Labels:       req.Labels,
	})
	if err != nil {
		log.WithError(err).Error("build package failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToModelPackageResponse(pkg))
}

func (h *Handler) GetPackage(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	// Anything that isn't a UUID is treated as a package name.
	var pkg *domain.ModelPackage
	if id, parseErr := uuid.Parse(c.Param("id")); parseErr == nil {
		pkg, err = h.packagingSvc.Get(c.Request.Context(), projectID, id)
	} else {
		pkg, err = h.packagingSvc.GetByName(c.Request.Context(), projectID, c.Param("id"))
	}
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToModelPackageResponse(pkg))
}

func (h *Handler) DownloadPackageArchive(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}

	pkg, rc, err := h.packagingSvc.OpenArchive(c.Request.Context(), projectID, id)
	if err != nil {
		log.WithError(err).Error("download package archive failed")
		mapDomainError(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, pkg.SizeBytes, "application/gzip", rc, map[string]string{
		"Content-Disposition": `attachment; filename="model.tar.gz"`,
	})
}

func (h *Handler) ListPackages(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	pkgs, total, err := h.packagingSvc.List(c.Request.Context(), ports.PackageListFilter{
		ProjectID:   projectID,
		BaseModelID: c.Query("base_model_id"),
		Search:      c.Query("search"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		log.WithError(err).Error("list packages failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ModelPackageResponse, 0, len(pkgs))
	for _, pkg := range pkgs {
		items = append(items, dto.ToModelPackageResponse(pkg))
	}

	c.JSON(http.StatusOK, dto.ListModelPackagesResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) DeletePackage(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}

	if err := h.packagingSvc.Delete(c.Request.Context(), projectID, id); err != nil {
		log.WithError(err).Error("delete package failed")
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetPackageDownloadURL(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}

	expiry := 15 * time.Minute
	if raw := c.Query("expiry_seconds"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			expiry = time.Duration(secs) * time.Second
		}
	}

	url, err := h.packagingSvc.DownloadURL(c.Request.Context(), projectID, id, expiry)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PackageDownloadURLResponse{
		URL:       url,
		ExpiresAt: time.Now().Add(expiry),
	})
}
