package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classwise/timetabler/internal/catalogstore"
	"github.com/classwise/timetabler/internal/ingest"
	appErrors "github.com/classwise/timetabler/pkg/errors"
	"github.com/classwise/timetabler/pkg/response"
)

// CatalogHandler ingests a catalog CSV upload once and stores it so later
// generate requests can reference it by id instead of resending every
// course (dto.GenerateScheduleRequest.CatalogRef).
type CatalogHandler struct {
	store *catalogstore.Store
}

func NewCatalogHandler(store *catalogstore.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// @Router /catalogs [post]
func (h *CatalogHandler) Ingest(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		body := c.Request.Body
		if body == nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing catalog file"))
			return
		}
		courses, parseErr := ingest.ParseCatalog(body)
		if parseErr != nil {
			response.Error(c, parseErr)
			return
		}
		ref := h.store.Put(courses)
		response.JSON(c, http.StatusCreated, gin.H{"catalogRef": ref, "courseCount": len(courses)}, nil)
		return
	}
	defer file.Close()

	courses, err := ingest.ParseCatalog(file)
	if err != nil {
		response.Error(c, err)
		return
	}
	ref := h.store.Put(courses)
	response.JSON(c, http.StatusCreated, gin.H{"catalogRef": ref, "courseCount": len(courses)}, nil)
}
