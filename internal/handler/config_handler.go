package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/classwise/timetabler/internal/configstore"
	"github.com/classwise/timetabler/internal/engine"
	appErrors "github.com/classwise/timetabler/pkg/errors"
	"github.com/classwise/timetabler/pkg/response"
)

// ConfigHandler holds a single generation Configuration in memory, read and
// replaced through internal/configstore's JSON schema. /schedules/generate
// does not read it: each generate request carries its own credit window,
// filters and exclusions.
type ConfigHandler struct {
	mu  sync.RWMutex
	cfg engine.Configuration
}

// NewConfigHandler starts from configstore.Defaults, the same fallback
// Load itself uses for an empty document.
func NewConfigHandler() *ConfigHandler {
	return &ConfigHandler{cfg: configstore.Defaults()}
}

// Get godoc
// @Summary Fetch the stored generation configuration
// @Tags Configuration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /configurations [get]
func (h *ConfigHandler) Get(c *gin.Context) {
	h.mu.RLock()
	cfg := h.cfg
	h.mu.RUnlock()

	doc, err := encodeConfig(cfg)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode configuration"))
		return
	}
	response.JSON(c, http.StatusOK, doc, nil)
}

// Put godoc
// @Summary Replace the stored generation configuration
// @Tags Configuration
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /configurations [put]
func (h *ConfigHandler) Put(c *gin.Context) {
	cfg, err := configstore.Load(c.Request.Body)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid configuration document"))
		return
	}

	h.mu.Lock()
	h.cfg = cfg
	h.mu.Unlock()

	doc, err := encodeConfig(cfg)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode configuration"))
		return
	}
	response.JSON(c, http.StatusOK, doc, nil)
}

func encodeConfig(cfg engine.Configuration) (map[string]interface{}, error) {
	var buf bytes.Buffer
	if err := configstore.Save(&buf, cfg); err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
