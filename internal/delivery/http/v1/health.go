package v1

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status      string    `json:"status"`
	Database    bool      `json:"database"`
	Cache       *bool     `json:"cache,omitempty"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
	Timestamp   time.Time `json:"timestamp"`
}

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	resp := healthResponse{
		Status:      "ok",
		Version:     runtime.Version(),
		Environment: h.env,
		Timestamp:   time.Now(),
	}

	if h.db != nil {
		resp.Database = h.db.Ping(c) == nil
	}
	if h.cache != nil {
		connected := h.cache.Ping(c) == nil
		resp.Cache = &connected
	}

	c.JSON(http.StatusOK, resp)
}
