package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/reuters-comb/app/cfg"
	"github.com/lysyi3m/reuters-comb/app/feed"
	"github.com/lysyi3m/reuters-comb/app/reuters"
)

func NewHandler(adapter AdapterInterface) *Handler {
	return &Handler{
		adapter:   adapter,
		generator: feed.NewGenerator(),
	}
}

func (h *Handler) GetFeed(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	req := reuters.Request{
		Category: category,
		Topic:    c.Param("topic"),
		Limit:    parseLimit(c.Query("limit")),
		Fulltext: parseBool(c.Query("fulltext")),
		Sophi:    parseBool(c.Query("sophi")),
	}

	meta, items, err := h.adapter.Fetch(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, reuters.ErrNoFeed) {
			slog.Error("No feed produced", "category", req.Category, "topic", req.Topic)
			c.Status(http.StatusNotFound)
			return
		}
		slog.Error("Feed fetch error", "category", req.Category, "topic", req.Topic, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	rss, err := h.generator.Run(*meta, items, c.Request.URL.Path)
	if err != nil {
		slog.Error("RSS generation error", "category", req.Category, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(items)))

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":   "reuters-comb",
		"version":   cfg.Get().Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func parseLimit(raw string) int {
	if raw == "" {
		return reuters.DefaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return reuters.DefaultLimit
	}
	return limit
}

func parseBool(raw string) bool {
	parsed, err := strconv.ParseBool(raw)
	return err == nil && parsed
}
