package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	domainError "github.com/omega/animator/internal/domain/error"
)

// MediaHandler serves rendered artifacts from the media root.
type MediaHandler struct {
	root string
}

func NewMediaHandler(cfg ServerConfig) *MediaHandler {
	return &MediaHandler{root: cfg.MediaRoot}
}

// @GET(/media/*path)
func (h *MediaHandler) Serve(c *gin.Context) {
	rel, ok := cleanMediaPath(c.Param("path"))
	if !ok {
		_ = c.Error(domainError.NewBusinessError("INVALID_PATH", "invalid media path", domainError.ErrInvalidInput))
		return
	}
	full := filepath.Join(h.root, filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "message": "media file not found"})
		return
	}
	c.File(full)
}

// cleanMediaPath rejects paths that escape the media root.
func cleanMediaPath(raw string) (string, bool) {
	raw = strings.TrimPrefix(raw, "/")
	if raw == "" || strings.Contains(raw, "\\") {
		return "", false
	}
	for _, part := range strings.Split(raw, "/") {
		if part == ".." {
			return "", false
		}
	}
	return path.Clean(raw), true
}
