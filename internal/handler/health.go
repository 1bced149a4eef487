package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Health returns a JSON health check response.
// Verifies the data directory is present and writable; never exposes paths.
func Health(dataDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		storageStatus := "ok"
		probe := filepath.Join(dataDir, ".health")
		if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
			storageStatus = "error"
		} else {
			_ = os.Remove(probe)
		}

		status := http.StatusOK
		if storageStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"storage": storageStatus,
		})
	}
}
