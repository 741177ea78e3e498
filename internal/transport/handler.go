package transport

import (
	"context"
	"io"
	"net/http"
	"time"

	"go-image-describer/internal/config"
	apperrors "go-image-describer/internal/errors"
	"go-image-describer/internal/logger"
	"go-image-describer/internal/service"
	"go-image-describer/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// multipartOverhead leaves room for the form encoding around the image
// payload; the service enforces the exact image size limit.
const multipartOverhead = 1 << 20

// NewHandler configures the HTTP routes
func NewHandler(svc service.ImageDescriptionService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(requestSizeLimiter(cfg.MaxUploadSize + multipartOverhead))

	r.GET("/health", healthCheck(cfg))
	r.POST("/describe", describeImage(svc, cfg))

	return r
}

func describeImage(svc service.ImageDescriptionService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing image description request")

		fileHeader, err := c.FormFile("image")
		if err != nil {
			respondError(c, http.StatusBadRequest, "missing image upload in form field \"image\"", err)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "unreadable image upload", err)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respondError(c, http.StatusBadRequest, "failed to read image upload", err)
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")

		resp, err := svc.DescribeImage(ctx, data, contentType)
		if err != nil {
			// The service already shaped the error envelope; the transport
			// only maps the taxonomy to an HTTP status code
			logger.WithError(err).WithFields(logrus.Fields{
				"content_type": contentType,
				"ip":           c.ClientIP(),
			}).Error("Image description failed")

			c.JSON(apperrors.GetStatusCode(err), resp)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

func healthCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		llmMode := "remote"
		if cfg.UseLocalLLM || !cfg.HasRemoteCredentials() {
			llmMode = "local"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "available",
			"service":  "image-description-api",
			"version":  "1.0.0",
			"llm_mode": llmMode,
			"time":     time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.AnalysisResponse{
		Status:       models.StatusError,
		ErrorMessage: message,
	})
}
