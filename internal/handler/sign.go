package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"petition-backend/internal/ratelimit"
	"petition-backend/internal/service"
	"petition-backend/internal/validate"
)

type SignHandler struct {
	service *service.SignService
}

func NewSignHandler(signService *service.SignService) *SignHandler {
	return &SignHandler{service: signService}
}

// Sign handles POST /api/sign.
func (h *SignHandler) Sign(c *gin.Context) {
	var sub validate.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	err := h.service.Submit(c.Request.Context(), sub, c.ClientIP())
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	var validationErr *service.ValidationError
	var rateLimitErr *service.RateLimitedError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  validationErr.Fields,
		})
	case errors.Is(err, service.ErrCaptchaRejected):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Captcha failed",
		})
	case errors.As(err, &rateLimitErr):
		message := "Too many requests from this IP"
		if rateLimitErr.Dimension == ratelimit.DimensionID {
			message = "Too many requests for this ID today"
		}
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"message": message,
		})
	default:
		log.Printf("Sign error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Server error",
		})
	}
}

// Counter handles GET /api/counter.
func (h *SignHandler) Counter(c *gin.Context) {
	total, err := h.service.Total(c.Request.Context())
	if err != nil {
		log.Printf("Counter error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"totalSignatures": total,
	})
}
