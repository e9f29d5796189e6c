package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/barberscore/registry/internal/models"
	"github.com/barberscore/registry/internal/repositories"
	"github.com/barberscore/registry/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// transitionFailedBody is the fixed body returned when a transition's
// conditions are not met
var transitionFailedBody = gin.H{"status": "Transition conditions not met."}

// respondError maps service and repository errors to HTTP responses
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, models.ErrTransitionNotAllowed):
		c.JSON(http.StatusBadRequest, transitionFailedBody)
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied."})
	case errors.Is(err, repositories.ErrDuplicateBHSID):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"bhs_id": "must be unique"}})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{validationErr.Field: validationErr.Message}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
	}
}

// respondBindError maps a JSON binding failure to a response. Field-level tag
// failures (email, url, e164) name the offending fields like service-side
// validation does.
func respondBindError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fields := gin.H{}
		for _, fe := range fieldErrs {
			fields[snakeCase(fe.Field())] = bindMessage(fe.Tag())
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body."})
}

func bindMessage(tag string) string {
	switch tag {
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "e164":
		return "must be a valid phone number"
	default:
		return "invalid"
	}
}

// snakeCase converts a request struct field name to its JSON tag form
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// transitionRequest carries the optional audit description
type transitionRequest struct {
	Description string `json:"description"`
}

func bindTransitionRequest(c *gin.Context) transitionRequest {
	var req transitionRequest
	if c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&req)
	}
	return req
}

func queryStatus(c *gin.Context, name string) *models.Status {
	if value := c.Query(name); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			s := models.Status(n)
			return &s
		}
	}
	return nil
}

func queryKind(c *gin.Context, name string) *models.Kind {
	if value := c.Query(name); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			k := models.Kind(n)
			return &k
		}
	}
	return nil
}

func queryTime(c *gin.Context, name string) *time.Time {
	if value := c.Query(name); value != "" {
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return &t
		}
	}
	return nil
}
