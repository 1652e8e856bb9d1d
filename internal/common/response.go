package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Meta pagination metadata
type Meta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int64 `json:"last_page"`
}

// NewMeta creates Meta with computed last_page
func NewMeta(page, perPage int, total int64) *Meta {
	lastPage := total / int64(perPage)
	if total%int64(perPage) > 0 {
		lastPage++
	}
	if lastPage < 1 {
		lastPage = 1
	}
	return &Meta{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}

// SuccessResponse returns a successful JSON response: {"data": ...}
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// PagedResponse returns a successful JSON response with pagination: {"data": ..., "meta": ...}
func PagedResponse(c *gin.Context, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, gin.H{"data": data, "meta": meta})
}

// MessageResponse returns a plain confirmation: {"message": ...}
func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// ErrorResponse returns an error JSON response: {"message": ...}
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// ValidationErrorResponse returns a 422 with per-field errors: {"message": ..., "errors": {...}}
func ValidationErrorResponse(c *gin.Context, message string, fields map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": message,
		"errors":  fields,
	})
}
