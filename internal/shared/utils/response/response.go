// Package response defines the envelope every HTTP handler writes. Clients
// rely on the envelope shape being identical for success and error replies,
// so handlers never call c.JSON directly.
package response

import "github.com/gin-gonic/gin"

// StandardApiResponse is the single reply envelope. Status carries "success"
// or "error", Data the payload on success, Errors the failure details.
type StandardApiResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	Errors     any    `json:"errors,omitempty"`
}

// RespondJSON writes the envelope with the given HTTP status code.
func RespondJSON(c *gin.Context, status string, code int, message string, data any, errors any) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
