package utils

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns. Status is "success" or
// "error"; Detail carries internal error text in development only.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Detail  string      `json:"error,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, &Response{
		Status: "success",
		Data:   data,
	})
}

func SuccessMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, &Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, &Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, &Response{
		Status:  "error",
		Message: message,
	})
}

// ValidationFailed reports per-field validation messages.
func ValidationFailed(c *gin.Context, errs []string) {
	c.JSON(http.StatusBadRequest, &Response{
		Status:  "error",
		Message: "Validation failed",
		Errors:  errs,
	})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, &Response{
		Status:  "error",
		Message: message,
	})
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, &Response{
		Status:  "error",
		Message: message,
	})
}

func TooManyRequests(c *gin.Context, message string) {
	c.JSON(http.StatusTooManyRequests, &Response{
		Status:  "error",
		Message: message,
	})
}

// InternalError hides the underlying error outside development mode.
func InternalError(c *gin.Context, message string, err error) {
	resp := &Response{
		Status:  "error",
		Message: message,
	}
	if err != nil && os.Getenv("GO_ENV") == "development" {
		resp.Detail = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
