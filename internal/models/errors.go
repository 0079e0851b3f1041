package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform API response wrapper.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// FieldErrors carries per-field validation failures. Validation failure means
// no mutation was performed.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for k := range f {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondSuccess writes a success envelope with HTTP 200.
func RespondSuccess(c *fiber.Ctx, message string, data any) error {
	return c.JSON(Envelope{Success: true, Message: message, Data: data})
}

// RespondCreated writes a success envelope with HTTP 201.
func RespondCreated(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

// RespondWithError writes a failure envelope. Field-level validation errors
// are carried in data so API clients can re-render forms per field.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	env := Envelope{Success: false}

	switch e := err.(type) {
	case FieldErrors:
		env.Message = "The given data was invalid."
		env.Data = map[string]any{"errors": e}
	case *AppError:
		env.Message = e.Message
		if e.Err != nil {
			env.Data = map[string]any{"details": e.Err.Error()}
		}
	default:
		env.Message = err.Error()
	}

	return c.Status(status).JSON(env)
}
