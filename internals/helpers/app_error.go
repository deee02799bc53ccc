package helper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
)

// AppError is the single error shape handlers return; ErrorHandler maps it to HTTP.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindTooManyRequests:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

func ErrValidation(msg string) *AppError   { return &AppError{Kind: KindValidation, Message: msg} }
func ErrUnauthorized(msg string) *AppError { return &AppError{Kind: KindUnauthorized, Message: msg} }
func ErrForbidden(msg string) *AppError    { return &AppError{Kind: KindForbidden, Message: msg} }
func ErrNotFound(msg string) *AppError     { return &AppError{Kind: KindNotFound, Message: msg} }
func ErrConflict(msg string) *AppError     { return &AppError{Kind: KindConflict, Message: msg} }

func ErrInternal(msg string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: msg, Err: err}
}

func ErrValidationFields(fields map[string][]string) *AppError {
	return &AppError{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// FromValidator converts go-playground validation errors into a field map.
func FromValidator(err error) *AppError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return ErrValidation(err.Error())
	}
	fields := make(map[string][]string, len(ve))
	for _, fe := range ve {
		name := fe.Field()
		fields[name] = append(fields[name], validationMessage(fe))
	}
	return ErrValidationFields(fields)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "datetime":
		return "must match format " + fe.Param()
	default:
		return "is invalid"
	}
}

// IsDuplicateKey recognises unique violations from every driver the service can run on.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique constraint failed")
}

// FromDB maps a store error to an AppError. notFoundMsg is used for gorm.ErrRecordNotFound,
// conflictMsg for unique violations.
func FromDB(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound(notFoundMsg)
	case IsDuplicateKey(err):
		return ErrConflict(conflictMsg)
	default:
		var ae *AppError
		if errors.As(err, &ae) {
			return ae
		}
		return ErrInternal("database error", err)
	}
}

// ErrorHandler is installed as fiber.Config.ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ae *AppError
	if errors.As(err, &ae) {
		if ae.Kind == KindInternal {
			zap.L().Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
			return JsonError(c, ae.Status(), "Internal server error")
		}
		if len(ae.Fields) > 0 {
			return JsonValidationError(c, ae.Fields)
		}
		return JsonError(c, ae.Status(), ae.Message)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return JsonError(c, fiber.StatusNotFound, "Record not found")
	}
	if IsDuplicateKey(err) {
		return JsonError(c, fiber.StatusConflict, "Record already exists")
	}

	zap.L().Error("unhandled error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))
	return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}
