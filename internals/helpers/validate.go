package helper

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validate is shared by every request DTO; field errors are keyed by json name.
var Validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}()

type normalizer interface{ Normalize() }

// BindAndValidate parses the body into dst, normalises it when it knows how
// and runs the validator.
func BindAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return ErrValidation("Invalid request body")
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}
	if err := Validate.Struct(dst); err != nil {
		return FromValidator(err)
	}
	return nil
}
