package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a request DTO and maps
// failures to a 400 with a readable field list.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		parts := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			parts = append(parts, fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag()))
		}
		return fiber.NewError(fiber.StatusBadRequest, "validation failed: "+strings.Join(parts, ", "))
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}
