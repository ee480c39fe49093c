package controller

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// unescapeParam reads a path parameter that may carry URL-encoded characters.
// Anki deck and model names routinely contain spaces and colons.
func unescapeParam(ctx *fiber.Ctx, name string) (string, error) {
	raw := ctx.Params(name)
	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid "+name+" parameter")
	}
	return value, nil
}

// intParam parses a numeric path parameter.
func intParam(ctx *fiber.Ctx, name string) (int, error) {
	value, err := strconv.Atoi(ctx.Params(name))
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" must be a number")
	}
	return value, nil
}

// int64Param parses a note id path parameter.
func int64Param(ctx *fiber.Ctx, name string) (int64, error) {
	value, err := strconv.ParseInt(ctx.Params(name), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" must be a number")
	}
	return value, nil
}
