package handler

import "github.com/gofiber/fiber/v3"

func ok(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"data": data})
}

func created(c fiber.Ctx, data any, msg, redirect string) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":     data,
		"message":  msg,
		"redirect": redirect,
	})
}

func updated(c fiber.Ctx, data any, msg, redirect string) error {
	return c.JSON(fiber.Map{
		"data":     data,
		"message":  msg,
		"redirect": redirect,
	})
}

func noContent(c fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}

// badGateway reports an upstream study API failure with the banner
// text the console shows for it.
func badGateway(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": msg})
}

func internalError(c fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
