package user

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/users", h.listUsers)
	app.Post("/api/v1/users", h.createUser)
	// email lookup registered before the numeric id routes
	app.Get("/api/v1/users/email/:email", h.getUserByEmail)
	app.Get("/api/v1/users/:id<int>", h.getUser)
	app.Put("/api/v1/users/:id<int>", h.updateUser)
	app.Patch("/api/v1/users/:id<int>", h.patchUser)
	app.Delete("/api/v1/users/:id<int>", h.deleteUser)
}

func (h *Handler) listUsers(c *fiber.Ctx) error {
	users, err := h.service.List()
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toResponseList(users))
}

func (h *Handler) createUser(c *fiber.Ctx) error {
	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	input, err := payload.toInput()
	if err != nil {
		return h.fail(c, err)
	}

	created, err := h.service.Create(input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toResponse(created))
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	u, err := h.service.GetByID(id)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toResponse(u))
}

func (h *Handler) getUserByEmail(c *fiber.Ctx) error {
	email := c.Params("email")

	u, err := h.service.GetByEmail(email)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toResponse(u))
}

func (h *Handler) updateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	input, err := payload.toInput()
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.service.Update(id, input); err != nil {
		return h.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) patchUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	payload := new(patchRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	patch, err := payload.toPatch()
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.service.Patch(id, patch); err != nil {
		return h.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	if err := h.service.Delete(id); err != nil {
		return h.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// fail maps domain errors onto HTTP statuses. Anything unclassified is a
// plain 500.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var vErr *ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": vErr.Message})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
