package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"notepilot/internal/http/middleware"
	"notepilot/internal/model"
	"notepilot/internal/service"
)

type notebookInput struct {
	Name string `json:"name"`
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListNotes godoc
// @Summary      List the caller's notes, newest first
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        notebook_id  query  int  false  "only notes of this notebook"
// @Success      200  {array}   model.Note
// @Failure      401  {object}  errorPayload
// @Failure      422  {object}  errorPayload
// @Router       /api/notes [get]
func ListNotes(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var notebookID *int64
		if raw := c.Query("notebook_id"); raw != "" {
			id, ok := parseID(raw)
			if !ok {
				return writeError(c, fiber.StatusUnprocessableEntity, "invalid notebook_id")
			}
			notebookID = &id
		}

		notes, err := svc.ListNotes(c.UserContext(), middleware.UserID(c), notebookID)
		if err != nil {
			return writeStoreError(c, err)
		}
		return c.JSON(notes)
	}
}

// CreateNote godoc
// @Summary      Create a note owned by the caller
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        note  body  model.NoteInput  true  "note"
// @Success      201  {object}  model.Note
// @Failure      401  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Failure      422  {object}  errorPayload
// @Router       /api/notes [post]
func CreateNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.NoteInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "invalid request body")
		}

		note, err := svc.CreateNote(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return writeStoreError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(note)
	}
}

// UpdateNote godoc
// @Summary      Update title and content of a note; notebook changes only when notebook_id is sent
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int              true  "note id"
// @Param        note  body  model.NoteInput  true  "note"
// @Success      200  {object}  model.Note
// @Failure      401  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Failure      422  {object}  errorPayload
// @Router       /api/notes/{id} [put]
func UpdateNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c.Params("id"))
		if !ok {
			return writeError(c, fiber.StatusUnprocessableEntity, "invalid id")
		}
		var in model.NoteInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "invalid request body")
		}

		note, err := svc.UpdateNote(c.UserContext(), middleware.UserID(c), id, in)
		if err != nil {
			return writeStoreError(c, err)
		}
		return c.JSON(note)
	}
}

// DeleteNote godoc
// @Summary      Delete a note
// @Tags         notes
// @Security     BearerAuth
// @Param        id  path  int  true  "note id"
// @Success      204
// @Failure      401  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Router       /api/notes/{id} [delete]
func DeleteNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c.Params("id"))
		if !ok {
			return writeError(c, fiber.StatusUnprocessableEntity, "invalid id")
		}
		if err := svc.DeleteNote(c.UserContext(), middleware.UserID(c), id); err != nil {
			return writeStoreError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListNotebooks godoc
// @Summary      List the caller's notebooks
// @Tags         notebooks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.Notebook
// @Failure      401  {object}  errorPayload
// @Router       /api/notebooks [get]
func ListNotebooks(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		nbs, err := svc.ListNotebooks(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return writeStoreError(c, err)
		}
		return c.JSON(nbs)
	}
}

// CreateNotebook godoc
// @Summary      Create a notebook
// @Tags         notebooks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        notebook  body  notebookInput  true  "notebook"
// @Success      201  {object}  model.Notebook
// @Failure      401  {object}  errorPayload
// @Failure      422  {object}  errorPayload
// @Router       /api/notebooks [post]
func CreateNotebook(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in notebookInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "invalid request body")
		}

		nb, err := svc.CreateNotebook(c.UserContext(), middleware.UserID(c), in.Name)
		if err != nil {
			return writeStoreError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(nb)
	}
}

// RenameNotebook godoc
// @Summary      Rename a notebook
// @Tags         notebooks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path  int            true  "notebook id"
// @Param        notebook  body  notebookInput  true  "notebook"
// @Success      200  {object}  model.Notebook
// @Failure      401  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Failure      422  {object}  errorPayload
// @Router       /api/notebooks/{id} [put]
func RenameNotebook(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c.Params("id"))
		if !ok {
			return writeError(c, fiber.StatusUnprocessableEntity, "invalid id")
		}
		var in notebookInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "invalid request body")
		}

		nb, err := svc.RenameNotebook(c.UserContext(), middleware.UserID(c), id, in.Name)
		if err != nil {
			return writeStoreError(c, err)
		}
		return c.JSON(nb)
	}
}

// DeleteNotebook godoc
// @Summary      Delete a notebook and all of its notes
// @Tags         notebooks
// @Security     BearerAuth
// @Param        id  path  int  true  "notebook id"
// @Success      204
// @Failure      401  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Router       /api/notebooks/{id} [delete]
func DeleteNotebook(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c.Params("id"))
		if !ok {
			return writeError(c, fiber.StatusUnprocessableEntity, "invalid id")
		}
		if err := svc.DeleteNotebook(c.UserContext(), middleware.UserID(c), id); err != nil {
			return writeStoreError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
