package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/staffdir/staffdir-backend/internal/dto"
	"github.com/staffdir/staffdir-backend/internal/middleware"
	"github.com/staffdir/staffdir-backend/internal/services"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	form, err := parseEmployeeForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid multipart form"})
	}

	image, cleanup, err := parseImage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid image upload"})
	}
	defer cleanup()

	emp, err := h.employeeService.Create(c.UserContext(), userID, form, image)
	if err != nil {
		if isBadRequest(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to create employee"})
	}

	return c.Status(fiber.StatusCreated).JSON(emp)
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	emps, err := h.employeeService.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch employees"})
	}
	return c.JSON(emps)
}

func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid employee ID"})
	}

	emp, err := h.employeeService.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch employee"})
	}
	return c.JSON(emp)
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid employee ID"})
	}

	form, err := parseEmployeeForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid multipart form"})
	}

	image, cleanup, err := parseImage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid image upload"})
	}
	defer cleanup()

	emp, err := h.employeeService.Update(c.UserContext(), id, form, image)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		if isBadRequest(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update employee"})
	}

	return c.JSON(emp)
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid employee ID"})
	}

	if err := h.employeeService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to delete employee"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *EmployeeHandler) SetActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid employee ID"})
	}

	var req dto.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	emp, err := h.employeeService.SetActive(c.UserContext(), id, req.Active)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, services.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update active status"})
	}

	return c.JSON(emp)
}

// parseEmployeeForm reads the multipart field values. Course may repeat.
func parseEmployeeForm(c *fiber.Ctx) (*dto.EmployeeForm, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	return &dto.EmployeeForm{
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		Mobile:      c.FormValue("mobile"),
		Designation: c.FormValue("designation"),
		Gender:      c.FormValue("gender"),
		Course:      mf.Value["course"],
	}, nil
}

// parseImage stages the optional image file. The returned cleanup closes
// the opened part and is safe to call when no file was sent.
func parseImage(c *fiber.Ctx) (*services.ImageUpload, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// No file part means no image; that is fine.
		return nil, func() {}, nil
	}
	return openImage(fh)
}

func openImage(fh *multipart.FileHeader) (*services.ImageUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}

	upload := &services.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}
	return upload, func() { f.Close() }, nil
}

// isBadRequest reports whether err belongs to the recoverable input error
// family (validation, conflict, unsupported media).
func isBadRequest(err error) bool {
	for _, target := range []error{
		services.ErrNameRequired,
		services.ErrInvalidEmail,
		services.ErrInvalidMobile,
		services.ErrInvalidDesignation,
		services.ErrInvalidGender,
		services.ErrCourseRequired,
		services.ErrInvalidCourse,
		services.ErrUnsupportedImage,
		services.ErrEmailTaken,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
