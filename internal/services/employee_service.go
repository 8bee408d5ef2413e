package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/mail"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/staffdir/staffdir-backend/internal/dto"
	"github.com/staffdir/staffdir-backend/internal/models"
	"github.com/staffdir/staffdir-backend/internal/storage"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidEmail       = errors.New("email must be a valid email address")
	ErrInvalidMobile      = errors.New("mobile must be exactly 10 digits")
	ErrInvalidDesignation = errors.New("designation must be one of HR, Manager, Sales")
	ErrInvalidGender      = errors.New("gender must be M or F")
	ErrCourseRequired     = errors.New("at least one course is required")
	ErrInvalidCourse      = errors.New("course must be one of MCA, BCA, BSC")
	ErrInvalidStatus      = errors.New("active must be Active or Deactive")
	ErrUnsupportedImage   = errors.New("only jpg and png files are allowed")
)

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

var allowedImageExts = []string{".jpg", ".jpeg", ".png"}

// ImageUpload is a staged image file from a multipart request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type EmployeeService struct {
	db    *gorm.DB
	store storage.ObjectStorage
}

func NewEmployeeService(db *gorm.DB, store storage.ObjectStorage) *EmployeeService {
	return &EmployeeService{db: db, store: store}
}

func (s *EmployeeService) Create(ctx context.Context, userID uuid.UUID, form *dto.EmployeeForm, image *ImageUpload) (*models.Employee, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}

	key, url, err := s.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}

	emp := models.Employee{
		ID:          uuid.New(),
		Name:        form.Name,
		Email:       form.Email,
		Mobile:      form.Mobile,
		Designation: form.Designation,
		Gender:      form.Gender,
		Course:      datatypes.JSONSlice[string](form.Course),
		ImageURL:    url,
		ImageKey:    key,
		Active:      models.StatusActive,
		UserID:      userID,
	}

	if err := s.db.WithContext(ctx).Create(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return &emp, nil
}

// List returns every employee. Pagination and search are client-side
// concerns in this application.
func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	var emps []models.Employee
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&emps).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return emps, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	var emp models.Employee
	if err := s.db.WithContext(ctx).First(&emp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// Update replaces every mutable field. CreatedAt and the creator are
// preserved; the existing image is kept when no new one is uploaded.
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, form *dto.EmployeeForm, image *ImageUpload) (*models.Employee, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}

	emp, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldKey := emp.ImageKey
	if image != nil {
		key, url, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		emp.ImageKey = key
		emp.ImageURL = url
	}

	emp.Name = form.Name
	emp.Email = form.Email
	emp.Mobile = form.Mobile
	emp.Designation = form.Designation
	emp.Gender = form.Gender
	emp.Course = datatypes.JSONSlice[string](form.Course)

	if err := s.db.WithContext(ctx).Save(emp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	if image != nil && oldKey != "" && oldKey != emp.ImageKey {
		s.removeImage(ctx, oldKey)
	}

	return emp, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	emp, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(emp).Error; err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if emp.ImageKey != "" {
		s.removeImage(ctx, emp.ImageKey)
	}
	return nil
}

// SetActive updates only the active column.
func (s *EmployeeService) SetActive(ctx context.Context, id uuid.UUID, status string) (*models.Employee, error) {
	if status != models.StatusActive && status != models.StatusDeactive {
		return nil, ErrInvalidStatus
	}

	emp, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(emp).Update("active", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update active status: %w", err)
	}
	return emp, nil
}

func (s *EmployeeService) storeImage(ctx context.Context, image *ImageUpload) (key, url string, err error) {
	if image == nil {
		return "", "", nil
	}

	ext := strings.ToLower(filepath.Ext(image.Filename))
	if !contains(allowedImageExts, ext) {
		return "", "", ErrUnsupportedImage
	}

	key = uuid.New().String() + ext
	if err := s.store.Put(ctx, key, image.Reader, image.Size, image.ContentType); err != nil {
		return "", "", fmt.Errorf("failed to store image: %w", err)
	}
	return key, s.store.URL(key), nil
}

// removeImage is best effort; a dangling object is not worth failing the
// request over.
func (s *EmployeeService) removeImage(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		slog.Warn("failed to remove stored image", "key", key, "error", err)
	}
}

// validateForm reports the first violated field.
func validateForm(form *dto.EmployeeForm) error {
	if strings.TrimSpace(form.Name) == "" {
		return ErrNameRequired
	}
	if _, err := mail.ParseAddress(form.Email); err != nil {
		return ErrInvalidEmail
	}
	if !mobilePattern.MatchString(form.Mobile) {
		return ErrInvalidMobile
	}
	if !contains(models.Designations, form.Designation) {
		return ErrInvalidDesignation
	}
	if !contains(models.Genders, form.Gender) {
		return ErrInvalidGender
	}
	if len(form.Course) == 0 {
		return ErrCourseRequired
	}
	for _, c := range form.Course {
		if !contains(models.Courses, c) {
			return ErrInvalidCourse
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
