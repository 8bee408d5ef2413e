package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/staffdir/staffdir-backend/internal/dto"
	"github.com/staffdir/staffdir-backend/internal/models"
	"github.com/staffdir/staffdir-backend/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEmployeeService(t *testing.T) (*EmployeeService, *gorm.DB, string) {
	t.Helper()

	db := newTestDB(t)
	dir := t.TempDir()
	store, err := storage.NewLocal(dir)
	require.NoError(t, err)
	return NewEmployeeService(db, store), db, dir
}

func validForm() *dto.EmployeeForm {
	return &dto.EmployeeForm{
		Name:        "A",
		Email:       "a@x.com",
		Mobile:      "1234567890",
		Designation: "HR",
		Gender:      "M",
		Course:      []string{"MCA"},
	}
}

func TestCreateListScenario(t *testing.T) {
	svc, _, _ := newEmployeeService(t)
	ctx := context.Background()
	userID := uuid.New()

	emp, err := svc.Create(ctx, userID, validForm(), nil)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, emp.ID)
	require.Equal(t, models.StatusActive, emp.Active)
	require.Equal(t, userID, emp.UserID)
	require.False(t, emp.CreatedAt.IsZero())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, emp.ID, list[0].ID)
	require.Equal(t, []string{"MCA"}, []string(list[0].Course))

	// Same email, different name: store-level conflict.
	dup := validForm()
	dup.Name = "B"
	_, err = svc.Create(ctx, userID, dup, nil)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateValidation(t *testing.T) {
	svc, db, _ := newEmployeeService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*dto.EmployeeForm)
		want   error
	}{
		{"empty name", func(f *dto.EmployeeForm) { f.Name = "  " }, ErrNameRequired},
		{"bad email", func(f *dto.EmployeeForm) { f.Email = "not-an-email" }, ErrInvalidEmail},
		{"short mobile", func(f *dto.EmployeeForm) { f.Mobile = "12345" }, ErrInvalidMobile},
		{"non-numeric mobile", func(f *dto.EmployeeForm) { f.Mobile = "12345abcde" }, ErrInvalidMobile},
		{"long mobile", func(f *dto.EmployeeForm) { f.Mobile = "12345678901" }, ErrInvalidMobile},
		{"bad designation", func(f *dto.EmployeeForm) { f.Designation = "CEO" }, ErrInvalidDesignation},
		{"bad gender", func(f *dto.EmployeeForm) { f.Gender = "Male" }, ErrInvalidGender},
		{"empty course", func(f *dto.EmployeeForm) { f.Course = nil }, ErrCourseRequired},
		{"bad course", func(f *dto.EmployeeForm) { f.Course = []string{"MCA", "PHD"} }, ErrInvalidCourse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(form)
			_, err := svc.Create(ctx, uuid.New(), form, nil)
			require.ErrorIs(t, err, tc.want)
		})
	}

	// Nothing may have been persisted by the rejected requests.
	var count int64
	require.NoError(t, db.Model(&models.Employee{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateRoundTrip(t *testing.T) {
	svc, _, _ := newEmployeeService(t)
	ctx := context.Background()

	emp, err := svc.Create(ctx, uuid.New(), validForm(), nil)
	require.NoError(t, err)

	updated := &dto.EmployeeForm{
		Name:        "A2",
		Email:       "a2@x.com",
		Mobile:      "0987654321",
		Designation: "Sales",
		Gender:      "F",
		Course:      []string{"BCA", "BSC"},
	}
	_, err = svc.Update(ctx, emp.ID, updated, nil)
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	require.Equal(t, "A2", got.Name)
	require.Equal(t, "a2@x.com", got.Email)
	require.Equal(t, "0987654321", got.Mobile)
	require.Equal(t, "Sales", got.Designation)
	require.Equal(t, "F", got.Gender)
	require.Equal(t, []string{"BCA", "BSC"}, []string(got.Course))
	require.WithinDuration(t, emp.CreatedAt, got.CreatedAt, time.Second)
	require.Equal(t, emp.UserID, got.UserID)
}

func TestUpdateEmailConflict(t *testing.T) {
	svc, _, _ := newEmployeeService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, uuid.New(), validForm(), nil)
	require.NoError(t, err)

	second := validForm()
	second.Email = "b@x.com"
	emp2, err := svc.Create(ctx, uuid.New(), second, nil)
	require.NoError(t, err)

	// Taking another employee's email is a conflict.
	form := validForm()
	form.Email = first.Email
	_, err = svc.Update(ctx, emp2.ID, form, nil)
	require.ErrorIs(t, err, ErrEmailTaken)

	// Keeping your own email is not.
	form.Email = "b@x.com"
	_, err = svc.Update(ctx, emp2.ID, form, nil)
	require.NoError(t, err)
}

func TestSetActiveToggle(t *testing.T) {
	svc, _, _ := newEmployeeService(t)
	ctx := context.Background()

	emp, err := svc.Create(ctx, uuid.New(), validForm(), nil)
	require.NoError(t, err)

	_, err = svc.SetActive(ctx, emp.ID, models.StatusActive)
	require.NoError(t, err)
	_, err = svc.SetActive(ctx, emp.ID, models.StatusDeactive)
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusDeactive, got.Active)

	_, err = svc.SetActive(ctx, emp.ID, "active")
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.SetActive(ctx, uuid.New(), models.StatusActive)
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestDelete(t *testing.T) {
	svc, _, _ := newEmployeeService(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.Delete(ctx, uuid.New()), ErrEmployeeNotFound)

	emp, err := svc.Create(ctx, uuid.New(), validForm(), nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, emp.ID))

	_, err = svc.GetByID(ctx, emp.ID)
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestCreateWithImage(t *testing.T) {
	svc, _, dir := newEmployeeService(t)
	ctx := context.Background()

	image := &ImageUpload{
		Filename:    "avatar.PNG",
		ContentType: "image/png",
		Size:        4,
		Reader:      strings.NewReader("data"),
	}
	emp, err := svc.Create(ctx, uuid.New(), validForm(), image)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(emp.ImageURL, "/media/"))
	require.True(t, strings.HasSuffix(emp.ImageURL, ".png"))

	// The object must exist on disk under the upload dir.
	_, err = os.Stat(filepath.Join(dir, emp.ImageKey))
	require.NoError(t, err)
}

func TestCreateRejectsUnsupportedImage(t *testing.T) {
	svc, db, _ := newEmployeeService(t)
	ctx := context.Background()

	image := &ImageUpload{
		Filename:    "avatar.gif",
		ContentType: "image/gif",
		Size:        4,
		Reader:      strings.NewReader("data"),
	}
	_, err := svc.Create(ctx, uuid.New(), validForm(), image)
	require.ErrorIs(t, err, ErrUnsupportedImage)

	var count int64
	require.NoError(t, db.Model(&models.Employee{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateKeepsExistingImage(t *testing.T) {
	svc, _, _ := newEmployeeService(t)
	ctx := context.Background()

	image := &ImageUpload{
		Filename:    "avatar.jpg",
		ContentType: "image/jpeg",
		Size:        4,
		Reader:      strings.NewReader("data"),
	}
	emp, err := svc.Create(ctx, uuid.New(), validForm(), image)
	require.NoError(t, err)
	require.NotEmpty(t, emp.ImageURL)

	_, err = svc.Update(ctx, emp.ID, validForm(), nil)
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	require.Equal(t, emp.ImageURL, got.ImageURL)
}
