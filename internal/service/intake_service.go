package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/pkg/apiclient"
	"github.com/noah-isme/phlebotomy-portal/pkg/config"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
)

const sniffLen = 512

var (
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

// Upload is one file received from a portal form.
type Upload struct {
	Field    string
	Filename string
	Size     int64
	Content  io.Reader
}

type appointmentCreator interface {
	Create(ctx context.Context, token string, fields map[string]string, files []apiclient.File) (string, error)
}

type directoryWriter interface {
	AddEmployee(ctx context.Context, creds Credentials, fields map[string]string, files []apiclient.File) (string, error)
	AddLaboratory(ctx context.Context, creds Credentials, fields map[string]string, files []apiclient.File) (string, error)
}

type profileUpdater interface {
	UpdateProfile(ctx context.Context, creds Credentials, fields map[string]string, files []apiclient.File) (string, error)
}

// IntakeService validates the portal's multipart forms and forwards them with their files.
type IntakeService struct {
	appointments appointmentCreator
	directory    directoryWriter
	profiles     profileUpdater
	validator    *validator.Validate
	uploads      config.UploadsConfig
	logger       *zap.Logger
	now          func() time.Time
}

// NewIntakeService constructs an IntakeService. validate gains the "phone" and "clock" rules.
func NewIntakeService(appointments appointmentCreator, directory directoryWriter, profiles profileUpdater, validate *validator.Validate, uploads config.UploadsConfig, logger *zap.Logger) *IntakeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	if uploads.MaxFileSizeBytes <= 0 {
		uploads.MaxFileSizeBytes = 5 << 20
	}
	return &IntakeService{
		appointments: appointments,
		directory:    directory,
		profiles:     profiles,
		validator:    validate,
		uploads:      uploads,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateAppointment submits a new appointment with an optional image and documents.
func (s *IntakeService) CreateAppointment(ctx context.Context, creds Credentials, form models.CreateAppointmentForm, image *Upload, documents []Upload) (string, error) {
	if err := s.validator.Struct(form); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid appointment form")
	}

	files := make([]apiclient.File, 0, len(documents)+1)
	if image != nil {
		file, err := s.prepare("image", *image, s.uploads.ImageMIMEs)
		if err != nil {
			return "", err
		}
		files = append(files, file)
	}
	for _, doc := range documents {
		file, err := s.prepare("documents", doc, s.uploads.DocumentMIMEs)
		if err != nil {
			return "", err
		}
		files = append(files, file)
	}

	token, err := creds.Token(ctx)
	if err != nil {
		return "", err
	}
	msg, err := s.appointments.Create(ctx, token, form.Fields(), files)
	if err != nil {
		rejectCredential(ctx, creds, err)
		return "", err
	}
	s.logger.Info("appointment created", zap.String("laboratory", form.Laboratory), zap.Int("files", len(files)))
	return msg, nil
}

// AddEmployee onboards an employee with an optional profile image.
func (s *IntakeService) AddEmployee(ctx context.Context, creds Credentials, form models.AddEmployeeForm, image *Upload) (string, error) {
	if err := s.validator.Struct(form); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid employee form")
	}
	hired, err := time.Parse("2006-01-02", form.HireDate)
	if err != nil || hired.After(s.now()) {
		return "", appErrors.Clone(appErrors.ErrValidation, "Hire date must be valid and not in the future")
	}

	files, err := s.image(image)
	if err != nil {
		return "", err
	}
	return s.directory.AddEmployee(ctx, creds, form.Fields(), files)
}

// AddLaboratory registers a laboratory with its weekly timings and an optional image.
func (s *IntakeService) AddLaboratory(ctx context.Context, creds Credentials, form models.AddLaboratoryForm, image *Upload) (string, error) {
	if err := s.validator.Struct(form); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid laboratory form")
	}
	files, err := s.image(image)
	if err != nil {
		return "", err
	}
	msg, err := s.directory.AddLaboratory(ctx, creds, form.Fields(s.now()), files)
	if err != nil {
		return "", err
	}
	s.logger.Info("laboratory added", zap.Int("days", len(form.Timings)))
	return msg, nil
}

// UpdateProfile saves the account settings. Admins must give gender, job role and
// hire date; employees gender; laboratories about and their weekly timings.
func (s *IntakeService) UpdateProfile(ctx context.Context, creds Credentials, role models.UserRole, form models.UpdateProfileForm, image *Upload) (string, error) {
	if err := s.validator.Struct(form); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile form")
	}
	if missing := missingProfileFields(role, form); len(missing) > 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s required", strings.Join(missing, ", ")))
	}
	if role == models.RoleAdmin {
		hired, err := time.Parse("2006-01-02", form.HireDate)
		if err != nil || hired.After(s.now()) {
			return "", appErrors.Clone(appErrors.ErrValidation, "Hire date must be valid and not in the future")
		}
	}
	files, err := s.image(image)
	if err != nil {
		return "", err
	}
	return s.profiles.UpdateProfile(ctx, creds, form.Fields(role), files)
}

func missingProfileFields(role models.UserRole, form models.UpdateProfileForm) []string {
	var missing []string
	switch role {
	case models.RoleLaboratory:
		if strings.TrimSpace(form.About) == "" {
			missing = append(missing, "about")
		}
		if len(form.Timings) == 0 {
			missing = append(missing, "timings")
		}
	case models.RoleAdmin:
		if form.Gender == "" {
			missing = append(missing, "gender")
		}
		if strings.TrimSpace(form.JobRole) == "" {
			missing = append(missing, "jobRole")
		}
		if form.HireDate == "" {
			missing = append(missing, "hireDate")
		}
	default:
		if form.Gender == "" {
			missing = append(missing, "gender")
		}
	}
	return missing
}

// image prepares an optional profile image.
func (s *IntakeService) image(up *Upload) ([]apiclient.File, error) {
	if up == nil {
		return nil, nil
	}
	file, err := s.prepare("image", *up, s.uploads.ImageMIMEs)
	if err != nil {
		return nil, err
	}
	return []apiclient.File{file}, nil
}

// prepare enforces the size limit and sniffs the content type against allowed.
func (s *IntakeService) prepare(field string, up Upload, allowed []string) (apiclient.File, error) {
	name := filepath.Base(strings.TrimSpace(up.Filename))
	if up.Size > s.uploads.MaxFileSizeBytes {
		return apiclient.File{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s exceeds the %d MB limit", name, s.uploads.MaxFileSizeBytes>>20))
	}
	if up.Content == nil {
		return apiclient.File{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is empty", name))
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(up.Content, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return apiclient.File{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read upload")
	}
	if n == 0 {
		return apiclient.File{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is empty", name))
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	if !mimeAllowed(contentType, allowed) {
		return apiclient.File{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s has unsupported type %s", name, contentType))
	}

	return apiclient.File{
		Field:       field,
		Filename:    name,
		ContentType: contentType,
		Content:     io.LimitReader(io.MultiReader(bytes.NewReader(head), up.Content), s.uploads.MaxFileSizeBytes),
	}, nil
}

func mimeAllowed(contentType string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, candidate := range allowed {
		if strings.EqualFold(strings.TrimSpace(candidate), contentType) {
			return true
		}
	}
	return false
}
