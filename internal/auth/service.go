package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/easyhomework/backend/internal/apperr"
	"github.com/easyhomework/backend/internal/models"
)

// teacherCodeAttempts bounds how often registration redraws a colliding code.
const teacherCodeAttempts = 3

// UserStore defines the interface for credential persistence. Lookups return
// (nil, nil) when no account matches.
type UserStore interface {
	CreateUser(ctx context.Context, u models.NewUser) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByTeacherCode(ctx context.Context, code string) (*models.User, error)
}

// LoginRecorder keeps the delegation activity log.
type LoginRecorder interface {
	Record(ctx context.Context, parentID string, entry models.TeacherLogin) error
	Recent(ctx context.Context, parentID string, limit int) ([]models.TeacherLogin, error)
}

// Service implements registration, login and teacher delegation.
type Service struct {
	users  UserStore
	tokens *Tokens
	logins LoginRecorder
	logger *zap.Logger
	now    func() time.Time
}

func NewService(users UserStore, tokens *Tokens, logins LoginRecorder, logger *zap.Logger) *Service {
	return &Service{users: users, tokens: tokens, logins: logins, logger: logger, now: time.Now}
}

// Register creates an account and returns it with a primary session token.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return nil, "", apperr.Required("name")
	case strings.TrimSpace(req.Email) == "":
		return nil, "", apperr.Required("email")
	case req.Password == "":
		return nil, "", apperr.Required("password")
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	children := req.Children
	if children == nil {
		children = []string{}
	}

	var user *models.User
	for attempt := 1; ; attempt++ {
		code, err := NewTeacherCode()
		if err != nil {
			return nil, "", fmt.Errorf("teacher code: %w", err)
		}
		user, err = s.users.CreateUser(ctx, models.NewUser{
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: hashed,
			Children:     children,
			TeacherCode:  code,
		})
		if errors.Is(err, apperr.ErrTeacherCodeTaken) && attempt < teacherCodeAttempts {
			s.logger.Warn("teacher code collision, retrying", zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, "", err
		}
		break
	}

	token, err := s.tokens.Issue(PrimaryClaims(user.ID, user.Email))
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Login checks email and password. Unknown email and wrong password fail
// with the same error.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", apperr.ValidationError{Field: "credentials", Message: "email and password are required"}
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !CheckPassword(req.Password, user.PasswordHash) {
		return nil, "", apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(PrimaryClaims(user.ID, user.Email))
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// TeacherLogin exchanges a delegation code for a session on the parent
// account. The teacher's name and phone are taken as given.
func (s *Service) TeacherLogin(ctx context.Context, req models.TeacherLoginRequest) (*models.TeacherUser, string, error) {
	code := strings.ToUpper(strings.TrimSpace(req.TeacherCode))
	if code == "" {
		return nil, "", apperr.Required("teacher_code")
	}

	parent, err := s.users.GetUserByTeacherCode(ctx, code)
	if err != nil {
		return nil, "", err
	}
	if parent == nil {
		return nil, "", apperr.ErrInvalidTeacherCode
	}

	d := Delegate{TeacherName: req.Name, TeacherPhone: req.Phone}
	token, err := s.tokens.Issue(TeacherClaims(parent.ID, parent.Email, d))
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	entry := models.TeacherLogin{Name: req.Name, Phone: req.Phone, At: s.now().UTC()}
	if err := s.logins.Record(ctx, parent.ID, entry); err != nil {
		s.logger.Warn("teacher login not recorded", zap.String("parent_id", parent.ID), zap.Error(err))
	}

	children := parent.Children
	if children == nil {
		children = []string{}
	}
	return &models.TeacherUser{
		ID:          "teacher_" + parent.ID,
		Name:        req.Name,
		Phone:       req.Phone,
		TeacherCode: req.TeacherCode,
		ParentID:    parent.ID,
		ParentName:  parent.Name,
		ParentEmail: parent.Email,
		Children:    children,
	}, token, nil
}

// RecentTeacherLogins lists delegation activity on the account.
func (s *Service) RecentTeacherLogins(ctx context.Context, userID string, limit int) ([]models.TeacherLogin, error) {
	return s.logins.Recent(ctx, userID, limit)
}
