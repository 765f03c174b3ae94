package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/stores"
)

type AuthService struct {
	Users    stores.UserStore
	Students stores.StudentStore
	Hasher   auth.PasswordHasher
	Tokens   auth.TokenService
	Log      logrus.FieldLogger
}

func NewAuthService(s *stores.Stores, hasher auth.PasswordHasher, tokens auth.TokenService, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		Users:    s.Users,
		Students: s.Students,
		Hasher:   hasher,
		Tokens:   tokens,
		Log:      log,
	}
}

// Session is a signed-in principal with its token.
type Session struct {
	Principal auth.Principal
	Token     string
}

const msgEmailTaken = "Email already registered. Please log in."

// Register creates the account and student profile together and signs the
// new student in.
func (s *AuthService) Register(ctx context.Context, req *dtos.RegisterRequest) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.Users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict(msgEmailTaken)
	} else if !stores.IsNotFound(err) {
		return nil, storeError(err, "user")
	}

	hash, err := s.Hasher.Hash([]byte(req.Password))
	if err != nil {
		return nil, apperr.Internal("could not hash password", err)
	}
	user := &models.User{Email: email, PasswordHash: string(hash), Role: models.RoleStudent}
	student := &models.Student{Name: strings.TrimSpace(req.Name)}
	if err := s.Students.CreateWithUser(ctx, user, student); err != nil {
		if stores.IsDuplicate(err) {
			return nil, apperr.Conflict(msgEmailTaken)
		}
		return nil, storeError(err, "user")
	}

	s.Log.WithFields(logrus.Fields{"user_id": user.ID, "student_id": student.ID}).Info("student registered")
	return s.issue(auth.Principal{
		UserID:    user.ID,
		Role:      models.RoleStudent,
		StudentID: student.ID,
		Email:     user.Email,
	})
}

// Login checks the password and resolves the student profile for students.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	invalid := apperr.New(apperr.CodeUnauthorized, "Invalid email or password", nil)

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if stores.IsNotFound(err) {
			return nil, invalid
		}
		return nil, storeError(err, "user")
	}
	if err := s.Hasher.Compare([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.Log.WithField("user_id", user.ID).Info("failed login")
		return nil, invalid
	}

	p := auth.Principal{UserID: user.ID, Role: user.Role, Email: user.Email}
	if user.Role == models.RoleStudent {
		st, err := s.Students.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, storeError(err, "student")
		}
		p.StudentID = st.ID
	}
	return s.issue(p)
}

// EnsureAdmin provisions the admin account. It reports whether an account was
// created; an existing admin with that email is left as is.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, apperr.NewValidation("Admin email and password are required", nil)
	}

	existing, err := s.Users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.Role == models.RoleAdmin:
		s.Log.WithField("email", email).Info("admin already exists")
		return false, nil
	case err == nil:
		return false, apperr.Conflict("a non-admin user already uses " + email)
	case !stores.IsNotFound(err):
		return false, storeError(err, "user")
	}

	hash, err := s.Hasher.Hash([]byte(password))
	if err != nil {
		return false, apperr.Internal("could not hash password", err)
	}
	if err := s.Users.Create(ctx, &models.User{Email: email, PasswordHash: string(hash), Role: models.RoleAdmin}); err != nil {
		return false, storeError(err, "user")
	}
	s.Log.WithField("email", email).Info("admin account created")
	return true, nil
}

func (s *AuthService) issue(p auth.Principal) (*Session, error) {
	token, err := s.Tokens.Issue(p)
	if err != nil {
		return nil, apperr.Internal("could not start session", err)
	}
	return &Session{Principal: p, Token: token}, nil
}
