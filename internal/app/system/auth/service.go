package auth

import (
	"context"
	"errors"

	userstore "github.com/dalemusser/affiliatehub/internal/app/store/users"
	"github.com/dalemusser/affiliatehub/internal/app/system/apperr"
	"github.com/dalemusser/affiliatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the subset of the user store the service needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u models.User) (models.User, error)
}

// Session is returned by Login and Register.
type Session struct {
	AccessToken string    `json:"access_token"`
	User        Principal `json:"user"`
}

// RegisterInput carries a new account's credentials.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

// Service validates credentials, creates accounts and issues tokens.
type Service struct {
	users  UserStore
	tokens *Tokens
	log    *zap.Logger
	cost   int
}

// NewService returns a Service using bcrypt.DefaultCost.
func NewService(users UserStore, tokens *Tokens, logger *zap.Logger) *Service {
	return &Service{users: users, tokens: tokens, log: logger, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *Service) WithHashCost(cost int) *Service {
	s.cost = cost
	return s
}

// HashPassword returns the bcrypt hash of password at the service's cost.
func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.cost)
}

// HashPassword returns the bcrypt hash of password at cost. Every stored
// password hash is produced here.
func HashPassword(password string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ValidateUser returns the caller identity when username and password
// match, and nil, nil when they do not.
func (s *Service) ValidateUser(ctx context.Context, username, password string) (*Principal, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return principalOf(u), nil
}

// Login checks credentials and issues a token.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	p, err := s.ValidateUser(ctx, username, password)
	if err != nil {
		return Session{}, err
	}
	if p == nil {
		s.log.Info("login failed", zap.String("username", username))
		return Session{}, apperr.Unauthorized("Invalid credentials")
	}
	s.log.Info("login succeeded", zap.String("user_id", p.ID), zap.String("username", p.Username))
	return s.session(*p)
}

// Register creates an account and signs it in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	taken, err := s.users.UsernameExists(ctx, in.Username)
	if err != nil {
		return Session{}, err
	}
	if taken {
		return Session{}, apperr.Conflict("Username already exists")
	}
	taken, err = s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return Session{}, err
	}
	if taken {
		return Session{}, apperr.Conflict("Email already in use")
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return Session{}, err
	}

	u, err := s.users.Create(ctx, models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        in.Roles,
	})
	if errors.Is(err, userstore.ErrDuplicateUser) {
		return Session{}, apperr.Conflict("Username or email already exists").Wrap(err)
	}
	if err != nil {
		return Session{}, err
	}

	s.log.Info("user registered", zap.String("user_id", u.ID.Hex()), zap.String("username", u.Username))
	return s.session(*principalOf(&u))
}

func (s *Service) session(p Principal) (Session, error) {
	tok, err := s.tokens.Issue(p)
	if err != nil {
		return Session{}, err
	}
	return Session{AccessToken: tok, User: p}, nil
}

func principalOf(u *models.User) *Principal {
	roles := append([]string(nil), u.Roles...)
	return &Principal{ID: u.ID.Hex(), Username: u.Username, Roles: roles}
}
