package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/orgware/staffd/pkg/domain"
	"github.com/orgware/staffd/pkg/repository"
)

// Service handles organisation registration and user authentication.
type Service struct {
	db     *sql.DB
	orgs   *repository.OrganisationsRepository
	users  *repository.UsersRepository
	tokens *TokenService
}

// NewService creates a new auth service.
func NewService(db *sql.DB, orgs *repository.OrganisationsRepository, users *repository.UsersRepository, tokens *TokenService) *Service {
	return &Service{
		db:     db,
		orgs:   orgs,
		users:  users,
		tokens: tokens,
	}
}

// Session is the result of a successful register or login.
type Session struct {
	Token        string
	ExpiresAt    time.Time
	User         *domain.User
	Organisation *domain.Organisation
}

// Register creates an organisation and its admin user, then issues a
// token. The organisation and user rows are written in one transaction;
// a duplicate email fails with domain.ErrEmailTaken and writes nothing.
func (s *Service) Register(ctx context.Context, orgName, adminName, email, password string) (*Session, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	org := &domain.Organisation{
		ID:        uuid.New(),
		Name:      orgName,
		CreatedAt: now,
	}
	user := &domain.User{
		ID:             uuid.New(),
		OrganisationID: org.ID,
		Email:          email,
		PasswordHash:   hash,
		Name:           adminName,
		CreatedAt:      now,
	}

	err = repository.Tx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.orgs.CreateTx(ctx, tx, org); err != nil {
			return err
		}
		return s.users.CreateTx(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, org.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, ExpiresAt: expiresAt, User: user, Organisation: org}, nil
}

// Login verifies credentials and issues a fresh token. An unknown email
// and a wrong password both return domain.ErrInvalidCredentials, and the
// unknown-email path still performs a hash comparison so the two cases
// take comparable time.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			VerifyPassword(password, string(dummyHash))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	org, err := s.orgs.GetByID(ctx, user.OrganisationID)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, org.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, ExpiresAt: expiresAt, User: user, Organisation: org}, nil
}
