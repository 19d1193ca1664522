package auth

import (
	"time"

	"github.com/teampulse/teampulse/internal/rbac"
	"github.com/teampulse/teampulse/internal/user"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	GetCredentials(email string) (userID int64, passwordHash string, isActive bool, err error)
	GetUserByID(userID int64) (email string, isActive bool, err error)
	UpdateLastLogin(userID int64, at time.Time) error
}

// PermissionSource supplies the resolved assignment graph for a user. The
// user service's aggregate satisfies it.
type PermissionSource interface {
	GetCompleteInformation(userID int64) (*user.CompleteInformation, error)
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	BuildSession(userID int64) (*rbac.Session, error)
}

type Service struct {
	userRepo       UserRepository
	permissions    PermissionSource
	tokenGenerator TokenGenerator
}

func NewService(userRepo UserRepository, permissions PermissionSource, tokenGen TokenGenerator) *Service {
	return &Service{
		userRepo:       userRepo,
		permissions:    permissions,
		tokenGenerator: tokenGen,
	}
}

// Authenticate validates credentials and returns a token pair. lastLoginAt
// is updated on success; a failed update does not fail the login.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	userID, storedHash, isActive, err := s.userRepo.GetCredentials(dto.Email)
	if err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}
	if !isActive {
		return AuthTokens{}, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(userID, dto.Email)
	if err != nil {
		return AuthTokens{}, err
	}
	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(userID, dto.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	_ = s.userRepo.UpdateLastLogin(userID, time.Now())

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens validates the refresh token and issues a new pair. The user
// must still exist and be active.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	email, isActive, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return AuthTokens{}, ErrInvalidToken
	}
	if !isActive {
		return AuthTokens{}, ErrUserInactive
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(claims.UserID, email)
	if err != nil {
		return AuthTokens{}, err
	}
	newRefreshToken, err := s.tokenGenerator.GenerateRefreshToken(claims.UserID, email)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateAccessToken(tokenString)
}

// BuildSession loads the user's resolved permission union and highest role
// level into the immutable session the guard middleware evaluates against.
// Called once per request by the auth middleware.
func (s *Service) BuildSession(userID int64) (*rbac.Session, error) {
	info, err := s.permissions.GetCompleteInformation(userID)
	if err != nil {
		return nil, err
	}
	if !info.User.IsActive {
		return nil, ErrUserInactive
	}

	set := make(rbac.PermissionSet, len(info.CommonPermissions))
	for _, name := range info.CommonPermissions {
		set[rbac.PermissionName(name)] = struct{}{}
	}

	var level rbac.Level
	for _, p := range info.Projects {
		for _, r := range p.Roles {
			if !r.IsActive {
				continue
			}
			l := rbac.Level(r.Level)
			if l.IsValid() && l.Rank() > level.Rank() {
				level = l
			}
		}
	}

	return &rbac.Session{
		UserID:      info.User.ID,
		Email:       info.User.Email,
		Level:       level,
		Permissions: set,
	}, nil
}
