package service

import (
	"errors"
	"fmt"
	"time"

	"examportal/config"
	"examportal/internal/dto"
	"examportal/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims is the token payload: user id as subject plus the role the
// middleware and visibility layer branch on.
type Claims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(req dto.LoginRequestDTO) (*dto.LoginResponseDTO, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

func (s *authService) Login(req dto.LoginRequestDTO) (*dto.LoginResponseDTO, error) {
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("loading user %q: %w", req.Username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		Role: user.Role,
		Name: user.Name + " " + user.Surname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.JWT.TTLHours) * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Login: failed to sign token")
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	log.Info().Uint("userID", user.ID).Str("role", user.Role).Msg("Login: user authenticated")
	userDTO, err := userToDTO(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponseDTO{Token: token, User: *userDTO}, nil
}
