package service

import (
	"errors"
	"testing"

	"examportal/config"
	"examportal/internal/dto"
	"examportal/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (AuthService, *config.Config) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing fixture password: %v", err)
	}
	users := newFakeUserRepo(&model.User{
		ID:           7,
		Name:         "Ada",
		Surname:      "Yilmaz",
		Username:     "ada",
		PasswordHash: string(hash),
		Role:         model.RoleTeacher,
	})

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTLHours = 1
	return NewAuthService(users, cfg), cfg
}

func TestLoginIssuesTokenWithRoleClaim(t *testing.T) {
	svc, cfg := newAuthFixture(t)

	resp, err := svc.Login(dto.LoginRequestDTO{Username: "ada", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.User.Username != "ada" || resp.User.Role != model.RoleTeacher {
		t.Errorf("response user = %+v, want ada with the teacher role", resp.User)
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(resp.Token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Subject != "7" {
		t.Errorf("token subject = %q, want the user id", claims.Subject)
	}
	if claims.Role != model.RoleTeacher {
		t.Errorf("token role = %q, want %q", claims.Role, model.RoleTeacher)
	}
	if claims.ExpiresAt == nil {
		t.Errorf("token has no expiry")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)

	tests := []struct {
		name string
		req  dto.LoginRequestDTO
	}{
		{"wrong password", dto.LoginRequestDTO{Username: "ada", Password: "nope"}},
		{"unknown user", dto.LoginRequestDTO{Username: "ghost", Password: "secret123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(tt.req)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}
