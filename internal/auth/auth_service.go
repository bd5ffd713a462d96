package auth

import (
	"context"
	"strings"
	"time"

	autherrors "go-payroll/internal/auth/errors"
	"go-payroll/internal/employee"
	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, employeeID string) (*AuthResponse, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func (s *service) Login(ctx context.Context, username, password string) (string, string, AuthResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	login := strings.TrimSpace(username)
	if strings.EqualFold(login, "admin") {
		login = employee.AdminID
	}

	empl, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		log.Info("login unknown user", zap.String("username", login))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if empl.PasswordHash == "" {
		log.Info("login rejected, no password set", zap.String("employee_id", empl.ID))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(empl.PasswordHash), []byte(password)); err != nil {
		log.Info("login wrong password", zap.String("employee_id", empl.ID))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.issue(*empl)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return middleware.JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != tokenTypeRefresh {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	return s.issue(*empl)
}

func (s *service) GetMe(ctx context.Context, employeeID string) (*AuthResponse, error) {
	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}
	resp := toAuthResponse(*empl)
	return &resp, nil
}

func (s *service) issue(empl employee.Employee) (string, string, AuthResponse, error) {
	role := empl.AppRole
	if role == "" {
		role = employee.AppRoleEmployee
	}

	accessToken, err := s.generateToken(empl.ID, role, tokenTypeAccess, AccessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(empl.ID, role, tokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, toAuthResponse(empl), nil
}

func (s *service) generateToken(employeeID, role, typ string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     employeeID,
		"employee_id": employeeID,
		"role":        role,
		"typ":         typ,
		"exp":         s.now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(middleware.JWTSecret())
}

func toAuthResponse(empl employee.Employee) AuthResponse {
	role := empl.AppRole
	if role == "" {
		role = employee.AppRoleEmployee
	}
	return AuthResponse{
		ID:         empl.ID,
		EmployeeID: empl.ID,
		Email:      empl.Email,
		Name:       empl.Name,
		Role:       role,
	}
}
