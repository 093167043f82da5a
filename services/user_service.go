package services

import (
	"context"
	"errors"
	"fmt"

	"dibs-api/domain"
	"dibs-api/dto"
	"dibs-api/repositories"
	"dibs-api/utils"
)

var (
	// ErrInvalidCredentials es el único error de login; no revela qué campo falló
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrUsernameTaken se devuelve al registrar un username existente
	ErrUsernameTaken = errors.New("username already taken")
)

// UserService define la interfaz del servicio de usuarios y autenticación
type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (string, error)
	RefreshToken(claims *utils.Claims) (string, error)
}

type userService struct {
	repo repositories.UserRepository
	jwt  *utils.JWTManager
}

// NewUserService crea una nueva instancia del servicio
func NewUserService(repo repositories.UserRepository, jwt *utils.JWTManager) UserService {
	return &userService{repo: repo, jwt: jwt}
}

// CreateUser hashea la contraseña y guarda el usuario.
// La unicidad del username la garantiza el índice del store.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &domain.User{
		Username:  req.Username,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// Login es la estrategia local: verifica credenciales y emite el token
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (string, error) {
	if req.Username == "" || req.Password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(utils.UserClaims{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}

// RefreshToken emite un token nuevo a partir de claims ya verificados
func (s *userService) RefreshToken(claims *utils.Claims) (string, error) {
	if claims == nil {
		return "", ErrInvalidCredentials
	}
	return s.jwt.GenerateToken(claims.User)
}
