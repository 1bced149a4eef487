package service

import (
	"errors"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Masai2005/zero-app/internal/config"
	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/repository"
	"github.com/Masai2005/zero-app/internal/storage"
)

type AuthService interface {
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(refreshToken string) (*dto.LoginResponse, error)
	CreateUser(req dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers() ([]dto.UserResponse, error)
	UpdateUser(username string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(username string) error
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(req.Username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	return s.tokenResponse(req.Username, user)
}

func (s *authService) Refresh(refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("malformed token claims")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil, errors.New("malformed token")
	}
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, errors.New("user no longer exists")
	}
	return s.tokenResponse(username, user)
}

func (s *authService) tokenResponse(username string, user *model.User) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(username, user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(username, user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User: dto.UserResponse{
			Username: username,
			Name:     user.Name,
			Type:     user.Type,
		},
	}, nil
}

func (s *authService) CreateUser(req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.FindByUsername(req.Username); err == nil {
		return nil, &storage.Error{Kind: storage.KindValidation, Op: "create_user",
			File: storage.UsersFile, Msg: "username already taken: " + req.Username}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := model.User{
		PasswordHash: string(hash),
		Type:         req.Type,
		Name:         req.Name,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Upsert(req.Username, user); err != nil {
		return nil, err
	}
	return &dto.UserResponse{
		Username:  req.Username,
		Name:      user.Name,
		Type:      user.Type,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *authService) ListUsers() ([]dto.UserResponse, error) {
	users, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for username, u := range users {
		resp = append(resp, dto.UserResponse{
			Username:  username,
			Name:      u.Name,
			Type:      u.Type,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].Username < resp[j].Username })
	return resp, nil
}

func (s *authService) UpdateUser(username string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Type != "" {
		user.Type = req.Type
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Upsert(username, *user); err != nil {
		return nil, err
	}
	return &dto.UserResponse{
		Username:  username,
		Name:      user.Name,
		Type:      user.Type,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}, nil
}

// DeleteUser removes an account. The last admin cannot be deleted.
func (s *authService) DeleteUser(username string) error {
	users, err := s.repo.All()
	if err != nil {
		return err
	}
	user, ok := users[username]
	if !ok {
		return &storage.Error{Kind: storage.KindValidation, Op: "delete_user",
			File: storage.UsersFile, Msg: "user not found: " + username}
	}
	if user.Type == model.UserTypeAdmin {
		admins := 0
		for _, u := range users {
			if u.Type == model.UserTypeAdmin {
				admins++
			}
		}
		if admins <= 1 {
			return &storage.Error{Kind: storage.KindValidation, Op: "delete_user",
				File: storage.UsersFile, Msg: "cannot delete the last admin account"}
		}
	}
	return s.repo.Delete(username)
}

func (s *authService) generateToken(username string, user *model.User, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"name":     user.Name,
		"role":     user.Type,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
