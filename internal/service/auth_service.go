package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/events"
	pktNats "notekeeper-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// DefaultCategory is one of the fixed categories every new account starts
// with. The same set is the canonical one for the seeding CLI.
type DefaultCategory struct {
	Name  string
	Color string
}

var DefaultCategories = []DefaultCategory{
	{Name: "Random Thoughts", Color: "#EF9C66"},
	{Name: "Work", Color: "#FCDC94"},
	{Name: "Personal", Color: "#C8CFA0"},
	{Name: "Ideas", Color: "#78ABA8"},
}

// LoginLimiter throttles login attempts; implementations decide the window.
type LoginLimiter interface {
	Allow(ctx context.Context, email, ip string) bool
}

// TokenRevoker blacklists an access token for the remainder of its life.
type TokenRevoker interface {
	Revoke(token string, ttl time.Duration)
}

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress string) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, accessToken string, req *dto.LogoutRequest) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	allocator      *SlugAllocator
	limiter        LoginLimiter
	revoker        TokenRevoker
	publisher      IPublisherService
	eventPublisher *pktNats.Publisher
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	allocator *SlugAllocator,
	limiter LoginLimiter,
	revoker TokenRevoker,
	publisher IPublisherService,
	eventPublisher *pktNats.Publisher,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		allocator:      allocator,
		limiter:        limiter,
		revoker:        revoker,
		publisher:      publisher,
		eventPublisher: eventPublisher,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ValidationField("email", "user with this email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// One transaction: a registered user must never exist without their
	// default categories or an issued refresh token.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	for _, dc := range DefaultCategories {
		slugValue, err := s.allocator.Allocate(ctx, uow.CategoryRepository(), user.Id, dc.Name, nil)
		if err != nil {
			return nil, err
		}
		category := &entity.Category{
			Id:        uuid.New(),
			Name:      dc.Name,
			Slug:      slugValue,
			Color:     dc.Color,
			UserId:    user.Id,
			CreatedAt: time.Now(),
		}
		if err := uow.CategoryRepository().Create(ctx, category); err != nil {
			return nil, err
		}
	}

	tokens, err := s.issueTokenPair(ctx, uow, user.Id)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "USER_REGISTERED", map[string]interface{}{
		"user_id": user.Id,
		"email":   user.Email,
	})
	publishActivity(ctx, s.publisher, user.Id, ActionUserRegistered, "user", user.Id)

	return &dto.AuthResponse{
		User:   dto.AuthUser{Id: user.Id, Email: user.Email},
		Tokens: tokens,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress string) (*dto.AuthResponse, error) {
	if s.limiter != nil && !s.limiter.Allow(ctx, req.Email, ipAddress) {
		return nil, apperror.Auth()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Unknown email, wrong password and deactivated account all take the
	// same exit so accounts cannot be enumerated.
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		return nil, apperror.Auth()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Auth()
	}
	if !user.IsActive {
		return nil, apperror.Auth()
	}

	tokens, err := s.issueTokenPair(ctx, uow, user.Id)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:   dto.AuthUser{Id: user.Id, Email: user.Email},
		Tokens: tokens,
	}, nil
}

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	token, err := uow.UserRepository().FindRefreshToken(ctx, specification.ByTokenHash{Hash: hashToken(req.Refresh)})
	if err != nil {
		return nil, err
	}
	if token == nil || token.Revoked || time.Now().After(token.ExpiresAt) {
		return nil, apperror.Auth()
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: token.UserId})
	if err != nil || user == nil || !user.IsActive {
		return nil, apperror.Auth()
	}

	// Rotate: the presented token is single-use.
	if err := uow.UserRepository().RevokeRefreshToken(ctx, token.TokenHash); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokenPair(ctx, uow, user.Id)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:   dto.AuthUser{Id: user.Id, Email: user.Email},
		Tokens: tokens,
	}, nil
}

func (s *authService) Logout(ctx context.Context, accessToken string, req *dto.LogoutRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.Refresh != "" {
		if err := uow.UserRepository().RevokeRefreshToken(ctx, hashToken(req.Refresh)); err != nil {
			return err
		}
	}

	if s.revoker != nil && accessToken != "" {
		if ttl := remainingTokenLife(accessToken); ttl > 0 {
			s.revoker.Revoke(accessToken, ttl)
		}
	}

	return nil
}

func (s *authService) issueTokenPair(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (dto.TokenPair, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(serverutils.JwtSecret())
	if err != nil {
		return dto.TokenPair{}, err
	}

	rawRefresh := uuid.New().String()
	refreshEntity := &entity.RefreshToken{
		Id:        uuid.New(),
		UserId:    userId,
		TokenHash: hashToken(rawRefresh),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().CreateRefreshToken(ctx, refreshEntity); err != nil {
		return dto.TokenPair{}, err
	}

	return dto.TokenPair{Access: access, Refresh: rawRefresh}, nil
}

func (s *authService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// remainingTokenLife reads exp from an already-verified token; the blacklist
// only needs to outlive the token itself.
func remainingTokenLife(tokenStr string) time.Duration {
	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
	if err != nil {
		return 0
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}
	return time.Until(exp.Time)
}
