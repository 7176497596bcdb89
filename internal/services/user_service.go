package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dix-marketplace/backend/internal/models"
	"github.com/dix-marketplace/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type UserService struct {
	store      *repositories.DocumentStore
	bcryptCost int
	log        *zap.Logger
}

func NewUserService(store *repositories.DocumentStore, bcryptCost int, log *zap.Logger) *UserService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{store: store, bcryptCost: bcryptCost, log: log}
}

type storedUser struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

func (s *UserService) Register(ctx context.Context, email, password, phone string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.store.QueryRecords(ctx, CollectionUsers, map[string]any{"email": email}, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		Phone:        phone,
		Role:         models.RoleModel,
		CreatedAt:    time.Now().UTC(),
		LastActiveAt: time.Now().UTC(),
	}
	record := storedUser{User: user, PasswordHash: string(hash)}

	if err := s.store.PutRecord(ctx, CollectionUsers, user.ID.String(), record); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return &user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	records, err := s.store.QueryRecords(ctx, CollectionUsers, map[string]any{"email": email}, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrInvalidCredentials
	}

	var stored storedUser
	if err := unmarshalRecord(records[0], &stored); err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	_ = s.store.UpdateRecord(ctx, CollectionUsers, stored.ID.String(), map[string]any{
		"last_active_at": time.Now().UTC(),
	})

	user := stored.User
	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var stored storedUser
	if err := s.store.GetRecord(ctx, CollectionUsers, id.String(), &stored); err != nil {
		return nil, err
	}
	user := stored.User
	return &user, nil
}
