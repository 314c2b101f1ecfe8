// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"os"
	"time"

	"photopro-be/internal/dto"
	"photopro-be/internal/entity"
	"photopro-be/internal/pkg/logger"
	"photopro-be/internal/pkg/mailer"
	"photopro-be/internal/repository/specification"
	"photopro-be/internal/repository/unitofwork"

	"photopro-be/pkg/events"
	pktNats "photopro-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// Postgres unique_violation, raised when a racing registration slips
// past the duplicate lookups and hits the unique indexes.
const pgUniqueViolation = "23505"

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, eventPublisher *pktNats.Publisher, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func generateToken(userId uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:              user.Id,
		Username:        user.Username,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       user.CreatedAt,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Reject duplicate email or username
	existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if existing != nil {
		return nil, errors.New("email already registered")
	}
	existing, _ = uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if existing != nil {
		return nil, errors.New("username already taken")
	}

	// 2. Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// 3. Create User Entity
	user := &entity.User{
		Id:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, errors.New("email already registered")
		}
		return nil, err
	}

	// 4. Issue session token
	token, err := generateToken(user.Id)
	if err != nil {
		return nil, err
	}

	// Fire-and-forget side effects, the registration already committed
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewUserRegistered(user.Id.String(), user.Email, user.Username)); err != nil {
			s.logger.Warn("AuthService", "Failed to publish USER_REGISTERED", map[string]interface{}{"error": err.Error()})
		}
	}

	go func() {
		if emailErr := s.emailService.SendWelcome(user.Email, user.Username); emailErr != nil {
			s.logger.Error("AuthService", "Failed to send welcome email", map[string]interface{}{
				"email": user.Email,
				"error": emailErr.Error(),
			})
		}
	}()

	return &dto.AuthResponse{User: toUserResponse(user), Token: token}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Same message as a wrong password so the endpoint does not leak
		// which accounts exist.
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, err := generateToken(user.Id)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{User: toUserResponse(user), Token: token}, nil
}
