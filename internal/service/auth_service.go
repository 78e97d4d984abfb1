package service

import (
	"errors"

	"roundvest/config"
	"roundvest/internal/auth"
	"roundvest/internal/domain"
	"roundvest/internal/models"
	"roundvest/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	cfg      *config.Config
	db       *gorm.DB
	users    *repository.UserRepository
	accounts *repository.AccountRepository
}

func NewAuthService(cfg *config.Config, db *gorm.DB, users *repository.UserRepository, accounts *repository.AccountRepository) *AuthService {
	return &AuthService{cfg: cfg, db: db, users: users, accounts: accounts}
}

// Register creates the user and their account in one transaction and returns
// a token scoped to that account.
func (s *AuthService) Register(email, password, riskProfile string) (*models.User, string, error) {
	if riskProfile == "" {
		riskProfile = domain.RiskMedium
	}
	if !domain.ValidRiskProfile(riskProfile) {
		return nil, "", domain.ErrInvalidAmount
	}
	_, err := s.users.GetByEmail(email)
	if err == nil {
		return nil, "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &models.User{Email: email, PasswordHash: string(hash), RiskProfile: riskProfile}
	var account models.Account
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.users.Create(tx, u); err != nil {
			return err
		}
		account = models.Account{UserID: u.ID}
		return s.accounts.Create(tx, &account)
	})
	if err != nil {
		return nil, "", err
	}
	token, err := auth.GenerateToken(&s.cfg.JWT, u.ID, account.ID, u.Email)
	if err != nil {
		return u, "", err
	}
	return u, token, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCreds
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCreds
	}
	account, err := s.accounts.GetByUserID(u.ID)
	if err != nil {
		return nil, "", err
	}
	token, err := auth.GenerateToken(&s.cfg.JWT, u.ID, account.ID, u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
