package services

import (
	"context"
	"errors"
	"strings"

	"hotel-desk/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLen = 6

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func checkUser(u *models.User) error {
	u.Username = strings.TrimSpace(u.Username)
	u.FullName = strings.TrimSpace(u.FullName)
	if err := validateStruct(u); err != nil {
		return err
	}
	if !u.Role.Valid() {
		return validationf("unknown role %q", u.Role)
	}
	return nil
}

func hashPassword(plain string) (string, error) {
	if len(plain) < minPasswordLen {
		return "", validationf("password must be at least %d characters", minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", validationf("password must be at most 72 bytes")
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Create stores the user with a bcrypt hash of plainPassword.
func (s *UserService) Create(ctx context.Context, u *models.User, plainPassword string) error {
	if err := checkUser(u); err != nil {
		return err
	}
	hash, err := hashPassword(plainPassword)
	if err != nil {
		return err
	}
	u.ID = 0
	u.PasswordHash = hash

	db := s.DB.WithContext(ctx)
	var n int64
	if err := db.Model(&models.User{}).Where("username = ?", u.Username).Count(&n).Error; err != nil {
		return dbError("check username", err)
	}
	if n > 0 {
		return &DomainError{Kind: ErrConflict, Reason: "username " + u.Username + " is already taken"}
	}
	return dbError("create user", db.Create(u).Error)
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, dbError("load user", err)
	}
	return &u, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.DB.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&u).Error
	if err != nil {
		return nil, dbError("load user", err)
	}
	return &u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).Order("username ASC").Find(&users).Error
	return users, dbError("list users", err)
}

// Update changes username, full name and role. The password hash is left alone.
func (s *UserService) Update(ctx context.Context, id uint, u *models.User) (*models.User, error) {
	if err := checkUser(u); err != nil {
		return nil, err
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	var n int64
	if err := db.Model(&models.User{}).Where("username = ? AND id <> ?", u.Username, id).Count(&n).Error; err != nil {
		return nil, dbError("check username", err)
	}
	if n > 0 {
		return nil, &DomainError{Kind: ErrConflict, Reason: "username " + u.Username + " is already taken"}
	}
	err := db.Model(&models.User{ID: id}).
		Select("username", "full_name", "role").
		Updates(u).Error
	if err != nil {
		return nil, dbError("update user", err)
	}
	return s.GetByID(ctx, id)
}

func (s *UserService) UpdatePassword(ctx context.Context, id uint, plainPassword string) error {
	hash, err := hashPassword(plainPassword)
	if err != nil {
		return err
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return dbError("update password", s.DB.WithContext(ctx).
		Model(&models.User{ID: id}).
		Update("password_hash", hash).Error)
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return dbError("delete user", s.DB.WithContext(ctx).Delete(&models.User{}, id).Error)
}

// VerifyPassword returns the user when the password matches its hash and
// ErrInvalidCredentials otherwise, without telling which part was wrong.
func (s *UserService) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
