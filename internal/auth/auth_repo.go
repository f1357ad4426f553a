package auth

import (
	"time"

	"gorm.io/gorm"

	"github.com/teamkick/teamkick/internal/user"
)

// AuthRepository defines the data operations backing authentication.
type AuthRepository interface {
	CreateUser(u *user.User) error
	GetUserByID(id uint) (*user.User, error)
	GetUserByUsername(username string) (*user.User, error)
	UpdateUser(u *user.User) error

	SaveRefreshToken(t *user.RefreshToken) error
	GetRefreshToken(tokenString string) (*user.RefreshToken, error)
	RevokeRefreshToken(tokenString string) error
	RevokeUserRefreshTokens(userID uint) error
}

type authRepository struct {
	db *gorm.DB
}

// NewAuthRepository creates a new instance of AuthRepository
func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *authRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) GetUserByUsername(username string) (*user.User, error) {
	var u user.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) UpdateUser(u *user.User) error {
	return r.db.Save(u).Error
}

func (r *authRepository) SaveRefreshToken(t *user.RefreshToken) error {
	return r.db.Create(t).Error
}

func (r *authRepository) GetRefreshToken(tokenString string) (*user.RefreshToken, error) {
	var t user.RefreshToken
	if err := r.db.Where("token = ? AND revoked = ? AND expires_at > ?", tokenString, false, time.Now()).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *authRepository) RevokeRefreshToken(tokenString string) error {
	return r.db.Model(&user.RefreshToken{}).Where("token = ?", tokenString).Update("revoked", true).Error
}

func (r *authRepository) RevokeUserRefreshTokens(userID uint) error {
	return r.db.Model(&user.RefreshToken{}).Where("user_id = ?", userID).Update("revoked", true).Error
}
