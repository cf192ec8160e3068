package users_repositories

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	users_models "taskhive/internal/features/users/models"
	"taskhive/internal/storage"

	"gorm.io/gorm"
)

type SecretKeyRepository struct{}

// GetSecretKey returns the token signing secret, generating and
// persisting one on first use.
func (r *SecretKeyRepository) GetSecretKey() (string, error) {
	var secretKey users_models.SecretKey

	err := storage.GetDb().First(&secretKey).Error
	if err == nil {
		return secretKey.Secret, nil
	}

	if err != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("failed to read secret key: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}

	secretKey = users_models.SecretKey{Secret: hex.EncodeToString(buf)}
	if err := storage.GetDb().Create(&secretKey).Error; err != nil {
		return "", fmt.Errorf("failed to store secret key: %w", err)
	}

	return secretKey.Secret, nil
}
