// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/buyx/backend/internal/config"
	"github.com/buyx/backend/internal/models"
)

func newTestAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
	return NewAuthService(db, cfg, nil)
}

func TestLoginRecordsLastLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	user := &models.User{
		Username: "ravi",
		Email:    "ravi@example.com",
		Phone:    "9876543210",
		UserType: models.UserTypeCustomer,
	}
	require.NoError(t, user.SetPassword("Str0ngPass!"))
	require.NoError(t, db.Create(user).Error)

	resp, err := svc.Login(&LoginRequest{EmailOrPhone: "ravi@example.com", Password: "Str0ngPass!"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLoginRejectsDistributor(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	user := &models.User{
		Username: "mobiles-r-us",
		Email:    "sales@mobilesrus.in",
		Phone:    "9876500001",
		UserType: models.UserTypeDistributor,
	}
	require.NoError(t, user.SetPassword("Str0ngPass!"))
	require.NoError(t, db.Create(user).Error)

	_, err := svc.Login(&LoginRequest{EmailOrPhone: "sales@mobilesrus.in", Password: "Str0ngPass!"})
	assert.Error(t, err)
}
