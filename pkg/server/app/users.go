/* Copyright 2025 Plume Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package app

import (
	"errors"
	"net/mail"

	pkgErrors "github.com/pkg/errors"
	"github.com/plumeapp/plume/pkg/server/database"
	"github.com/plumeapp/plume/pkg/server/helpers"
	"github.com/plumeapp/plume/pkg/server/log"
	"github.com/plumeapp/plume/pkg/server/mailer"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TouchLastLoginAt updates the last login timestamp
func (a *App) TouchLastLoginAt(user database.User, tx *gorm.DB) error {
	t := a.Clock.Now()
	if err := tx.Model(&user).Update("last_login_at", &t).Error; err != nil {
		return pkgErrors.Wrap(err, "updating last_login_at")
	}

	return nil
}

// CreateUserParams is the parameters for registering a user
type CreateUserParams struct {
	Username string
	Email    string
	Password string
	FullName string
}

func validateCreateUserParams(p CreateUserParams) error {
	v := &ValidationError{}

	if len(p.Username) < 3 {
		v.Add("username", "username must be at least 3 characters")
	}
	if len(p.Username) > 50 {
		v.Add("username", "username must be at most 50 characters")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		v.Add("email", "invalid email")
	}
	if len(p.Password) < 6 {
		v.Add("password", "password must be at least 6 characters")
	}

	if v.HasErrors() {
		return v
	}

	return nil
}

// CreateUser registers a user
func (a *App) CreateUser(p CreateUserParams) (database.User, error) {
	if a.DisableRegistration {
		return database.User{}, ErrRegistrationDisabled
	}

	if err := validateCreateUserParams(p); err != nil {
		return database.User{}, err
	}

	tx := a.DB.Begin()

	var count int64
	if err := tx.Model(&database.User{}).Where("email = ?", p.Email).Count(&count).Error; err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "counting users by email")
	}
	if count > 0 {
		tx.Rollback()
		return database.User{}, ErrDuplicateEmail
	}

	if err := tx.Model(&database.User{}).Where("username = ?", p.Username).Count(&count).Error; err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "counting users by username")
	}
	if count > 0 {
		tx.Rollback()
		return database.User{}, ErrDuplicateUsername
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "hashing password")
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		tx.Rollback()
		return database.User{}, err
	}

	fullName := p.FullName
	if fullName == "" {
		fullName = p.Username
	}

	user := database.User{
		UUID:         uuid,
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: string(hashedPassword),
		Role:         database.RoleUser,
		FullName:     fullName,
		Active:       true,
	}
	if err := tx.Save(&user).Error; err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "saving user")
	}

	if err := a.TouchLastLoginAt(user, tx); err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "updating last login")
	}

	tx.Commit()

	a.sendWelcomeEmail(user)

	return user, nil
}

// sendWelcomeEmail delivers the welcome email. Delivery failures are logged
// and do not fail the registration.
func (a *App) sendWelcomeEmail(user database.User) {
	data := mailer.WelcomeTmplData{
		Username:     user.Username,
		AccountEmail: user.Email,
	}
	if err := a.EmailBackend.SendEmail(mailer.EmailTypeWelcome, "noreply@getplume.xyz", []string{user.Email}, data); err != nil {
		log.ErrorWrap(err, "sending welcome email")
	}
}

// Authenticate authenticates a user by email and password
func (a *App) Authenticate(email, password string) (*database.User, error) {
	var user database.User
	err := a.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLoginInvalid
	} else if err != nil {
		return nil, pkgErrors.Wrap(err, "finding user")
	}

	if !user.Active {
		return nil, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrLoginInvalid
	}

	return &user, nil
}

// SignIn marks a successful login for the user
func (a *App) SignIn(user *database.User) error {
	if err := a.TouchLastLoginAt(*user, a.DB); err != nil {
		return pkgErrors.Wrap(err, "touching login timestamp")
	}

	return nil
}

// GetUserByUUID returns the user with the given uuid
func (a *App) GetUserByUUID(uuid string) (database.User, error) {
	var user database.User
	err := a.DB.Where("uuid = ?", uuid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.User{}, ErrNotFound
	} else if err != nil {
		return database.User{}, pkgErrors.Wrap(err, "finding user")
	}

	return user, nil
}

// GetUserByEmail returns the user with the given email
func (a *App) GetUserByEmail(email string) (database.User, error) {
	var user database.User
	err := a.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.User{}, ErrNotFound
	} else if err != nil {
		return database.User{}, pkgErrors.Wrap(err, "finding user")
	}

	return user, nil
}

// SetUserRole changes the role of the given user
func (a *App) SetUserRole(user database.User, role string) error {
	if role != database.RoleUser && role != database.RoleAdmin {
		return pkgErrors.Errorf("invalid role %q", role)
	}

	if err := a.DB.Model(&user).Update("role", role).Error; err != nil {
		return pkgErrors.Wrap(err, "updating role")
	}

	return nil
}

// UpdateUserPassword hashes and saves a new password for the given user
func (a *App) UpdateUserPassword(user database.User, password string) error {
	if len(password) < 6 {
		v := &ValidationError{}
		v.Add("password", "password must be at least 6 characters")
		return v
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return pkgErrors.Wrap(err, "hashing password")
	}

	if err := a.DB.Model(&user).Update("password_hash", string(hashed)).Error; err != nil {
		return pkgErrors.Wrap(err, "updating password")
	}

	return nil
}

// UpdateProfileParams is the parameters for updating a user profile
type UpdateProfileParams struct {
	FullName  *string
	Bio       *string
	AvatarURL *string
}

// UpdateProfile updates the profile fields of the given user
func (a *App) UpdateProfile(user database.User, p UpdateProfileParams) (database.User, error) {
	if p.FullName != nil {
		user.FullName = *p.FullName
	}
	if p.Bio != nil {
		user.Bio = *p.Bio
	}
	if p.AvatarURL != nil {
		user.AvatarURL = *p.AvatarURL
	}

	if err := a.DB.Save(&user).Error; err != nil {
		return user, pkgErrors.Wrap(err, "saving user")
	}

	return user, nil
}
