package user

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/bps3210/simkak/internal/config"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("Username atau password salah")

type Service interface {
	Login(ctx context.Context, username, password string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	GetCurrentUser(ctx context.Context) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
}

type account struct {
	user     User
	password string
}

// ServiceImpl serves users from the static credential directory in configuration.
type ServiceImpl struct {
	accounts []account
}

func NewUserService(users []config.User) *ServiceImpl {
	accounts := make([]account, 0, len(users))
	for _, u := range users {
		accounts = append(accounts, account{
			user:     User{Username: u.Username, Name: u.Name, Role: u.Role},
			password: u.Password,
		})
	}
	return &ServiceImpl{accounts: accounts}
}

func (s *ServiceImpl) Login(ctx context.Context, username, password string) (User, error) {
	for _, a := range s.accounts {
		if a.user.Username != username {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(a.password), []byte(password)) == 1 {
			log.Debugf("user %s logged in", username)
			return a.user, nil
		}
		break
	}
	log.Infof("failed login attempt for %q", username)
	return User{}, ErrInvalidCredentials
}

func (s *ServiceImpl) GetUserByUsername(ctx context.Context, username string) (User, error) {
	for _, a := range s.accounts {
		if a.user.Username == username {
			return a.user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	u, err := CurrentUser(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u, nil
}

func (s *ServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	users := make([]User, 0, len(s.accounts))
	for _, a := range s.accounts {
		users = append(users, a.user)
	}
	return users, nil
}
