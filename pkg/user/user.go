package user

import (
	"context"
	"errors"
)

// User is an account from the static credential directory. Role names the work unit
// ("IPDS", "TU", ...) and is copied onto every proposal the user creates.
type User struct {
	Username string
	Name     string
	Role     string
}

type ctxKey struct{}

var ErrNoUser = errors.New("no user in context")

// CurrentUser returns the user the request was authenticated as.
func CurrentUser(ctx context.Context) (User, error) {
	u, ok := ctx.Value(ctxKey{}).(User)
	if !ok {
		return User{}, ErrNoUser
	}
	return u, nil
}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}
