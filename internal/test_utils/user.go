package test_utils

import (
	"context"

	"github.com/bps3210/simkak/pkg/user"
)

// TestUser is the account tests act as unless they need something specific.
var TestUser = user.User{
	Username: "PPK3210",
	Name:     "Andries Kurniawan",
	Role:     "PPK",
}

func ContextWithTestUser(ctx context.Context) context.Context {
	return user.WithUser(ctx, TestUser)
}
