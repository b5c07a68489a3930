package middleware

import (
	"context"
	"time"
)

const detachedTimeout = 2 * time.Second

func contextWithoutDeadline(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(parent), detachedTimeout)
}
