package services

import (
	"context"
	"fmt"
	"time"
)

const orderNumberPrefix = "ORD-"

// GenerateOrderNumber formats now as ORD-YYYYMMDDHHMMSS.
func GenerateOrderNumber(now time.Time) string {
	return orderNumberPrefix + now.Format("20060102150405")
}

// NextOrderNumber returns GenerateOrderNumber(now), or the first free
// "-2", "-3", ... variant of it when that number is already taken.
func NextOrderNumber(ctx context.Context, exists func(context.Context, string) (bool, error), now time.Time) (string, error) {
	base := GenerateOrderNumber(now)
	candidate := base
	for n := 2; ; n++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check order number %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
