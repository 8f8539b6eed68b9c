package houses

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	pkgerrors "github.com/nahidhasan/messmate-backend/pkg/errors"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type codeChecker interface {
	CodeExists(ctx context.Context, code string) (bool, error)
}

// randomCode draws an uppercase alphanumeric join code of the given length.
func randomCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", length)
	}
	buf := make([]byte, length)
	max := big.NewInt(int64(len(codeCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("drawing code char: %w", err)
		}
		buf[i] = codeCharset[n.Int64()]
	}
	return string(buf), nil
}

// GenerateUniqueCode draws join codes until one is free, bounded by maxAttempts.
func GenerateUniqueCode(ctx context.Context, checker codeChecker, length, maxAttempts int) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := randomCode(length)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate house code")
		}
		taken, err := checker.CodeExists(ctx, code)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check house code")
		}
		if !taken {
			return code, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeInternal, "exhausted house code attempts")
}
