package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nahidhasan/messmate-backend/api/middleware"
	pkgerrors "github.com/nahidhasan/messmate-backend/pkg/errors"
)

// actorID resolves the authenticated user id seeded by the auth middleware.
func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing identity")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid identity")
	}
	return id, nil
}

// actorHouseCode resolves the caller's house code from the token claims.
func actorHouseCode(r *http.Request) (string, error) {
	code := middleware.HouseCodeFromContext(r.Context())
	if code == "" {
		return "", pkgerrors.New(pkgerrors.CodeForbidden, "house context missing")
	}
	return code, nil
}
