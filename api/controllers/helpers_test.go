package controllers

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nahidhasan/messmate-backend/api/middleware"
	"github.com/nahidhasan/messmate-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

// authedRequest seeds the context the way the auth middleware would.
func authedRequest(t *testing.T, req *http.Request, userID uuid.UUID, role, houseCode string) *http.Request {
	t.Helper()
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithRole(ctx, role)
	ctx = middleware.WithHouseCode(ctx, houseCode)
	return req.WithContext(ctx)
}
