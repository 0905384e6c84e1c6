package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ramonsanvesti/vesti-founder-sub001/config"
	"github.com/ramonsanvesti/vesti-founder-sub001/pipeline"
	"github.com/ramonsanvesti/vesti-founder-sub001/utils"
)

type contextKey string

const userIDKey contextKey = "user_id"

// TenantMiddleware resolves the tenant for every request. A valid bearer token
// supplies the user_id claim; anything else falls back to the fixed founder
// tenant. Swapping in a real auth layer only changes this function.
func TenantMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := config.FounderUserID

		authHeader := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			if id, err := utils.UserIDFromToken(token); err == nil {
				userID = id
			}
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// GetUserIDFromContext returns the tenant id stored by TenantMiddleware.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("no user id in context")
	}
	return userID, nil
}

// TenantFromRequest builds the TenantContext threaded through every operation.
func TenantFromRequest(r *http.Request) (pipeline.TenantContext, error) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		return pipeline.TenantContext{}, err
	}
	return pipeline.TenantContext{UserID: userID}, nil
}
