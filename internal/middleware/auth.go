package middleware

import (
	"context"
	"net/http"
	"strconv"

	"nightlife-ticketing-platform/internal/models"

	"github.com/gorilla/sessions"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// UserLoader resolves a user id to a user
type UserLoader interface {
	GetByID(id int) (*models.User, error)
}

// AuthMiddleware loads the current user from the session into the request
// context. It only resolves identity; registration, login and password
// flows live outside this service.
type AuthMiddleware struct {
	users UserLoader
	store sessions.Store
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(users UserLoader, store sessions.Store) *AuthMiddleware {
	return &AuthMiddleware{
		users: users,
		store: store,
	}
}

// LoadUser middleware loads the current user from session and adds to context
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, "session")
		if err != nil {
			// Continue without user if session is invalid
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := session.Values["user_id"].(int)
		if !ok || userID == 0 {
			// Session storage might convert types
			if userIDValue, exists := session.Values["user_id"]; exists {
				switch v := userIDValue.(type) {
				case float64:
					userID = int(v)
					ok = userID != 0
				case string:
					if parsedID, err := strconv.Atoi(v); err == nil {
						userID = parsedID
						ok = userID != 0
					}
				}
			}

			if !ok || userID == 0 {
				// No valid user in session
				next.ServeHTTP(w, r)
				return
			}
		}

		user, err := m.users.GetByID(userID)
		if err != nil {
			// Stale session pointing at a missing user, clear it
			session.Values["user_id"] = nil
			session.Options.MaxAge = -1
			session.Save(r, w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser middleware rejects requests without an authenticated user
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext retrieves the current user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// SetUserContext sets the user in the context (for testing)
func SetUserContext(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}
