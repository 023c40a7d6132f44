package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/timeconnect/attendance-backend-go/internal/domain/auth"
	"github.com/timeconnect/attendance-backend-go/internal/handler/http/response"
	"github.com/timeconnect/attendance-backend-go/internal/pkg/jwt"
)

type employeeIDCtxKey struct{}

// EmployeeIDFromContext returns the authenticated employee's ID stored by
// AuthRequired.
func EmployeeIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(employeeIDCtxKey{}).(string)
	return id, ok
}

// AuthRequired validates the bearer token beyond signature checks: it must be
// an unrevoked access token whose subject still exists.
func AuthRequired(jwtService jwt.Service, authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			employeeID, ok := claims["employee_id"].(string)
			if !ok || employeeID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			// The account may have been deleted since the token was issued.
			if _, err := authService.ValidateEmployee(r.Context(), employeeID); err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), employeeIDCtxKey{}, employeeID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
