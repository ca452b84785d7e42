package middlewares

import (
	"net/http"

	"github.com/rs/zerolog/hlog"

	"crowdcube/internal/utils"
)

// AuthMiddleware admits requests carrying a valid session cookie and puts
// the token claims on the request context. Everything else gets a 401
// before the wrapped handler runs.
func AuthMiddleware(jwt *utils.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(utils.SessionCookieName)
			if err != nil || cookie.Value == "" {
				hlog.FromRequest(r).Debug().Msg("Missing session cookie")
				utils.SendJSONError(w, "Unauthorized Access", http.StatusUnauthorized)
				return
			}

			claims, err := jwt.ParseJWT(cookie.Value)
			if err != nil {
				hlog.FromRequest(r).Warn().Err(err).Msg("Rejected session token")
				utils.SendJSONError(w, "Unauthorized Access", http.StatusUnauthorized)
				return
			}

			ctx := utils.ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
