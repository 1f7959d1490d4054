package http

import (
	"net/http"

	"github.com/govern-lab/aegis/pkg/domain/model/auth"
)

const (
	cookieTokenID     = "token_id"
	cookieTokenSecret = "token_secret"
)

// authMeHandler returns the identity the middleware resolved for the request
func authMeHandler() http.HandlerFunc {
	type response struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromContext(r.Context())
		if token == nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, response{
			Sub:   token.Sub.String(),
			Email: token.Email,
			Name:  token.Name,
		})
	}
}

// authLogoutHandler invalidates the session and expires the cookie pair
func authLogoutHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if authUC != nil {
			if cookie, err := r.Cookie(cookieTokenID); err == nil {
				if err := authUC.Logout(r.Context(), auth.TokenID(cookie.Value)); err != nil {
					http.Error(w, "Failed to logout", http.StatusInternalServerError)
					return
				}
			}
		}

		expireCookie(w, cookieTokenID)
		expireCookie(w, cookieTokenSecret)
		w.WriteHeader(http.StatusNoContent)
	}
}

func expireCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
