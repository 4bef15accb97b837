package server

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// requireToken validates the short-lived bearer token clients sign with the
// shared "id:secret" auth key. Installed only when an auth key is configured.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(auth, "Bearer ")
		if !found {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		keyParts := strings.Split(s.cfg.APIAuthKey, ":")
		if len(keyParts) != 2 {
			writeError(w, http.StatusInternalServerError, "server auth key misconfigured")
			return
		}
		secret, err := hex.DecodeString(keyParts[1])
		if err != nil {
			writeError(w, http.StatusInternalServerError, "server auth key misconfigured")
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			if kid, _ := t.Header["kid"].(string); kid != keyParts[0] {
				return nil, fmt.Errorf("unknown key id")
			}
			return secret, nil
		}, jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
