package handler

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Gate guards the authoring routes with one shared passphrase. Only its
// bcrypt hash is kept; every request presents the passphrase again.
type Gate struct {
	hash []byte
	log  *zap.Logger
}

// NewGate hashes passphrase with cost (bcrypt.DefaultCost when cost <= 0).
// An empty passphrase yields a gate that refuses every request.
func NewGate(passphrase string, cost int, log *zap.Logger) (*Gate, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Gate{log: log}
	if passphrase == "" {
		return g, nil
	}
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin passphrase: %w", err)
	}
	g.hash = hash
	return g, nil
}

func (g *Gate) Check(passphrase string) bool {
	if len(g.hash) == 0 || passphrase == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.hash, []byte(passphrase)) == nil
}

func (g *Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(g.hash) == 0 {
			http.Error(w, "admin passphrase not configured", http.StatusInternalServerError)
			return
		}
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || !g.Check(token) {
			g.log.Warn("admin request rejected", zap.String("path", r.URL.Path), zap.String("remote", r.RemoteAddr))
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
