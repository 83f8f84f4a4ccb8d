package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/tithmeassambo-coder/QCM/internal/bulk"
	"github.com/tithmeassambo-coder/QCM/internal/service"
	"github.com/tithmeassambo-coder/QCM/internal/storage"
)

const maxBodyBytes = 10 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrNotConfirmed),
		errors.Is(err, bulk.ErrParse),
		errors.Is(err, bulk.ErrEmptyInput),
		errors.Is(err, storage.ErrDecode),
		errors.Is(err, storage.ErrIndexOutOfRange):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// subjectParam decodes the subject only when chi matched on the escaped path.
func subjectParam(r *http.Request) string {
	v := chi.URLParam(r, "subject")
	if r.URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}
