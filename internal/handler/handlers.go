package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tithmeassambo-coder/QCM/internal/game"
	"github.com/tithmeassambo-coder/QCM/internal/service"
	"github.com/tithmeassambo-coder/QCM/internal/ws"
	"go.uber.org/zap"
)

type partView struct {
	game.Part
	Size int `json:"size"`
}

func RegisterHandlers(r chi.Router, svc service.PlayService, hub *ws.Hub, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	r.Get("/subjects", func(w http.ResponseWriter, r *http.Request) {
		subjects := svc.Subjects()
		log.Debug("subjects listed", zap.Int("count", len(subjects)))
		writeJSON(w, http.StatusOK, subjects)
	})

	r.Get("/subjects/{subject}/parts", func(w http.ResponseWriter, r *http.Request) {
		subject := subjectParam(r)
		parts := svc.Parts(subject)
		if len(parts) == 0 {
			log.Warn("subject has no active questions", zap.String("subject", subject))
			http.Error(w, "subject not found", http.StatusNotFound)
			return
		}
		out := make([]partView, 0, len(parts))
		for _, p := range parts {
			out = append(out, partView{Part: p, Size: p.Size()})
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Get("/ws/play/{subject}/{part}", func(w http.ResponseWriter, r *http.Request) {
		subject := subjectParam(r)
		part, err := strconv.Atoi(chi.URLParam(r, "part"))
		if err != nil || part < 0 {
			log.Warn("ws bad part", zap.String("part", chi.URLParam(r, "part")))
			http.Error(w, "bad part", http.StatusBadRequest)
			return
		}
		log.Info("ws connect attempt", zap.String("subject", subject), zap.Int("part", part))
		hub.ServeWS(w, r, subject, part)
	})
}
