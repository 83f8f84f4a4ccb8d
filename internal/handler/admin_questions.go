package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tithmeassambo-coder/QCM/internal/service"
	"go.uber.org/zap"
)

type setActiveReq struct {
	IsActive *bool `json:"isActive"`
}

type importTextReq struct {
	Text    string `json:"text"`
	Subject string `json:"subject"`
}

const sheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func RegisterAdminHandlers(r chi.Router, admin service.AdminService, gate *Gate, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	r.Route("/admin", func(r chi.Router) {
		r.Use(gate.Require)

		r.Post("/verify", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})

		r.Get("/questions", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			rows := admin.ListQuestions(q.Get("q"), q.Get("subject"))
			log.Debug("questions listed", zap.Int("count", len(rows)))
			writeJSON(w, http.StatusOK, rows)
		})

		r.Post("/questions", func(w http.ResponseWriter, r *http.Request) {
			var in service.QuestionInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				log.Warn("admin create question bad json", zap.Error(err))
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
			q, err := admin.AddQuestion(in)
			if err != nil {
				log.Warn("admin create question failed", zap.Error(err))
				http.Error(w, err.Error(), statusFor(err))
				return
			}
			writeJSON(w, http.StatusCreated, q)
		})

		r.Put("/questions/{index}", func(w http.ResponseWriter, r *http.Request) {
			index, ok := indexParam(w, r, log)
			if !ok {
				return
			}
			var in service.QuestionInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				log.Warn("admin update question bad json", zap.Int("index", index), zap.Error(err))
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
			q, err := admin.UpdateQuestion(index, in)
			if err != nil {
				log.Warn("admin update question failed", zap.Int("index", index), zap.Error(err))
				http.Error(w, err.Error(), statusFor(err))
				return
			}
			writeJSON(w, http.StatusOK, q)
		})

		r.Delete("/questions/{index}", func(w http.ResponseWriter, r *http.Request) {
			index, ok := indexParam(w, r, log)
			if !ok {
				return
			}
			if err := admin.RemoveQuestion(index); err != nil {
				http.Error(w, err.Error(), statusFor(err))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Get("/subjects", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, admin.Subjects())
		})

		r.Patch("/subjects/{subject}", func(w http.ResponseWriter, r *http.Request) {
			var req setActiveReq
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
			n := admin.ToggleSubject(subjectParam(r), *req.IsActive)
			writeJSON(w, http.StatusOK, map[string]int{"updated": n})
		})

		r.Delete("/subjects/{subject}", func(w http.ResponseWriter, r *http.Request) {
			confirmed := r.URL.Query().Get("confirm") == "1"
			n, err := admin.RemoveSubject(subjectParam(r), confirmed)
			if err != nil {
				http.Error(w, err.Error(), statusFor(err))
				return
			}
			writeJSON(w, http.StatusOK, map[string]int{"removed": n})
		})

		r.Post("/import/text", func(w http.ResponseWriter, r *http.Request) {
			var req importTextReq
			if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
			n, err := admin.BulkImport(req.Text, req.Subject)
			respondImport(w, log, "text", n, err)
		})

		r.Post("/import/file", func(w http.ResponseWriter, r *http.Request) {
			n, err := admin.ImportFile(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			respondImport(w, log, "file", n, err)
		})

		r.Post("/import/sheet", func(w http.ResponseWriter, r *http.Request) {
			n, err := admin.ImportSheet(http.MaxBytesReader(w, r.Body, maxBodyBytes), r.URL.Query().Get("subject"))
			respondImport(w, log, "sheet", n, err)
		})

		r.Get("/export/sheet", func(w http.ResponseWriter, r *http.Request) {
			var buf bytes.Buffer
			if err := admin.ExportSheet(&buf); err != nil {
				log.Error("sheet export failed", zap.Error(err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", sheetContentType)
			w.Header().Set("Content-Disposition", `attachment; filename="questions.xlsx"`)
			_, _ = w.Write(buf.Bytes())
		})

		r.Post("/load", func(w http.ResponseWriter, r *http.Request) {
			n, err := admin.LoadPayload(r.URL.Query().Get("data"))
			if err != nil {
				http.Error(w, err.Error(), statusFor(err))
				return
			}
			writeJSON(w, http.StatusOK, map[string]int{"loaded": n})
		})

		r.Get("/export/share", func(w http.ResponseWriter, r *http.Request) {
			data, err := admin.SharePayload()
			if err != nil {
				log.Error("share payload failed", zap.Error(err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"data": data})
		})
	})
}

func indexParam(w http.ResponseWriter, r *http.Request, log *zap.Logger) (int, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "index"))
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		log.Warn("admin bad index", zap.String("index", raw))
		http.Error(w, "bad index", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

func respondImport(w http.ResponseWriter, log *zap.Logger, source string, n int, err error) {
	if err != nil {
		log.Warn("import failed", zap.String("source", source), zap.Error(err))
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}
