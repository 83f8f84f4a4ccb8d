package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tithmeassambo-coder/QCM/internal/game"
	"github.com/tithmeassambo-coder/QCM/internal/storage"
	"github.com/tithmeassambo-coder/QCM/internal/ws"
	"go.uber.org/zap"
)

type mockPlayService struct {
	mock.Mock
}

func (m *mockPlayService) Subjects() []storage.SubjectCount {
	args := m.Called()
	rows, _ := args.Get(0).([]storage.SubjectCount)
	return rows
}

func (m *mockPlayService) Parts(subject string) []game.Part {
	args := m.Called(subject)
	parts, _ := args.Get(0).([]game.Part)
	return parts
}

func (m *mockPlayService) StartAttempt(subject string, partIndex int, cue game.Cue) (*game.Session, error) {
	args := m.Called(subject, partIndex, cue)
	s, _ := args.Get(0).(*game.Session)
	return s, args.Error(1)
}

func newPlayRouter(t *testing.T, svc *mockPlayService) http.Handler {
	t.Helper()
	hub := ws.NewHub(svc, zap.NewNop())
	t.Cleanup(hub.Shutdown)

	r := chi.NewRouter()
	RegisterHandlers(r, svc, hub, zap.NewNop())
	return r
}

func TestHandlers_GetSubjects(t *testing.T) {
	svc := new(mockPlayService)
	svc.On("Subjects").Return([]storage.SubjectCount{{Subject: "ភូមិវិទ្យា", Count: 12}}).Once()
	router := newPlayRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/subjects", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []storage.SubjectCount
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Equal(t, []storage.SubjectCount{{Subject: "ភូមិវិទ្យា", Count: 12}}, got)
	svc.AssertExpectations(t)
}

func TestHandlers_GetParts(t *testing.T) {
	svc := new(mockPlayService)
	svc.On("Parts", "ភូមិវិទ្យា").Return([]game.Part{
		{Index: 0, Start: 1, End: 10},
		{Index: 1, Start: 11, End: 12},
	}).Once()
	router := newPlayRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/subjects/%E1%9E%97%E1%9E%BC%E1%9E%98%E1%9E%B7%E1%9E%9C%E1%9E%B7%E1%9E%91%E1%9F%92%E1%9E%99%E1%9E%B6/parts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[{"index":0,"start":1,"end":10,"size":10},{"index":1,"start":11,"end":12,"size":2}]`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestHandlers_GetParts_UnknownSubject(t *testing.T) {
	svc := new(mockPlayService)
	svc.On("Parts", "Nope").Return([]game.Part{}).Once()
	router := newPlayRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/subjects/Nope/parts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlers_WS_BadPart(t *testing.T) {
	svc := new(mockPlayService)
	router := newPlayRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/ws/play/Math/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "StartAttempt", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandlers_GetParts_SubjectDecodedOnce(t *testing.T) {
	svc := new(mockPlayService)
	svc.On("Parts", "%41").Return([]game.Part{{Index: 0, Start: 1, End: 1}}).Once()
	svc.On("Parts", "a/b").Return([]game.Part{{Index: 0, Start: 1, End: 1}}).Once()
	router := newPlayRouter(t, svc)

	for _, target := range []string{"/subjects/%2541/parts", "/subjects/a%2Fb/parts"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, target)
	}
	svc.AssertExpectations(t)
}

func TestHandlers_LoadIsNotPublic(t *testing.T) {
	router := newPlayRouter(t, new(mockPlayService))

	req := httptest.NewRequest(http.MethodPost, "/load?data=W10=", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
