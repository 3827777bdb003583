package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"deepeng_backend/internal/model"
	"deepeng_backend/internal/service"
	"deepeng_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// memProgressStore keeps the monotonic-score upsert in memory.
type memProgressStore struct {
	rows map[[2]uint]*model.Progress
}

func newMemProgressStore() *memProgressStore {
	return &memProgressStore{rows: map[[2]uint]*model.Progress{}}
}

func (f *memProgressStore) Upsert(p *model.Progress) error {
	key := [2]uint{p.UserID, p.ModuleID}
	if existing, ok := f.rows[key]; ok && existing.Score > p.Score {
		p.Score = existing.Score
	}
	cp := *p
	f.rows[key] = &cp
	return nil
}

func (f *memProgressStore) FindByID(id uint) (*model.Progress, error) {
	for _, p := range f.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *memProgressStore) FindByUserAndModule(userID, moduleID uint) (*model.Progress, error) {
	if p, ok := f.rows[[2]uint{userID, moduleID}]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *memProgressStore) FindByUser(userID uint) ([]model.Progress, error) {
	var out []model.Progress
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *memProgressStore) SetScore(id uint, score int) error {
	p, err := f.FindByID(id)
	if err != nil {
		return err
	}
	p.Score = score
	return nil
}

type memModuleLoader struct {
	modules map[uint]*model.Module
}

func (f *memModuleLoader) FindByIDWithExercises(id uint) (*model.Module, error) {
	if m, ok := f.modules[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func authAs(claims *util.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", claims)
	}
}

func testExercise(id uint, typ model.ExerciseType, question, answer string) model.Exercise {
	e := model.Exercise{Type: typ, Question: question, CorrectAnswer: answer}
	e.ID = id
	return e
}

func newProgressRouter(t *testing.T) (*gin.Engine, *memProgressStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	module := &model.Module{
		Title: "Глагол to be",
		Type:  model.Grammar,
		Exercises: []model.Exercise{
			testExercise(1, model.MultipleChoice, "I __ a student", "am"),
			testExercise(2, model.FillGap, "She __ happy", "is"),
		},
	}
	module.ID = 10

	store := newMemProgressStore()
	svc := service.NewProgressService(store, &memModuleLoader{
		modules: map[uint]*model.Module{10: module},
	})

	router := gin.New()
	c := NewProgressController(svc)
	router.POST("/api/progress", authAs(&util.Claims{UserID: 5}), c.Complete)
	return router, store
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCompleteAcceptsDocumentedBody(t *testing.T) {
	router, store := newProgressRouter(t)

	w := postJSON(t, router, "/api/progress",
		`{"moduleId":10,"reflection":{},"details":{"1":"am","2":"is"},"ai_history":[]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Score int `json:"score"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Score != 100 {
		t.Fatalf("score = %d, want 100", resp.Data.Score)
	}
	if _, err := store.FindByUserAndModule(5, 10); err != nil {
		t.Fatalf("completion not stored: %v", err)
	}
}

func TestCompleteIgnoresClientScore(t *testing.T) {
	router, _ := newProgressRouter(t)

	// both answers wrong; any claimed score must not leak through
	w := postJSON(t, router, "/api/progress",
		`{"moduleId":10,"score":100,"details":{"1":"is","2":"am"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Score int `json:"score"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Score != 0 {
		t.Fatalf("score = %d, want 0", resp.Data.Score)
	}
}

func TestCompleteRejectsMissingModuleID(t *testing.T) {
	router, _ := newProgressRouter(t)

	w := postJSON(t, router, "/api/progress", `{"details":{"1":"am"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCompleteUnknownModuleIs404(t *testing.T) {
	router, _ := newProgressRouter(t)

	w := postJSON(t, router, "/api/progress", `{"moduleId":99}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
