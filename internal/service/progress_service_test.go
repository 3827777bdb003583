package service

import (
	"encoding/json"
	"testing"

	"deepeng_backend/internal/model"
	"deepeng_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// fakeProgressStore mirrors the monotonic-score upsert in memory.
type fakeProgressStore struct {
	rows    map[[2]uint]*model.Progress
	upserts int
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{rows: map[[2]uint]*model.Progress{}}
}

func (f *fakeProgressStore) Upsert(p *model.Progress) error {
	f.upserts++
	key := [2]uint{p.UserID, p.ModuleID}
	if existing, ok := f.rows[key]; ok {
		if existing.Score > p.Score {
			p.Score = existing.Score
		}
	}
	cp := *p
	f.rows[key] = &cp
	return nil
}

func (f *fakeProgressStore) FindByID(id uint) (*model.Progress, error) {
	for _, p := range f.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProgressStore) FindByUserAndModule(userID, moduleID uint) (*model.Progress, error) {
	if p, ok := f.rows[[2]uint{userID, moduleID}]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProgressStore) FindByUser(userID uint) ([]model.Progress, error) {
	var out []model.Progress
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProgressStore) SetScore(id uint, score int) error {
	p, err := f.FindByID(id)
	if err != nil {
		return err
	}
	p.Score = score
	return nil
}

type fakeModuleLoader struct {
	modules map[uint]*model.Module
}

func (f *fakeModuleLoader) FindByIDWithExercises(id uint) (*model.Module, error) {
	if m, ok := f.modules[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func testModule(id uint, withAITask bool) *model.Module {
	m := &model.Module{
		Title: "Глагол to be",
		Type:  model.Grammar,
		Exercises: []model.Exercise{
			exercise(1, model.MultipleChoice, "I __ a student", "am", `["am","is"]`),
			exercise(2, model.FillGap, "She __ happy", "is", ""),
		},
	}
	m.ID = id
	if withAITask {
		m.Content = datatypes.JSON(`{"ai_task":{"prompt":"Describe yourself"}}`)
	}
	return m
}

func TestCompleteRecomputesScore(t *testing.T) {
	store := newFakeProgressStore()
	svc := NewProgressService(store, &fakeModuleLoader{
		modules: map[uint]*model.Module{10: testModule(10, false)},
	})

	p, err := svc.Complete(5, CompleteRequest{
		ModuleID: 10,
		Details:  json.RawMessage(`{"1":"am","2":"are"}`),
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if p.Score != 50 {
		t.Fatalf("score = %d, want 50 (one of two correct)", p.Score)
	}
	if store.upserts != 1 {
		t.Fatalf("upserts = %d, want 1", store.upserts)
	}
}

func TestCompleteBlendsAIHistory(t *testing.T) {
	store := newFakeProgressStore()
	svc := NewProgressService(store, &fakeModuleLoader{
		modules: map[uint]*model.Module{10: testModule(10, true)},
	})

	p, err := svc.Complete(5, CompleteRequest{
		ModuleID:  10,
		Details:   json.RawMessage(`{"1":"am","2":"is"}`),
		AIHistory: json.RawMessage(`[{"role":"assistant","content":"Nice! [[SCORE: 90]]"}]`),
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	// 100*0.67 + 90*0.33
	if p.Score != 97 {
		t.Fatalf("score = %d, want 97", p.Score)
	}
}

func TestCompleteRetryKeepsBestScore(t *testing.T) {
	store := newFakeProgressStore()
	svc := NewProgressService(store, &fakeModuleLoader{
		modules: map[uint]*model.Module{10: testModule(10, false)},
	})

	first, err := svc.Complete(5, CompleteRequest{
		ModuleID: 10,
		Details:  json.RawMessage(`{"1":"am","2":"is"}`),
	})
	if err != nil || first.Score != 100 {
		t.Fatalf("first attempt = (%v, %v), want score 100", first, err)
	}

	second, err := svc.Complete(5, CompleteRequest{
		ModuleID: 10,
		Details:  json.RawMessage(`{"1":"is","2":"are"}`),
	})
	if err != nil {
		t.Fatalf("second attempt returned error: %v", err)
	}
	if second.Score != 100 {
		t.Fatalf("retry lowered the score to %d", second.Score)
	}

	// the weaker attempt's answers still replace the stored details
	stored, _ := store.FindByUserAndModule(5, 10)
	if string(stored.Details) != `{"1":"is","2":"are"}` {
		t.Fatalf("details not updated: %s", stored.Details)
	}
}

func TestCompleteIgnoresClientScore(t *testing.T) {
	// CompleteRequest has no score field at all; a client sending one
	// gets it dropped by binding. This guards the decoded shape.
	var req CompleteRequest
	if err := json.Unmarshal([]byte(`{"moduleId":10,"score":100,"details":{}}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	store := newFakeProgressStore()
	svc := NewProgressService(store, &fakeModuleLoader{
		modules: map[uint]*model.Module{10: testModule(10, false)},
	})
	p, err := svc.Complete(5, req)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if p.Score != 0 {
		t.Fatalf("claimed score leaked through: %d", p.Score)
	}
}

func TestCompleteUnknownModule(t *testing.T) {
	svc := NewProgressService(newFakeProgressStore(), &fakeModuleLoader{modules: map[uint]*model.Module{}})
	if _, err := svc.Complete(5, CompleteRequest{ModuleID: 99}); err != util.ErrModuleNotFound {
		t.Fatalf("err = %v, want ErrModuleNotFound", err)
	}
}

func TestOverrideScore(t *testing.T) {
	store := newFakeProgressStore()
	p := &model.Progress{UserID: 5, ModuleID: 10, Score: 80}
	p.ID = 1
	store.rows[[2]uint{5, 10}] = p

	svc := NewProgressService(store, &fakeModuleLoader{})

	// unlike completions, an override may lower the score
	if err := svc.OverrideScore(1, 40); err != nil {
		t.Fatalf("OverrideScore returned error: %v", err)
	}
	if got, _ := store.FindByID(1); got.Score != 40 {
		t.Fatalf("score = %d after override, want 40", got.Score)
	}

	if err := svc.OverrideScore(1, 101); err == nil {
		t.Fatalf("out-of-range override accepted")
	}
	if err := svc.OverrideScore(99, 50); err != util.ErrProgressNotFound {
		t.Fatalf("err = %v, want ErrProgressNotFound", err)
	}
}
