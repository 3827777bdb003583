package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"deepeng_backend/internal/model"
	"deepeng_backend/internal/util"
	"deepeng_backend/pkg/monitoring"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressStore and ModuleLoader are the slices of the repositories this
// service needs; tests substitute in-memory fakes.
type ProgressStore interface {
	Upsert(p *model.Progress) error
	FindByID(id uint) (*model.Progress, error)
	FindByUserAndModule(userID, moduleID uint) (*model.Progress, error)
	FindByUser(userID uint) ([]model.Progress, error)
	SetScore(id uint, score int) error
}

type ModuleLoader interface {
	FindByIDWithExercises(id uint) (*model.Module, error)
}

type ProgressService struct {
	Progress ProgressStore
	Modules  ModuleLoader
}

func NewProgressService(progress ProgressStore, modules ModuleLoader) *ProgressService {
	return &ProgressService{Progress: progress, Modules: modules}
}

type CompleteRequest struct {
	ModuleID   uint            `json:"moduleId" binding:"required"`
	Details    json.RawMessage `json:"details"`
	Reflection json.RawMessage `json:"reflection"`
	AIHistory  json.RawMessage `json:"ai_history"`
}

// Complete records a module completion. The score is always recomputed
// here from the submitted answers and the tutor transcript; whatever
// score a client claims is ignored.
func (s *ProgressService) Complete(userID uint, req CompleteRequest) (*model.Progress, error) {
	module, err := s.Modules.FindByIDWithExercises(req.ModuleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	content, err := model.ParseModuleContent(module.Content)
	if err != nil {
		return nil, err
	}

	answers := map[uint]string{}
	if len(req.Details) > 0 {
		if err := json.Unmarshal(req.Details, &answers); err != nil {
			return nil, fmt.Errorf("progress details: %w", err)
		}
	}

	aiScore, _ := AIScoreFromHistory(req.AIHistory)
	score := Finalize(module.Exercises, answers, content.AITask != nil, aiScore)

	p := &model.Progress{
		UserID:      userID,
		ModuleID:    req.ModuleID,
		Score:       score,
		Reflection:  normalizeJSON(req.Reflection),
		Details:     normalizeJSON(req.Details),
		AIHistory:   normalizeJSON(req.AIHistory),
		CompletedAt: time.Now(),
	}
	if err := s.Progress.Upsert(p); err != nil {
		return nil, err
	}
	monitoring.ModuleCompletions.WithLabelValues(string(module.Type)).Inc()

	// The upsert may have kept an earlier, higher score; read it back so
	// the caller sees the persisted value.
	stored, err := s.Progress.FindByUserAndModule(userID, req.ModuleID)
	if err != nil {
		return p, nil
	}
	return stored, nil
}

func (s *ProgressService) ListForUser(userID uint) ([]model.Progress, error) {
	return s.Progress.FindByUser(userID)
}

func (s *ProgressService) GetForModule(userID, moduleID uint) (*model.Progress, error) {
	p, err := s.Progress.FindByUserAndModule(userID, moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}
	return p, nil
}

// OverrideScore is the teacher's manual correction. Unlike completions it
// may lower a score.
func (s *ProgressService) OverrideScore(progressID uint, score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("score must be between 0 and 100")
	}
	if _, err := s.Progress.FindByID(progressID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrProgressNotFound
		}
		return err
	}
	return s.Progress.SetScore(progressID, score)
}

func normalizeJSON(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(raw)
}
