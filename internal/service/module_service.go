package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"deepeng_backend/internal/model"
	"deepeng_backend/internal/repository"
	"deepeng_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ModuleService struct {
	Modules     *repository.ModuleRepository
	Exercises   *repository.ExerciseRepository
	Assignments *repository.AssignmentRepository
	Storage     *StorageService
}

func NewModuleService(
	modules *repository.ModuleRepository,
	exercises *repository.ExerciseRepository,
	assignments *repository.AssignmentRepository,
	storage *StorageService,
) *ModuleService {
	return &ModuleService{
		Modules:     modules,
		Exercises:   exercises,
		Assignments: assignments,
		Storage:     storage,
	}
}

// ModuleView is a module prepared for the client: decoded content plus
// the step timeline a learner walks through.
type ModuleView struct {
	Module   *model.Module       `json:"module"`
	Content  model.ModuleContent `json:"content"`
	Timeline []Step              `json:"timeline"`
}

// ListForUser applies the visibility rule: teachers browse the whole
// catalog, students only see what their teacher has assigned.
func (s *ModuleService) ListForUser(user *model.User) ([]model.Module, error) {
	if user.Role == model.Teacher {
		return s.Modules.FindAll()
	}
	return s.Modules.FindAssignedToTeacher(user.TeacherID)
}

func (s *ModuleService) GetWithTimeline(id uint) (*ModuleView, error) {
	module, err := s.Modules.FindByIDWithExercises(id)
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

	return &ModuleView{
		Module:   module,
		Content:  content,
		Timeline: BuildTimeline(content, module.Exercises),
	}, nil
}

type SaveModuleRequest struct {
	Level       model.CEFRLevel  `json:"level" binding:"required"`
	Type        model.ModuleType `json:"type" binding:"required"`
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	Content     json.RawMessage  `json:"content"`
	Exercises   []model.Exercise `json:"exercises"`
}

func (s *ModuleService) validate(req SaveModuleRequest) error {
	switch req.Type {
	case model.Grammar, model.Vocabulary, model.Reading, model.Writing:
	default:
		return fmt.Errorf("unknown module type %q", req.Type)
	}
	if _, err := model.ParseModuleContent(req.Content); err != nil {
		return err
	}
	for i, ex := range req.Exercises {
		if _, err := model.ParseExerciseOptions(ex.Options); err != nil {
			return fmt.Errorf("exercise %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *ModuleService) Create(creatorID uint, req SaveModuleRequest) (*model.Module, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	module := &model.Module{
		Level:       req.Level,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Content:     normalizeJSON(req.Content),
		CreatorID:   creatorID,
	}
	if err := s.Modules.Create(module); err != nil {
		return nil, err
	}
	if err := s.Exercises.ReplaceForModule(module.ID, req.Exercises); err != nil {
		return nil, err
	}
	module.Exercises, _ = s.Exercises.FindByModule(module.ID)
	return module, nil
}

// Update rewrites a module in place. Exercises are swapped wholesale, so
// client-side exercise ids do not survive an edit.
func (s *ModuleService) Update(id uint, req SaveModuleRequest) (*model.Module, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	module, err := s.Modules.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	module.Level = req.Level
	module.Type = req.Type
	module.Title = req.Title
	module.Description = req.Description
	module.Content = normalizeJSON(req.Content)
	if err := s.Modules.Update(module); err != nil {
		return nil, err
	}
	if err := s.Exercises.ReplaceForModule(module.ID, req.Exercises); err != nil {
		return nil, err
	}
	module.Exercises, _ = s.Exercises.FindByModule(module.ID)
	return module, nil
}

// Delete removes a module with its exercises, assignments and stored
// audio. Audio cleanup is best effort; a failed removal must not keep
// the module alive.
func (s *ModuleService) Delete(ctx context.Context, id uint) error {
	module, err := s.Modules.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrModuleNotFound
		}
		return err
	}

	if err := s.Storage.RemoveModuleAudio(ctx, module.Title); err != nil {
		zap.L().Warn("failed to remove module audio",
			zap.Uint("module_id", id), zap.Error(err))
	}

	if err := s.Exercises.DeleteByModule(id); err != nil {
		return err
	}
	if err := s.Assignments.DeleteByModule(id); err != nil {
		return err
	}
	return s.Modules.Delete(id)
}
