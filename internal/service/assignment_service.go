package service

import (
	"errors"

	"deepeng_backend/internal/model"
	"deepeng_backend/internal/repository"
	"deepeng_backend/internal/util"

	"gorm.io/gorm"
)

type AssignmentService struct {
	Assignments *repository.AssignmentRepository
	Modules     *repository.ModuleRepository
}

func NewAssignmentService(assignments *repository.AssignmentRepository, modules *repository.ModuleRepository) *AssignmentService {
	return &AssignmentService{Assignments: assignments, Modules: modules}
}

// Assign makes a module visible to the teacher's students. Assigning an
// already assigned module is a no-op rather than an error.
func (s *AssignmentService) Assign(teacherID, moduleID uint) (*model.Assignment, error) {
	if _, err := s.Modules.FindByID(moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	exists, err := s.Assignments.Exists(teacherID, moduleID)
	if err != nil {
		return nil, err
	}
	if exists {
		rows, err := s.Assignments.FindByTeacher(teacherID)
		if err != nil {
			return nil, err
		}
		for i := range rows {
			if rows[i].ModuleID == moduleID {
				return &rows[i], nil
			}
		}
	}

	a := &model.Assignment{TeacherID: teacherID, ModuleID: moduleID}
	if err := s.Assignments.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssignmentService) List(teacherID uint) ([]model.Assignment, error) {
	return s.Assignments.FindByTeacher(teacherID)
}

// Unassign removes an assignment owned by the calling teacher. Deleting
// another teacher's assignment is refused.
func (s *AssignmentService) Unassign(id, teacherID uint) error {
	affected, err := s.Assignments.Delete(id, teacherID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrPermissionDenied
	}
	return nil
}
