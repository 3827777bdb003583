package service

import (
	"errors"
	"time"

	"deepeng_backend/internal/model"
	"deepeng_backend/internal/repository"
	"deepeng_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	Users    *repository.UserRepository
	Progress *repository.ProgressRepository
	Modules  *repository.ModuleRepository
}

func NewUserService(
	users *repository.UserRepository,
	progress *repository.ProgressRepository,
	modules *repository.ModuleRepository,
) *UserService {
	return &UserService{Users: users, Progress: progress, Modules: modules}
}

type CompletedModule struct {
	ModuleID    uint      `json:"moduleId"`
	ModuleTitle string    `json:"moduleTitle"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

type ProfileView struct {
	User             *model.User       `json:"user"`
	Completed        []CompletedModule `json:"completed"`
	CompletedModules int               `json:"completedModules"`
	AverageScore     float64           `json:"averageScore"`
}

// Profile assembles a student's page: identity, level and every
// completed module with its best score.
func (s *UserService) Profile(userID uint) (*ProfileView, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	rows, err := s.Progress.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	titles := map[uint]string{}
	if modules, err := s.Modules.FindAll(); err == nil {
		for _, m := range modules {
			titles[m.ID] = m.Title
		}
	}

	view := &ProfileView{User: user, Completed: make([]CompletedModule, 0, len(rows))}
	var sum int
	for _, p := range rows {
		view.Completed = append(view.Completed, CompletedModule{
			ModuleID:    p.ModuleID,
			ModuleTitle: titles[p.ModuleID],
			Score:       p.Score,
			CompletedAt: p.CompletedAt,
		})
		sum += p.Score
	}
	view.CompletedModules = len(rows)
	if len(rows) > 0 {
		view.AverageScore = float64(sum) / float64(len(rows))
	}
	return view, nil
}

type StudentOverview struct {
	ID               uint            `json:"id"`
	FullName         string          `json:"fullName"`
	Username         string          `json:"username"`
	Level            model.CEFRLevel `json:"level"`
	CompletedModules int64           `json:"completedModules"`
	AverageScore     float64         `json:"averageScore"`
}

type DashboardView struct {
	Students     []StudentOverview `json:"students"`
	ClassAverage float64           `json:"classAverage"`
}

// TeacherDashboard summarizes every student of a teacher. The class
// average only counts students who have completed at least one module.
func (s *UserService) TeacherDashboard(teacherID uint) (*DashboardView, error) {
	students, err := s.Users.FindStudentsByTeacher(teacherID)
	if err != nil {
		return nil, err
	}

	view := &DashboardView{Students: make([]StudentOverview, 0, len(students))}
	var classSum float64
	var active int
	for _, st := range students {
		count, avg, err := s.Progress.CountAndAverageByUser(st.ID)
		if err != nil {
			return nil, err
		}
		view.Students = append(view.Students, StudentOverview{
			ID:               st.ID,
			FullName:         st.FullName,
			Username:         st.Username,
			Level:            st.Level,
			CompletedModules: count,
			AverageScore:     avg,
		})
		if count > 0 {
			classSum += avg
			active++
		}
	}
	if active > 0 {
		view.ClassAverage = classSum / float64(active)
	}
	return view, nil
}
