package service

import (
	"studyhive_backend/internal/model"
	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/util"
)

type UpdateProfileInput struct {
	Name       string `json:"name" binding:"omitempty,min=2,max=100"`
	Department string `json:"department"`
	LevelID    uint   `json:"levelId"`
}

type UserService struct {
	users  *repository.UserRepository
	levels *repository.LevelRepository
	notes  *repository.CommunityNoteRepository
}

func NewUserService(users *repository.UserRepository, levels *repository.LevelRepository, notes *repository.CommunityNoteRepository) *UserService {
	return &UserService{users: users, levels: levels, notes: notes}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.NotFound("User not found")
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.NotFound("User not found")
	}

	fields := map[string]interface{}{}
	if input.Name != "" {
		fields["name"] = input.Name
	}
	if input.Department != "" {
		fields["department"] = input.Department
	}
	if input.LevelID != 0 {
		level, err := s.levels.FindByID(input.LevelID)
		if err != nil {
			return nil, err
		}
		if level == nil {
			return nil, util.BadRequest("Unknown academic level")
		}
		fields["level_id"] = input.LevelID
	}

	if len(fields) > 0 {
		if err := s.users.UpdateFields(userID, fields); err != nil {
			return nil, err
		}
	}
	return s.users.FindByID(userID)
}

// SetRole promotes a student to course rep or back. Admin only.
func (s *UserService) SetRole(userID uint, role string) (*model.User, error) {
	if role != model.RoleStudent && role != model.RoleRep && role != model.RoleAdmin {
		return nil, util.BadRequest("Unknown role")
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.NotFound("User not found")
	}

	if err := s.users.UpdateFields(userID, map[string]interface{}{"role": role}); err != nil {
		return nil, err
	}
	return s.users.FindByID(userID)
}

// List pages accounts for the admin console.
func (s *UserService) List(filter repository.UserFilter, page, limit int) ([]model.User, *util.Pagination, error) {
	users, total, err := s.users.List(filter, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return users, util.NewPagination(page, limit, total), nil
}

// SetActive suspends or reinstates an account. Deactivation also revokes the
// live refresh token, so the next token rotation fails.
func (s *UserService) SetActive(actorID, userID uint, active bool) (*model.User, error) {
	if actorID == userID {
		return nil, util.BadRequest("You cannot deactivate your own account")
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.NotFound("User not found")
	}

	if err := s.users.SetActive(userID, active); err != nil {
		return nil, err
	}
	return s.users.FindByID(userID)
}

func (s *UserService) ListContributions(userID uint, page, limit int) ([]model.CommunityNote, *util.Pagination, error) {
	notes, total, err := s.notes.ListByAuthor(userID, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return notes, util.NewPagination(page, limit, total), nil
}

func (s *UserService) ListSavedNotes(userID uint, page, limit int) ([]model.CommunityNote, *util.Pagination, error) {
	notes, total, err := s.notes.ListSaved(userID, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return notes, util.NewPagination(page, limit, total), nil
}
