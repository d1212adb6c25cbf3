package service

import (
	"errors"
	"fmt"

	"examportal/internal/dto"
	"examportal/internal/model"
	"examportal/internal/repository"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages staff and student accounts plus the self-service
// profile. Role membership is decided here (the identity provider of the
// system); visibility filtering never grants write access.
type UserService interface {
	ListStaff() ([]dto.UserDTO, error)
	CreateStaff(req dto.UserCreateDTO) (*dto.UserDTO, error)
	UpdateStaff(id uint, req dto.UserUpdateDTO) (*dto.UserDTO, error)
	DeleteStaff(id uint) error

	ListStudents(actor *model.User) ([]dto.UserDTO, error)
	CreateStudent(req dto.StudentCreateDTO) (*dto.UserDTO, error)
	UpdateStudent(id uint, req dto.StudentUpdateDTO) (*dto.UserDTO, error)
	DeleteStudent(id uint) error

	GetProfile(userID uint) (*dto.UserDTO, error)
	UpdateProfile(userID uint, req dto.ProfileUpdateDTO) (*dto.UserDTO, error)
	SetProfileImage(userID uint, imagePath string) (*dto.UserDTO, error)
}

type userService struct {
	userRepo   repository.UserRepository
	visibility VisibilityFactory
}

func NewUserService(userRepo repository.UserRepository, visibility VisibilityFactory) UserService {
	return &userService{userRepo: userRepo, visibility: visibility}
}

func (s *userService) ListStaff() ([]dto.UserDTO, error) {
	users, err := s.userRepo.FindAllByRoles([]string{model.RoleManager, model.RoleTeacher})
	if err != nil {
		log.Error().Err(err).Msg("ListStaff: repository error")
		return nil, fmt.Errorf("error fetching staff: %w", err)
	}
	return usersToDTOs(users)
}

func (s *userService) CreateStaff(req dto.UserCreateDTO) (*dto.UserDTO, error) {
	return s.createUser(req.Name, req.Surname, req.Username, req.Password, req.Role)
}

func (s *userService) UpdateStaff(id uint, req dto.UserUpdateDTO) (*dto.UserDTO, error) {
	user, err := s.loadByRole(id, model.RoleManager, model.RoleTeacher)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Surname = req.Surname
	user.Username = req.Username
	user.Role = req.Role
	if req.Password != "" {
		if err := setPassword(user, req.Password); err != nil {
			return nil, err
		}
	}
	return s.saveUser(user)
}

func (s *userService) DeleteStaff(id uint) error {
	if _, err := s.loadByRole(id, model.RoleManager, model.RoleTeacher); err != nil {
		return err
	}
	return s.deleteUser(id)
}

func (s *userService) ListStudents(actor *model.User) ([]dto.UserDTO, error) {
	students, err := s.visibility.ForUser(actor).VisibleStudents()
	if err != nil {
		log.Error().Err(err).Msg("ListStudents: repository error")
		return nil, fmt.Errorf("error fetching students: %w", err)
	}
	return usersToDTOs(students)
}

func (s *userService) CreateStudent(req dto.StudentCreateDTO) (*dto.UserDTO, error) {
	return s.createUser(req.Name, req.Surname, req.Username, req.Password, model.RoleStudent)
}

func (s *userService) UpdateStudent(id uint, req dto.StudentUpdateDTO) (*dto.UserDTO, error) {
	user, err := s.loadByRole(id, model.RoleStudent)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Surname = req.Surname
	user.Username = req.Username
	if req.Password != "" {
		if err := setPassword(user, req.Password); err != nil {
			return nil, err
		}
	}
	return s.saveUser(user)
}

func (s *userService) DeleteStudent(id uint) error {
	if _, err := s.loadByRole(id, model.RoleStudent); err != nil {
		return err
	}
	return s.deleteUser(id)
}

func (s *userService) GetProfile(userID uint) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading user %d: %w", userID, err)
	}
	return userToDTO(user)
}

func (s *userService) UpdateProfile(userID uint, req dto.ProfileUpdateDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading user %d: %w", userID, err)
	}

	user.Name = req.Name
	user.Surname = req.Surname
	user.Username = req.Username
	if req.NewPassword != "" {
		if err := setPassword(user, req.NewPassword); err != nil {
			return nil, err
		}
	}
	return s.saveUser(user)
}

func (s *userService) SetProfileImage(userID uint, imagePath string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading user %d: %w", userID, err)
	}

	user.ProfileImageURL = &imagePath
	return s.saveUser(user)
}

func (s *userService) createUser(name, surname, username, password, role string) (*dto.UserDTO, error) {
	user := model.User{
		Name:     name,
		Surname:  surname,
		Username: username,
		Role:     role,
	}
	if err := setPassword(&user, password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		log.Error().Err(err).Str("username", username).Msg("createUser: repository error")
		return nil, fmt.Errorf("database error creating user: %w", err)
	}
	return userToDTO(&user)
}

// loadByRole fetches a user and treats a role mismatch as not found, so the
// staff endpoints cannot touch students and vice versa.
func (s *userService) loadByRole(id uint, roles ...string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading user %d: %w", id, err)
	}
	for _, role := range roles {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *userService) saveUser(user *model.User) (*dto.UserDTO, error) {
	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		log.Error().Err(err).Uint("userID", user.ID).Msg("saveUser: repository error")
		return nil, fmt.Errorf("database error updating user: %w", err)
	}
	return userToDTO(user)
}

func (s *userService) deleteUser(id uint) error {
	if err := s.userRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("userID", id).Msg("deleteUser: repository error")
		return fmt.Errorf("database error deleting user: %w", err)
	}
	return nil
}

func setPassword(user *model.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	user.PasswordHash = string(hash)
	return nil
}

func userToDTO(user *model.User) (*dto.UserDTO, error) {
	var resp dto.UserDTO
	if err := copier.Copy(&resp, user); err != nil {
		return nil, fmt.Errorf("error preparing user response: %w", err)
	}
	return &resp, nil
}

func usersToDTOs(users []model.User) ([]dto.UserDTO, error) {
	dtos := make([]dto.UserDTO, 0, len(users))
	for _, user := range users {
		row, err := userToDTO(&user)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *row)
	}
	return dtos, nil
}
