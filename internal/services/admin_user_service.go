package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/models"
)

var (
	ErrInvalidRole = errors.New("invalid role")
	ErrInvalidTier = errors.New("invalid subscription tier")
)

// AdminUserService backs the admin user-management pages.
type AdminUserService struct {
	db *gorm.DB
}

func NewAdminUserService(db *gorm.DB) *AdminUserService {
	return &AdminUserService{db: db}
}

// GetUsers returns one page of profiles ordered by creation time descending.
// A non-empty search matches case-insensitively against email or full name.
func (s *AdminUserService) GetUsers(page, limit int, search string) (*dto.UserListResponse, error) {
	page, limit = clampPage(page, limit)

	query := s.db.Model(&models.Profile{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	var users []models.Profile
	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return &dto.UserListResponse{
		Users:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *AdminUserService) GetUserByID(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateUser applies the non-nil fields and returns the updated row.
func (s *AdminUserService) UpdateUser(id uuid.UUID, req *dto.UpdateUserRequest) (*models.Profile, error) {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, ErrInvalidRole
		}
		updates["role"] = *req.Role
	}
	if req.SubscriptionTier != nil {
		if !req.SubscriptionTier.Valid() {
			return nil, ErrInvalidTier
		}
		updates["subscription_tier"] = *req.SubscriptionTier
	}
	if req.APICallsLimit != nil {
		updates["api_calls_limit"] = *req.APICallsLimit
	}

	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if len(updates) == 0 {
		return &profile, nil
	}

	if err := s.db.Model(&profile).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &profile, nil
}

func (s *AdminUserService) DeleteUser(id uuid.UUID) error {
	result := s.db.Delete(&models.Profile{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// GetUserStats issues three independent counts. There is no snapshot spanning
// them; a profile mutated mid-call can shift between categories.
func (s *AdminUserService) GetUserStats() (*dto.UserStatsResponse, error) {
	stats := &dto.UserStatsResponse{}

	if err := s.db.Model(&models.Profile{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("count total users: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -30)
	if err := s.db.Model(&models.Profile{}).
		Where("updated_at >= ?", cutoff).
		Count(&stats.ActiveUsers).Error; err != nil {
		return nil, fmt.Errorf("count active users: %w", err)
	}

	if err := s.db.Model(&models.Profile{}).
		Where("role IN ?", []models.Role{models.RoleAdmin, models.RoleSuperAdmin}).
		Count(&stats.AdminUsers).Error; err != nil {
		return nil, fmt.Errorf("count admin users: %w", err)
	}

	return stats, nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}
