package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/models"
)

var ErrProcessNotFound = errors.New("process not found")

// ProcessService is the dashboard's owner-scoped process CRUD.
type ProcessService struct {
	db *gorm.DB
}

func NewProcessService(db *gorm.DB) *ProcessService {
	return &ProcessService{db: db}
}

func (s *ProcessService) List(userID uuid.UUID, page, limit int) (*dto.ProcessListResponse, error) {
	page, limit = clampPage(page, limit)

	query := s.db.Model(&models.Process{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count processes: %w", err)
	}

	var processes []models.Process
	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&processes).Error; err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	return &dto.ProcessListResponse{
		Processes:  processes,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *ProcessService) Create(userID uuid.UUID, req *dto.CreateProcessRequest) (*models.Process, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("name is required")
	}

	process := models.Process{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProcessActive,
		Steps:       req.Steps,
	}
	if err := s.db.Create(&process).Error; err != nil {
		return nil, fmt.Errorf("create process: %w", err)
	}
	return &process, nil
}

func (s *ProcessService) Get(userID, id uuid.UUID) (*models.Process, error) {
	var process models.Process
	if err := s.db.Where("user_id = ?", userID).First(&process, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProcessNotFound
		}
		return nil, err
	}
	return &process, nil
}

func (s *ProcessService) Update(userID, id uuid.UUID, req *dto.UpdateProcessRequest) (*models.Process, error) {
	process, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, errors.New("name is required")
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("invalid process status %q", *req.Status)
		}
		updates["status"] = *req.Status
	}
	if req.Steps != nil {
		updates["steps"] = req.Steps
	}

	if len(updates) > 0 {
		if err := s.db.Model(process).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update process: %w", err)
		}
	}
	return process, nil
}

func (s *ProcessService) Delete(userID, id uuid.UUID) error {
	result := s.db.Where("user_id = ?", userID).Delete(&models.Process{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete process: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProcessNotFound
	}
	return nil
}
