package dto

import (
	"gorm.io/datatypes"

	"github.com/optima-labs/optima-api/internal/models"
)

type CreateProcessRequest struct {
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Steps       datatypes.JSON `json:"steps"`
}

type UpdateProcessRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *models.ProcessStatus `json:"status"`
	Steps       datatypes.JSON        `json:"steps"`
}

type ProcessListResponse struct {
	Processes  []models.Process `json:"processes"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}
