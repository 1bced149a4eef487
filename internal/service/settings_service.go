package service

import (
	"time"

	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/repository"
)

// SettingsService reads and updates the application settings mapping.
type SettingsService interface {
	Get() (*dto.SettingsResponse, error)
	Update(req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	// TouchBackup stamps last_backup with the current time.
	TouchBackup() error
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get() (*dto.SettingsResponse, error) {
	settings, err := s.repo.Get()
	if err != nil {
		return nil, err
	}
	return settingsToResponse(settings), nil
}

func (s *settingsService) Update(req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := s.repo.Get()
	if err != nil {
		return nil, err
	}
	if req.Theme != "" {
		settings["theme"] = req.Theme
	}
	if req.CompanyName != "" {
		settings["company_name"] = req.CompanyName
	}
	if err := s.repo.Save(settings); err != nil {
		return nil, err
	}
	return settingsToResponse(settings), nil
}

func (s *settingsService) TouchBackup() error {
	settings, err := s.repo.Get()
	if err != nil {
		return err
	}
	settings["last_backup"] = time.Now().Format(time.RFC3339)
	return s.repo.Save(settings)
}

func settingsToResponse(settings map[string]any) *dto.SettingsResponse {
	resp := &dto.SettingsResponse{}
	if v, ok := settings["theme"].(string); ok {
		resp.Theme = v
	}
	if v, ok := settings["company_name"].(string); ok {
		resp.CompanyName = v
	}
	if v, ok := settings["last_backup"].(string); ok {
		resp.LastBackup = v
	}
	return resp
}
