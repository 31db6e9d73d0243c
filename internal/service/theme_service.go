package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/models"
	"github.com/rooby-labs/konexa-go-api/internal/storage"
)

// ThemeService owns the single process-wide appearance record.
type ThemeService interface {
	Theme(ctx context.Context) models.Theme
	UpdateTheme(ctx context.Context, req dto.ThemeRequest) models.Theme
}

type themeService struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewThemeService constructs the theme service.
func NewThemeService(store storage.Store, logger zerolog.Logger) ThemeService {
	return &themeService{
		store:  store,
		logger: logger.With().Str("component", "theme_service").Logger(),
	}
}

func (s *themeService) Theme(ctx context.Context) models.Theme {
	theme := models.DefaultTheme()
	s.store.Load(ctx, storage.KeyTheme, &theme)
	return theme
}

// UpdateTheme merges the request into the persisted record. Background color
// and background image are mutually exclusive: setting one clears the other.
func (s *themeService) UpdateTheme(ctx context.Context, req dto.ThemeRequest) models.Theme {
	theme := s.Theme(ctx)

	if req.DarkMode != nil {
		theme.DarkMode = *req.DarkMode
	}
	if req.BackgroundColor != nil {
		theme.BackgroundColor = *req.BackgroundColor
		theme.BackgroundImage = ""
	}
	if req.BackgroundImage != nil {
		theme.BackgroundImage = *req.BackgroundImage
		theme.BackgroundColor = ""
	}

	s.store.Save(ctx, storage.KeyTheme, theme)

	return theme
}
