package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
)

func TestThemeDefaults(t *testing.T) {
	svc := NewThemeService(newTestStore(t), testLogger())

	theme := svc.Theme(context.Background())
	require.False(t, theme.DarkMode)
	require.Equal(t, "#f0f4f8", theme.BackgroundColor)
	require.Empty(t, theme.BackgroundImage)
}

func TestUpdateThemeMergesAndPersists(t *testing.T) {
	svc := NewThemeService(newTestStore(t), testLogger())
	ctx := context.Background()

	dark := true
	updated := svc.UpdateTheme(ctx, dto.ThemeRequest{DarkMode: &dark})
	require.True(t, updated.DarkMode)
	require.Equal(t, "#f0f4f8", updated.BackgroundColor)

	reloaded := svc.Theme(ctx)
	require.True(t, reloaded.DarkMode)
}

func TestBackgroundColorAndImageAreMutuallyExclusive(t *testing.T) {
	svc := NewThemeService(newTestStore(t), testLogger())
	ctx := context.Background()

	image := "https://example.com/bg.png"
	themed := svc.UpdateTheme(ctx, dto.ThemeRequest{BackgroundImage: &image})
	require.Equal(t, image, themed.BackgroundImage)
	require.Empty(t, themed.BackgroundColor)

	color := "#112233"
	themed = svc.UpdateTheme(ctx, dto.ThemeRequest{BackgroundColor: &color})
	require.Equal(t, color, themed.BackgroundColor)
	require.Empty(t, themed.BackgroundImage)
}
