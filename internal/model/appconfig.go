package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default sheet and optimizer settings applied to new projects
	DefaultSheetWidth     float64 `json:"default_sheet_width"`
	DefaultSheetHeight    float64 `json:"default_sheet_height"`
	DefaultPopulationSize int     `json:"default_population_size"`
	DefaultGenerations    int     `json:"default_generations"`
	DefaultMutationRate   float64 `json:"default_mutation_rate"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultSheetWidth:     defaults.SheetWidth,
		DefaultSheetHeight:    defaults.SheetHeight,
		DefaultPopulationSize: defaults.PopulationSize,
		DefaultGenerations:    defaults.Generations,
		DefaultMutationRate:   defaults.MutationRate,
		RecentProjects:        []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// NestSettings struct. Used when creating a new project so it inherits the
// user's saved defaults. Unset (non-positive) config values leave the
// corresponding setting untouched, so a hand-edited partial config still
// works.
func (c AppConfig) ApplyToSettings(s *NestSettings) {
	if c.DefaultSheetWidth > 0 {
		s.SheetWidth = c.DefaultSheetWidth
	}
	if c.DefaultSheetHeight > 0 {
		s.SheetHeight = c.DefaultSheetHeight
	}
	if c.DefaultPopulationSize > 0 {
		s.PopulationSize = c.DefaultPopulationSize
	}
	if c.DefaultGenerations > 0 {
		s.Generations = c.DefaultGenerations
	}
	if c.DefaultMutationRate > 0 {
		s.MutationRate = c.DefaultMutationRate
	}
}
