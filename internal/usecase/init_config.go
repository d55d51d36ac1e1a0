package usecase

import (
	"context"

	"github.com/runoshun/taskdeck/internal/domain"
)

// InitConfigInput contains the parameters for creating a config file.
type InitConfigInput struct {
	Global bool // Write the global file instead of the local one
}

// InitConfigOutput contains the result of creating a config file.
type InitConfigOutput struct {
	Path string // Path of the written file
}

// InitConfig writes the commented default configuration.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{configManager: configManager}
}

// Execute writes the config file. An existing file is never overwritten.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	cfg := domain.NewDefaultConfig()
	if in.Global {
		if err := uc.configManager.InitGlobalConfig(cfg); err != nil {
			return nil, err
		}
		return &InitConfigOutput{Path: uc.configManager.GetGlobalConfigInfo().Path}, nil
	}
	if err := uc.configManager.InitLocalConfig(cfg); err != nil {
		return nil, err
	}
	return &InitConfigOutput{Path: uc.configManager.GetLocalConfigInfo().Path}, nil
}
