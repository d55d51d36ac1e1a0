// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
	"github.com/runoshun/taskdeck/internal/infra/api"
	"github.com/runoshun/taskdeck/internal/infra/config"
	"github.com/runoshun/taskdeck/internal/infra/devserver"
	"github.com/runoshun/taskdeck/internal/infra/logging"
	"github.com/runoshun/taskdeck/internal/usecase"
)

// levelSilent is above every slog level; it turns the stderr logger off.
const levelSilent = slog.Level(16)

// Config holds the resolved runtime settings.
type Config struct {
	WorkDir    string // Directory holding the local config file
	APIBaseURL string // Backend base URL including the /api prefix
	LogDir     string // Directory for log files (empty = no file logs)
}

// Options are command-line overrides applied on top of the config files.
// Fields are ordered to minimize memory padding.
type Options struct {
	BaseURL string // Backend URL (empty = from config)
	Verbose bool   // Log debug entries to stderr
}

// Remotes groups the backend ports of the synchronized collections.
type Remotes struct {
	Tasks      domain.TaskRemote
	Categories domain.CategoryRemote
	Context    domain.ContextRemote
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Remotes       Remotes
	Assistant     domain.Assistant
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// Pointer fields
	Workspace   *collection.Workspace
	AppConfig   *domain.Config
	stderrLevel *slog.LevelVar
	closers     []io.Closer

	// Configuration
	Config Config
}

// New creates a new Container for the given working directory.
// Config files are read from dir and the global config directory.
func New(dir string, opts Options) (*Container, error) {
	configLoader := config.NewLoader(dir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.BaseURL != "" {
		appConfig.API.BaseURL = opts.BaseURL
	}

	cfg := Config{
		WorkDir:    dir,
		APIBaseURL: appConfig.API.BaseURL,
		LogDir:     appConfig.Log.Dir,
	}

	// stderr gets warnings by default; file logs follow the configured level.
	stderrLevel := new(slog.LevelVar)
	stderrLevel.Set(slog.LevelWarn)
	if opts.Verbose {
		stderrLevel.Set(slog.LevelDebug)
	}
	stderr := logging.SlogAdapter{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: stderrLevel,
	}))}
	fileLogger := logging.New(cfg.LogDir, logging.ParseLevel(appConfig.Log.Level))
	logger := logging.Tee{fileLogger, stderr}

	client := api.New(cfg.APIBaseURL, api.Options{
		Logger:    logger,
		Timeout:   appConfig.API.Timeout,
		RateLimit: appConfig.API.RateLimit,
		Burst:     appConfig.API.Burst,
	})
	remotes := Remotes{
		Tasks:      client.Tasks(),
		Categories: client.Categories(),
		Context:    client.Context(),
	}

	c := NewWithDeps(cfg, appConfig, remotes, client, domain.RealClock{}, logger)
	c.ConfigLoader = configLoader
	c.ConfigManager = config.NewManager(dir)
	c.stderrLevel = stderrLevel
	c.closers = append(c.closers, fileLogger)
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, remotes Remotes, assistant domain.Assistant, clock domain.Clock, logger domain.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Container{
		Remotes:   remotes,
		Assistant: assistant,
		Clock:     clock,
		Logger:    logger,
		Workspace: collection.NewWorkspace(remotes.Tasks, remotes.Categories, remotes.Context, logger),
		AppConfig: appConfig,
		Config:    cfg,
	}
}

// SilenceStderr stops log output to stderr. The TUI owns the terminal.
func (c *Container) SilenceStderr() {
	if c.stderrLevel != nil {
		c.stderrLevel.Set(levelSilent)
	}
}

// Close releases log files.
func (c *Container) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// UseCase factory methods

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Workspace, c.Logger)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Workspace)
}

// CreateTaskUseCase returns a new CreateTask use case.
func (c *Container) CreateTaskUseCase() *usecase.CreateTask {
	priority := c.AppConfig.Tasks.DefaultPriority
	if priority == 0 {
		priority = domain.DefaultPriorityScore
	}
	return usecase.NewCreateTask(c.Workspace, c.Clock, c.Logger, priority)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Workspace, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Workspace, c.Logger)
}

// SetTaskStatusUseCase returns a new SetTaskStatus use case.
func (c *Container) SetTaskStatusUseCase() *usecase.SetTaskStatus {
	return usecase.NewSetTaskStatus(c.Workspace, c.Logger)
}

// ListCategoriesUseCase returns a new ListCategories use case.
func (c *Container) ListCategoriesUseCase() *usecase.ListCategories {
	return usecase.NewListCategories(c.Workspace)
}

// CreateCategoryUseCase returns a new CreateCategory use case.
func (c *Container) CreateCategoryUseCase() *usecase.CreateCategory {
	return usecase.NewCreateCategory(c.Workspace, c.Logger)
}

// RenameCategoryUseCase returns a new RenameCategory use case.
func (c *Container) RenameCategoryUseCase() *usecase.RenameCategory {
	return usecase.NewRenameCategory(c.Workspace, c.Logger)
}

// DeleteCategoryUseCase returns a new DeleteCategory use case.
func (c *Container) DeleteCategoryUseCase() *usecase.DeleteCategory {
	return usecase.NewDeleteCategory(c.Workspace, c.Logger)
}

// ListContextUseCase returns a new ListContext use case.
func (c *Container) ListContextUseCase() *usecase.ListContext {
	return usecase.NewListContext(c.Workspace)
}

// AddContextUseCase returns a new AddContext use case.
func (c *Container) AddContextUseCase() *usecase.AddContext {
	return usecase.NewAddContext(c.Workspace, c.Clock, c.Logger)
}

// SuggestTaskUseCase returns a new SuggestTask use case.
func (c *Container) SuggestTaskUseCase() *usecase.SuggestTask {
	return usecase.NewSuggestTask(c.Workspace, c.Assistant, c.Logger)
}

// ChatUseCase returns a new Chat use case.
func (c *Container) ChatUseCase() *usecase.Chat {
	return usecase.NewChat(c.Workspace, c.Assistant, c.Logger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.AppConfig)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// DevServer returns an in-memory backend that logs through the container's logger.
func (c *Container) DevServer() *devserver.Server {
	return devserver.New(devserver.Options{
		Clock:  c.Clock,
		Logger: c.Logger,
	})
}
