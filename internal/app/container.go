// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"net/url"
	"time"

	"github.com/runoshun/taskpro/internal/board"
	"github.com/runoshun/taskpro/internal/domain"
	"github.com/runoshun/taskpro/internal/i18n"
	"github.com/runoshun/taskpro/internal/infra/config"
	"github.com/runoshun/taskpro/internal/infra/logging"
	"github.com/runoshun/taskpro/internal/infra/restapi"
	"github.com/runoshun/taskpro/internal/usecase"
)

// Options holds the values given on the command line.
// Empty fields leave the configured value alone.
type Options struct {
	ConfigPath string // Explicit config file (--config)
	BaseURL    string // Base URL override (--base-url)
	Host       string // Host name override (--host)
	Locale     string // Locale override (--locale)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store         domain.TaskStore
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// Pointer fields
	Catalog   *i18n.Catalog
	AppConfig *domain.Config
	BaseURL   *url.URL
	closeLog  func() error

	// storeErr is set when no store could be built (bad config or base URL).
	storeErr error
	Host     string // Detected host name
}

// New creates a new Container from the configuration files, the environment and opts.
// Configuration problems that only matter to the task store are deferred to Board.
func New(opts Options) (*Container, error) {
	loader := config.NewLoader(opts.ConfigPath)
	appConfig, loadErr := loader.Load()
	if loadErr != nil {
		appConfig = domain.NewDefaultConfig()
		loadErr = fmt.Errorf("load config: %w", loadErr)
	}
	applyOptions(appConfig, opts)

	fileLogger := logging.New(logging.DefaultStateDir(), logging.ParseLevel(appConfig.Log.Level))

	host, err := config.NewHostResolver(opts.Host, loader.Getenv).Hostname()
	if err != nil {
		fileLogger.Warn("config", fmt.Sprintf("detect host name: %v", err))
	}

	c := &Container{
		ConfigLoader:  loader,
		ConfigManager: config.NewManager(opts.ConfigPath),
		Logger:        fileLogger,
		Catalog:       i18n.New(appConfig.UI.Locale),
		AppConfig:     appConfig,
		Host:          host,
		closeLog:      fileLogger.Close,
		storeErr:      loadErr,
	}

	if c.storeErr == nil {
		base, err := appConfig.API.ResolveBaseURL(host)
		if err != nil {
			c.storeErr = err
		} else {
			c.BaseURL = base
			c.Store = restapi.New(base,
				restapi.WithToken(appConfig.API.Token),
				restapi.WithTimeout(time.Duration(appConfig.API.Timeout)),
				restapi.WithLogger(fileLogger),
			)
			fileLogger.Debug("config", fmt.Sprintf("host %q, base URL %s", host, base))
		}
	}

	return c, nil
}

// applyOptions writes command line overrides over cfg.
func applyOptions(cfg *domain.Config, opts Options) {
	if opts.BaseURL != "" {
		cfg.API.BaseURL = opts.BaseURL
		// An explicit base URL applies on every host.
		cfg.API.DevBaseURL = ""
	}
	if opts.Locale != "" {
		cfg.UI.Locale = opts.Locale
	}
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, store domain.TaskStore, catalog *i18n.Catalog, logger domain.Logger) *Container {
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	if catalog == nil {
		catalog = i18n.New(cfg.UI.Locale)
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	c := &Container{
		Store:     store,
		Logger:    logger,
		Catalog:   catalog,
		AppConfig: cfg,
	}
	if closer, ok := logger.(interface{ Close() error }); ok {
		c.closeLog = closer.Close
	}
	return c
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.closeLog == nil {
		return nil
	}
	return c.closeLog()
}

// Warnings returns configuration warnings to show the user.
func (c *Container) Warnings() []string {
	if c.AppConfig == nil {
		return nil
	}
	return c.AppConfig.Warnings
}

// UseCase factory methods

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store, c.Logger)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Store, c.Logger)
}

// ToggleTaskUseCase returns a new ToggleTask use case.
func (c *Container) ToggleTaskUseCase() *usecase.ToggleTask {
	return usecase.NewToggleTask(c.Store, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Store, c.Logger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// Board returns a new task list client over the store.
// It fails when the configuration did not yield a usable store.
func (c *Container) Board(opts ...board.Option) (*board.Board, error) {
	if c.storeErr != nil {
		return nil, c.storeErr
	}
	if c.Store == nil {
		return nil, domain.ErrNoBaseURL
	}
	uc := board.UseCases{
		List:   c.ListTasksUseCase(),
		Create: c.NewTaskUseCase(),
		Toggle: c.ToggleTaskUseCase(),
		Delete: c.DeleteTaskUseCase(),
	}
	base := []board.Option{
		board.WithLogger(c.Logger),
		board.WithLatestListWins(c.AppConfig.Client.LatestListWins),
	}
	return board.New(uc, c.Catalog, append(base, opts...)...), nil
}
