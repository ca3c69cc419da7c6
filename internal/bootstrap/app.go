package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-roaster/internal/contact"
	"resume-roaster/internal/export"
	"resume-roaster/internal/llm"
	openai "resume-roaster/internal/llm/openai"
	"resume-roaster/internal/resumes"
	"resume-roaster/internal/services/health"
	"resume-roaster/internal/shared/config"
	"resume-roaster/internal/shared/server"
	"resume-roaster/internal/shared/storage/db"
	"resume-roaster/internal/shared/storage/object"
	localstore "resume-roaster/internal/shared/storage/object/local"
	s3store "resume-roaster/internal/shared/storage/object/s3"
	"resume-roaster/internal/transform"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	ResumesRepo      resumes.Repo
	LLM              llm.Client
	ResumesService   *resumes.Service
	TransformService *transform.Service
	ContactService   *contact.Service
	Health           *health.Service
}

// Build prepares dependencies and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app, err := BuildServices(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		Health:           app.Health,
		ResumeHandler:    resumes.NewHandler(app.ResumesService),
		TransformHandler: transform.NewHandler(app.TransformService),
		ContactHandler:   contact.NewHandler(app.ContactService),
		ExportHandler:    export.NewHandler(),
	})
	return app, nil
}

// BuildServices wires storage and services without HTTP. CLIs use it directly.
func BuildServices(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	var repo resumes.Repo
	if sqlDB != nil {
		repo = &resumes.PGRepo{DB: sqlDB}
	} else {
		repo = resumes.NewMemoryRepo()
	}

	transformSvc, err := transform.NewService(llmClient, nil)
	if err != nil {
		return nil, fmt.Errorf("build transform service: %w", err)
	}

	app := &App{
		Config:           cfg,
		DB:               sqlDB,
		Store:            store,
		ResumesRepo:      repo,
		LLM:              llmClient,
		ResumesService:   resumes.NewService(repo, store, cfg.UploadRetention),
		TransformService: transformSvc,
		ContactService:   contact.NewService(contact.NewResendMailer(cfg.ResendAPIKey), cfg.ContactFrom, cfg.ContactEmail),
	}
	if sqlDB != nil {
		app.Health = health.NewService(sqlDB)
	} else {
		app.Health = health.NewService(nil)
	}
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return db.CloseShared()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Printf("bootstrap: DATABASE_URL empty; using in-memory resume records")
		return nil, nil
	}

	sqlDB, err := db.Shared(ctx, cfg.DatabaseURL, db.ServerPool.WithConfig(cfg))
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory resume records: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if _, err := db.Migrate(ctx, sqlDB); err != nil {
		_ = db.CloseShared()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.UploadsDir)
	}
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider != "openai" {
		log.Printf("bootstrap: LLM_PROVIDER=%q; AI endpoints will fail", cfg.LLMProvider)
		return llm.PlaceholderClient{}, nil
	}
	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		log.Printf("bootstrap: OPENAI_API_KEY empty; AI endpoints will fail")
		return llm.PlaceholderClient{}, nil
	}
	return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, openai.Options{
		Timeout:        cfg.OpenAITimeout,
		BreakerTrips:   cfg.BreakerTrips,
		BreakerTimeout: cfg.BreakerTimeout,
	})
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
