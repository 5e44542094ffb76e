// cmd/container.go
//
// Root composition root. Owns infrastructure (DB, Redis, FS) and composes
// bounded-context containers. This is the only place that knows about ALL modules.
package main

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/casedesk/casedesk/pkg/ai/providers/aiopenai"
	"github.com/casedesk/casedesk/pkg/ai/vision"
	"github.com/casedesk/casedesk/pkg/ai/vision/providers/visionanthropic"
	"github.com/casedesk/casedesk/pkg/ai/vision/providers/visionbedrock"
	"github.com/casedesk/casedesk/pkg/ai/vision/providers/visiongemini"
	"github.com/casedesk/casedesk/pkg/ai/vision/providers/visionopenai"
	"github.com/casedesk/casedesk/pkg/ai/vision/providers/visiontesseract"
	"github.com/casedesk/casedesk/pkg/ai/vision/visionredis"
	"github.com/casedesk/casedesk/pkg/casefile/casefileapi"
	"github.com/casedesk/casedesk/pkg/casefile/casefileinfra"
	"github.com/casedesk/casedesk/pkg/casefile/casefilesrv"
	"github.com/casedesk/casedesk/pkg/config"
	"github.com/casedesk/casedesk/pkg/contact/contactapi"
	"github.com/casedesk/casedesk/pkg/contact/contactinfra"
	"github.com/casedesk/casedesk/pkg/contact/contactsrv"
	"github.com/casedesk/casedesk/pkg/docstore/docstoreapi"
	"github.com/casedesk/casedesk/pkg/docstore/docstoreinfra"
	"github.com/casedesk/casedesk/pkg/docstore/docstoresrv"
	"github.com/casedesk/casedesk/pkg/fsx"
	"github.com/casedesk/casedesk/pkg/fsx/fsxlocal"
	"github.com/casedesk/casedesk/pkg/fsx/fsxs3"
	"github.com/casedesk/casedesk/pkg/imaging"
	"github.com/casedesk/casedesk/pkg/interview"
	"github.com/casedesk/casedesk/pkg/interview/interviewapi"
	"github.com/casedesk/casedesk/pkg/interview/interviewinfra"
	"github.com/casedesk/casedesk/pkg/logx"
	"github.com/casedesk/casedesk/pkg/notifx"
	"github.com/casedesk/casedesk/pkg/notifx/notifxconsole"
	"github.com/casedesk/casedesk/pkg/notifx/notifxses"
	"github.com/casedesk/casedesk/pkg/questionnaire/questionnaireapi"
	"github.com/casedesk/casedesk/pkg/questionnaire/questionnaireinfra"
	"github.com/casedesk/casedesk/pkg/questionnaire/questionnairesrv"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Container holds shared infrastructure and composed module containers.
type Container struct {
	Config *config.Config

	// Infrastructure (shared across all modules)
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Vision pipeline
	ResultCache vision.ResultCache
	Runner      *vision.Runner

	// Services
	CaseService          *casefilesrv.Service
	DocumentService      *docstoresrv.Service
	InterviewService     *interview.Service
	QuestionnaireService *questionnairesrv.Service
	ContactService       *contactsrv.Service

	// HTTP handlers
	CaseHandlers          *casefileapi.Handlers
	DocumentHandlers      *docstoreapi.Handlers
	InterviewHandlers     *interviewapi.Handlers
	QuestionnaireHandlers *questionnaireapi.Handlers
	ContactHandlers       *contactapi.Handlers

	awsCfg    *aws.Config
	awsCfgErr error
}

func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing application container...")

	c := &Container{Config: cfg}

	c.initInfrastructure()
	c.initModules()

	logx.Info("✅ Application container initialized")
	return c
}

// ---------------------------------------------------------------------------
// Infrastructure: DB, Redis, file storage
// ---------------------------------------------------------------------------

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")

	// 1. Database
	db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
	c.DB = db
	logx.Info("  ✅ Database connected")

	// 2. Redis
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Address(),
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Fatalf("Failed to connect to Redis: %v (Redis is required)", err)
	}
	logx.Info("  ✅ Redis connected")

	// 3. File storage
	c.initFileStorage()

	logx.Info("✅ Infrastructure initialized")
}

func (c *Container) initFileStorage() {
	switch c.Config.Storage.Mode {
	case "s3":
		cfg := c.mustAWSConfig()
		c.S3Client = s3.NewFromConfig(cfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, c.Config.Storage.AWSBucket, "")
		logx.Infof("  ✅ S3 file system configured (bucket: %s, region: %s)",
			c.Config.Storage.AWSBucket, c.Config.Storage.AWSRegion)

	case "local":
		localFS, err := fsxlocal.NewLocalFileSystem(c.Config.Storage.LocalDir)
		if err != nil {
			logx.Fatalf("Failed to initialize local file system: %v", err)
		}
		c.FileSystem = localFS
		logx.Infof("  ✅ Local file system configured (path: %s)", localFS.GetBasePath())

	default:
		logx.Fatalf("Unknown STORAGE_MODE: %s (use 'local' or 's3')", c.Config.Storage.Mode)
	}
}

// mustAWSConfig loads the shared AWS SDK config once.
func (c *Container) mustAWSConfig() aws.Config {
	if c.awsCfg == nil && c.awsCfgErr == nil {
		cfg, err := awsConfig.LoadDefaultConfig(context.Background(),
			awsConfig.WithRegion(c.Config.Storage.AWSRegion))
		if err != nil {
			c.awsCfgErr = err
		} else {
			c.awsCfg = &cfg
		}
	}
	if c.awsCfgErr != nil {
		logx.Fatalf("Unable to load AWS SDK config: %v", c.awsCfgErr)
	}
	return *c.awsCfg
}

// ---------------------------------------------------------------------------
// Module composition, one bounded context per init function
// ---------------------------------------------------------------------------

func (c *Container) initModules() {
	logx.Info("📦 Initializing modules...")

	c.initVision()
	c.initCases()
	c.initDocuments()
	c.initQuestionnaire()
	c.initInterview()
	c.initContact()

	logx.Info("✅ Modules initialized")
}

func (c *Container) initVision() {
	readers := []vision.Reader{}
	for _, name := range c.Config.Vision.Providers {
		reader := c.buildReader(name)
		if reader == nil {
			continue
		}
		readers = append(readers, reader)
		logx.Infof("  ✅ Vision provider enabled: %s", name)
	}
	if len(readers) == 0 {
		logx.Fatalf("No vision providers could be enabled (VISION_PROVIDERS=%v)", c.Config.Vision.Providers)
	}

	c.ResultCache = visionredis.NewRedisCache(c.Redis, c.Config.Redis.TTL)
	c.Runner = vision.NewRunner(vision.NewRegistry(readers...), c.ResultCache,
		vision.WithCallTimeout(c.Config.Vision.CallTimeout),
		vision.WithParallel(),
	)
}

func (c *Container) buildReader(name string) vision.Reader {
	switch name {
	case "anthropic":
		return visionanthropic.NewReader("")
	case "openai":
		return visionopenai.NewReader("")
	case "gemini":
		reader, err := visiongemini.NewReader(context.Background(), "")
		if err != nil {
			logx.Warnf("  ⚠️ Gemini provider disabled: %v", err)
			return nil
		}
		return reader
	case "bedrock":
		return visionbedrock.NewReader(c.mustAWSConfig())
	case "tesseract":
		reader, err := visiontesseract.NewReader()
		if err != nil {
			logx.Warnf("  ⚠️ Tesseract provider disabled: %v", err)
			return nil
		}
		return reader
	default:
		logx.Warnf("  ⚠️ Unknown vision provider ignored: %s", name)
		return nil
	}
}

func (c *Container) initCases() {
	repo := casefileinfra.NewPostgresCaseRepository(c.DB)
	c.CaseService = casefilesrv.NewService(repo)
	c.CaseHandlers = casefileapi.NewHandlers(c.CaseService)
}

func (c *Container) initDocuments() {
	normalizer := imaging.NewNormalizer(
		imaging.Options{
			MaxBytes:       c.Config.Vision.MaxImageBytes,
			ContrastFactor: c.Config.Vision.ContrastFactor,
			DownscaleStep:  c.Config.Vision.DownscaleStep,
			DownscaleFloor: c.Config.Vision.DownscaleFloor,
			MinDimension:   c.Config.Vision.MinDimension,
			RasterDPI:      c.Config.Vision.RasterDPI,
		},
		imaging.NewRasterizer(imaging.RasterConfig{DPI: c.Config.Vision.RasterDPI}),
	)

	repo := docstoreinfra.NewPostgresRecordRepository(c.DB)
	c.DocumentService = docstoresrv.NewService(repo, c.FileSystem, normalizer, c.Runner, c.ResultCache,
		docstoresrv.WithResultPrecedence(c.Config.Vision.Providers))
	c.DocumentHandlers = docstoreapi.NewHandlers(c.DocumentService)
}

func (c *Container) initQuestionnaire() {
	repo := questionnaireinfra.NewPostgresQuestionnaireRepository(c.DB)
	c.QuestionnaireService = questionnairesrv.NewService(repo, repo)
	c.QuestionnaireHandlers = questionnaireapi.NewHandlers(c.QuestionnaireService)
}

func (c *Container) initInterview() {
	chat := aiopenai.NewOpenAIProvider("")
	c.InterviewService = interview.NewService(chat,
		interview.WithSummaryStore(interviewinfra.NewPostgresSummaryRepository(c.DB)))
	c.InterviewHandlers = interviewapi.NewHandlers(c.InterviewService, c.QuestionnaireService)
}

func (c *Container) initContact() {
	var provider notifx.Sender
	switch c.Config.Notify.Backend {
	case "ses":
		provider = notifxses.NewSESProvider(ses.NewFromConfig(c.mustAWSConfig()))
		logx.Info("  ✅ SES notification backend configured")
	default:
		provider = notifxconsole.NewConsoleProvider()
		logx.Info("  ✅ Console notification backend configured")
	}

	notifier := notifx.NewClient(provider, c.Config.Notify.SESSender)

	repo := contactinfra.NewPostgresInquiryRepository(c.DB)
	svc, err := contactsrv.NewService(repo, notifier, c.Config.Notify.SESTo)
	if err != nil {
		logx.Fatalf("Failed to initialize contact service: %v", err)
	}
	c.ContactService = svc
	c.ContactHandlers = contactapi.NewHandlers(svc)
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("  ✅ Database connection closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("  ✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup complete")
}
