package bootstrap

import (
	"time"

	"github.com/medkoval/health-companion/internal/config"
	"github.com/medkoval/health-companion/internal/core/ports"
	"github.com/medkoval/health-companion/internal/core/usecase"
	"github.com/medkoval/health-companion/internal/infrastructure/llm/claude"
	"github.com/medkoval/health-companion/internal/infrastructure/ocr/textract"
	"github.com/medkoval/health-companion/internal/infrastructure/pdfdecode"
	"github.com/medkoval/health-companion/internal/infrastructure/resilience"
	"github.com/medkoval/health-companion/internal/session"
)

type App struct {
	Config config.Config

	Sessions  ports.SessionStore
	AnalyzeUC ports.DocumentAnalyzer
	ChatUC    ports.ChatService
}

func New(cfg config.Config) *App {
	resilienceCfg := resilience.DefaultConfig()
	resilienceCfg.BreakerEnabled = cfg.BreakerEnabled
	executor := resilience.NewExecutor(resilienceCfg)

	gateway := claude.New(
		cfg.ModelBaseURL,
		cfg.ModelAPIKey,
		cfg.ModelID,
		cfg.ModelMaxTokens,
		time.Duration(cfg.ModelTimeoutS)*time.Second,
		executor,
	)
	extractor := textract.New(cfg.OCRBaseURL, cfg.OCRAPIKey, time.Duration(cfg.OCRTimeoutS)*time.Second, executor)
	decoder := pdfdecode.New()

	classifyUC := usecase.NewClassifyDocumentUseCase(gateway)
	explainUC := usecase.NewExplainDocumentUseCase(gateway)
	analyzeUC := usecase.NewAnalyzeDocumentUseCase(classifyUC, explainUC)
	chatUC := usecase.NewChatUseCase(gateway, extractor, decoder, cfg.PDFTextMaxChars)

	return &App{
		Config:    cfg,
		Sessions:  session.NewStore(),
		AnalyzeUC: analyzeUC,
		ChatUC:    chatUC,
	}
}
