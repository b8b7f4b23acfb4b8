package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	assessorinadapter "intervue/internal/modules/assessor/adapter/in"
	assessoroutadapter "intervue/internal/modules/assessor/adapter/out"
	assessorout "intervue/internal/modules/assessor/port/out"
	assessorservice "intervue/internal/modules/assessor/service"
	assessorusecase "intervue/internal/modules/assessor/usecase"
	candidateinadapter "intervue/internal/modules/candidate/adapter/in"
	candidateoutadapter "intervue/internal/modules/candidate/adapter/out"
	candidatein "intervue/internal/modules/candidate/port/in"
	candidateservice "intervue/internal/modules/candidate/service"
	candidateusecase "intervue/internal/modules/candidate/usecase"
	intakeinadapter "intervue/internal/modules/intake/adapter/in"
	intakeoutadapter "intervue/internal/modules/intake/adapter/out"
	intakein "intervue/internal/modules/intake/port/in"
	intakeservice "intervue/internal/modules/intake/service"
	intakeusecase "intervue/internal/modules/intake/usecase"
	interviewinadapter "intervue/internal/modules/interview/adapter/in"
	interviewoutadapter "intervue/internal/modules/interview/adapter/out"
	interviewin "intervue/internal/modules/interview/port/in"
	interviewservice "intervue/internal/modules/interview/service"
	interviewusecase "intervue/internal/modules/interview/usecase"
	"intervue/internal/platform/clock"
	"intervue/internal/platform/config"
	"intervue/internal/platform/id"
	"intervue/internal/platform/logging"
	uiapp "intervue/internal/ui/app"
)

// App wires every module once and exposes the inbound surfaces the CLI and
// TUI run against.
type App struct {
	CandidateCLI candidateinadapter.CLIHandler
	IntakeCLI    intakeinadapter.CLIHandler
	InterviewCLI *interviewinadapter.CLIHandler
	AssessorCLI  *assessorinadapter.CLIHandler

	CandidateUC candidatein.Usecase
	IntakeUC    intakein.Usecase
	InterviewUC interviewin.Usecase

	Logger *zap.Logger
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	logger, err := logging.New(cfg.LogPath, false)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	candidateStore := candidateoutadapter.NewFileCandidateStore(cfg.DataDir)
	candidateProjector, err := candidateoutadapter.NewSQLiteCandidateProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new candidate projector: %w", err)
	}
	candidateUC := candidateusecase.NewInteractor(
		candidateservice.NewCandidateService(clk, ids, candidateStore, candidateProjector),
	)

	intakeUC := intakeusecase.NewInteractor(
		intakeservice.NewIntakeService(
			intakeoutadapter.NewPDFResumeReader(),
			intakeoutadapter.NewDocxResumeReader(),
		),
		intakeoutadapter.NewCandidateRegistryAdapter(candidateUC),
	)

	var generator assessorout.ContentGenerator
	apiKey := cfg.APIKey()
	if cfg.AI.Offline || apiKey == "" {
		logger.Info("assessor running offline, fallback content only")
		generator = assessoroutadapter.NewOfflineGenerator()
	} else {
		generator, err = assessoroutadapter.NewGeminiGenerator(
			ctx, apiKey, cfg.AI.Model, cfg.AI.BreakerInterval, cfg.AI.BreakerTimeout, logger)
		if err != nil {
			return nil, fmt.Errorf("new gemini generator: %w", err)
		}
	}
	assessorUC := assessorusecase.NewInteractor(
		assessorservice.NewAssessorService(clk, generator, logger),
	)

	assessorBridge := interviewoutadapter.NewAssessorAdapter(assessorUC)
	interviewUC := interviewusecase.NewInteractor(interviewservice.NewInterviewService(
		clk,
		interviewoutadapter.NewCandidateDirectoryAdapter(candidateUC),
		assessorBridge,
		assessorBridge,
		interviewoutadapter.NewFileSnapshotStore(cfg.DataDir),
		logger,
	))

	return &App{
		CandidateCLI: candidateinadapter.NewCLIHandler(candidateUC),
		IntakeCLI:    intakeinadapter.NewCLIHandler(intakeUC),
		InterviewCLI: interviewinadapter.NewCLIHandler(interviewUC),
		AssessorCLI:  assessorinadapter.NewCLIHandler(assessorUC),
		CandidateUC:  candidateUC,
		IntakeUC:     intakeUC,
		InterviewUC:  interviewUC,
		Logger:       logger,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.InterviewUC, app.IntakeUC, app.CandidateUC)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
