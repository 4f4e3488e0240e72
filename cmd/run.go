package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hrithikpandeyhp/cortex/internal/config"
	"github.com/hrithikpandeyhp/cortex/internal/curriculum"
	"github.com/hrithikpandeyhp/cortex/internal/llm"
	"github.com/hrithikpandeyhp/cortex/internal/logging"
	"github.com/hrithikpandeyhp/cortex/internal/mastery"
	"github.com/hrithikpandeyhp/cortex/internal/planner"
	"github.com/hrithikpandeyhp/cortex/internal/progress"
	"github.com/hrithikpandeyhp/cortex/internal/session"
	"github.com/hrithikpandeyhp/cortex/internal/tutor"
)

// env bundles the dependencies most subcommands need: config, logger,
// store, curriculum, and the mastery/planning engine. The LLM provider
// is built separately so read-only commands never touch it.
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *progress.Store
	graph   *curriculum.Graph
	model   *mastery.Model
	planner *planner.Planner
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := progress.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	graph, err := loadGraph(cfg)
	if err != nil {
		st.Close()
		return nil, err
	}

	model, err := mastery.NewModel(cfg.Engine.MasteryParams())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("build mastery model: %w", err)
	}
	pl, err := planner.New(graph, model, cfg.Engine.PlannerParams())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("build planner: %w", err)
	}

	return &env{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		graph:   graph,
		model:   model,
		planner: pl,
	}, nil
}

func (e *env) Close() {
	_ = e.store.Close()
	_ = e.logger.Sync()
}

// openStore opens just the database, for commands that inspect or modify
// stored data without running the engine.
func openStore(cmd *cobra.Command) (*progress.Store, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := progress.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func loadGraph(cfg *config.Config) (*curriculum.Graph, error) {
	if cfg.Curriculum.Dir == "" {
		return curriculum.Default(), nil
	}
	g, err := curriculum.LoadDir(cfg.Curriculum.Dir)
	if err != nil {
		return nil, fmt.Errorf("load curriculum from %s: %w", cfg.Curriculum.Dir, err)
	}
	return g, nil
}

// coordinator builds the turn coordinator. It requires a configured LLM
// provider and fails with setup instructions when none is available.
func (e *env) coordinator(ctx context.Context) (*session.Coordinator, error) {
	provider, err := llm.NewProviderFromEnv(ctx, e.store.Requests())
	if err != nil {
		return nil, err
	}
	content := tutor.NewService(provider, tutor.DefaultConfig())

	return session.NewCoordinator(session.Deps{
		Attempts:  e.store.Attempts(),
		Snapshots: e.store.Snapshots(),
		Content:   content,
		Graph:     e.graph,
		Model:     e.model,
		Planner:   e.planner,
		Logger:    e.logger,
	}, session.Config{TurnTimeout: e.cfg.Session.TurnTimeout})
}

// profileFor rebuilds the learner's mastery profile from the attempt log.
func (e *env) profileFor(ctx context.Context, learnerID string) (*mastery.Profile, error) {
	history, err := e.store.Attempts().History(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("read attempt history: %w", err)
	}
	profile, err := e.model.Rebuild(learnerID, history)
	if err != nil {
		return nil, fmt.Errorf("rebuild mastery: %w", err)
	}
	return profile, nil
}

// learnerByName finds an existing learner without creating one.
func learnerByName(ctx context.Context, st *progress.Store, name string) (*progress.Learner, error) {
	learners, err := st.Learners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	for i := range learners {
		if learners[i].Name == name {
			return &learners[i], nil
		}
	}
	return nil, nil
}
