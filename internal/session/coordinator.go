// Package session coordinates adaptive tutoring turns: load the
// learner's profile, plan the next move, generate content, grade the
// answer, and append the result to the progress log.
//
// A turn has two halves. Opening plans a position and produces a lesson
// with a question; closing grades the answer to that question, records
// the attempt, and plans the follow-up. AI failures abort the turn
// before anything is written, so reopening replans the identical
// position.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hrithikpandeyhp/cortex/internal/curriculum"
	"github.com/hrithikpandeyhp/cortex/internal/mastery"
	"github.com/hrithikpandeyhp/cortex/internal/planner"
	"github.com/hrithikpandeyhp/cortex/internal/progress"
	"github.com/hrithikpandeyhp/cortex/internal/tutor"
)

const defaultTurnTimeout = 30 * time.Second

// Config holds coordinator settings. The zero value selects defaults.
type Config struct {
	// TurnTimeout bounds each AI call within a turn. Zero → 30s.
	TurnTimeout time.Duration
}

// Deps are the coordinator's collaborators. All fields except Logger are
// required.
type Deps struct {
	Attempts  progress.AttemptRepo
	Snapshots progress.SnapshotRepo
	Content   ContentService
	Graph     *curriculum.Graph
	Model     *mastery.Model
	Planner   *planner.Planner
	Logger    *zap.Logger
}

// Coordinator runs tutoring turns for any number of learners. Turns for
// the same learner are serialized; different learners proceed
// concurrently.
type Coordinator struct {
	attempts  progress.AttemptRepo
	snapshots progress.SnapshotRepo
	content   ContentService
	graph     *curriculum.Graph
	model     *mastery.Model
	planner   *planner.Planner
	timeout   time.Duration
	logger    *zap.Logger

	locks keyedMutex
}

// NewCoordinator wires a coordinator from its dependencies.
func NewCoordinator(deps Deps, cfg Config) (*Coordinator, error) {
	switch {
	case deps.Attempts == nil:
		return nil, fmt.Errorf("session: attempt repo is required")
	case deps.Snapshots == nil:
		return nil, fmt.Errorf("session: snapshot repo is required")
	case deps.Content == nil:
		return nil, fmt.Errorf("session: content service is required")
	case deps.Graph == nil:
		return nil, fmt.Errorf("session: curriculum graph is required")
	case deps.Model == nil:
		return nil, fmt.Errorf("session: mastery model is required")
	case deps.Planner == nil:
		return nil, fmt.Errorf("session: planner is required")
	}

	timeout := cfg.TurnTimeout
	if timeout <= 0 {
		timeout = defaultTurnTimeout
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Coordinator{
		attempts:  deps.Attempts,
		snapshots: deps.Snapshots,
		content:   deps.Content,
		graph:     deps.Graph,
		model:     deps.Model,
		planner:   deps.Planner,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// RunTurn executes one turn half for a learner. A request without a
// Response opens a turn; a request carrying one closes it. On any
// *tutor.AIServiceError the turn aborts with zero writes and the next
// open replans the same position.
func (c *Coordinator) RunTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	if req.LearnerID == "" {
		return nil, fmt.Errorf("session: learner ID is required")
	}

	unlock := c.locks.lock(req.LearnerID)
	defer unlock()

	if req.Response == nil {
		return c.openTurn(ctx, req.LearnerID)
	}
	return c.closeTurn(ctx, req.LearnerID, *req.Response)
}

// openTurn plans the next position and, when there is something to
// teach, generates the lesson for it. No writes happen here.
func (c *Coordinator) openTurn(ctx context.Context, learnerID string) (*TurnResult, error) {
	profile, err := c.loadProfile(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	decision, _, err := c.plan(ctx, learnerID, profile)
	if err != nil {
		return nil, err
	}

	result := &TurnResult{Decision: decision}
	if !decision.Action.Teaches() {
		return result, nil
	}

	topic, err := c.graph.Topic(decision.TopicID)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	lessonCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	lesson, err := c.content.GenerateLesson(lessonCtx, tutor.LessonInput{
		Topic:      topic,
		Difficulty: decision.Difficulty,
	})
	if err != nil {
		return nil, err
	}

	result.Lesson = lesson
	result.Turn = &Turn{TopicID: topic.ID, Difficulty: decision.Difficulty, Question: lesson.Question}
	return result, nil
}

// closeTurn grades the answer, appends the attempt, folds it into the
// profile, saves the snapshot, and plans the follow-up. Grading runs
// before any write so an AI failure leaves the log untouched.
func (c *Coordinator) closeTurn(ctx context.Context, learnerID string, resp Response) (*TurnResult, error) {
	if resp.Turn.TopicID == "" {
		return nil, fmt.Errorf("session: response carries no open turn")
	}
	topic, err := c.graph.Topic(resp.Turn.TopicID)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	modality := resp.Modality
	if modality == "" {
		modality = progress.ModalityText
	}

	profile, err := c.loadProfile(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	gradeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	grade, err := c.content.Grade(gradeCtx, tutor.GradeInput{
		Topic:    topic,
		Question: resp.Turn.Question,
		Answer:   resp.Answer,
	})
	if err != nil {
		return nil, err
	}

	record, err := c.attempts.Append(ctx, learnerID, progress.Attempt{
		TopicID:    topic.ID,
		Difficulty: resp.Turn.Difficulty,
		Score:      grade.Score,
		Modality:   modality,
	})
	if err != nil {
		return nil, err
	}

	state := c.model.Advance(profile, *record)
	c.saveSnapshot(ctx, profile, record.Sequence)

	decision, _, err := c.plan(ctx, learnerID, profile)
	if err != nil {
		return nil, err
	}

	return &TurnResult{
		Decision: decision,
		Grade:    grade,
		State:    &state,
		Record:   record,
	}, nil
}

// loadProfile restores the learner's profile: snapshot plus log tail
// when a usable snapshot exists, full log replay otherwise.
func (c *Coordinator) loadProfile(ctx context.Context, learnerID string) (*mastery.Profile, error) {
	snap, err := c.snapshots.Latest(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return c.rebuildProfile(ctx, learnerID)
	}

	profile := mastery.NewProfile(learnerID)
	if err := json.Unmarshal(snap.Data, profile); err != nil {
		c.logger.Warn("snapshot decode failed, replaying attempt log",
			zap.String("learner", learnerID), zap.Error(err))
		return c.rebuildProfile(ctx, learnerID)
	}
	profile.LearnerID = learnerID

	tail, err := c.attempts.HistorySince(ctx, learnerID, snap.Sequence)
	if err != nil {
		return nil, err
	}
	for _, rec := range tail {
		c.model.Advance(profile, rec)
	}
	return profile, nil
}

// rebuildProfile derives the profile from the full attempt log. A log
// the model rejects falls back to zero mastery; the log itself stays in
// place for inspection.
func (c *Coordinator) rebuildProfile(ctx context.Context, learnerID string) (*mastery.Profile, error) {
	history, err := c.attempts.History(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	profile, err := c.model.Rebuild(learnerID, history)
	if err != nil {
		c.logger.Warn("attempt log rejected during rebuild, starting from zero mastery",
			zap.String("learner", learnerID), zap.Error(err))
		return mastery.NewProfile(learnerID), nil
	}
	return profile, nil
}

// plan decides the next move, recovering from profiles the planner
// rejects: first by rebuilding from the log, then by dropping an active
// position the curriculum no longer knows.
func (c *Coordinator) plan(ctx context.Context, learnerID string, profile *mastery.Profile) (planner.Decision, *mastery.Profile, error) {
	decision, err := c.planner.Decide(profile)
	if err == nil {
		return decision, profile, nil
	}
	var invalid *mastery.InvalidStateError
	if !errors.As(err, &invalid) {
		return planner.Decision{}, nil, err
	}

	c.logger.Warn("profile rejected by planner, replaying attempt log",
		zap.String("learner", learnerID), zap.String("reason", invalid.Reason))
	profile, err = c.rebuildProfile(ctx, learnerID)
	if err != nil {
		return planner.Decision{}, nil, err
	}

	decision, err = c.planner.Decide(profile)
	if err == nil {
		return decision, profile, nil
	}
	if !errors.As(err, &invalid) {
		return planner.Decision{}, nil, err
	}

	// The log's latest attempt references a topic the curriculum no
	// longer has. Drop the position and select over the whole graph.
	c.logger.Warn("active position not in curriculum, reselecting",
		zap.String("learner", learnerID), zap.String("reason", invalid.Reason))
	profile.ActiveTopic, profile.ActiveDifficulty = "", 0

	decision, err = c.planner.Decide(profile)
	if err != nil {
		return planner.Decision{}, nil, err
	}
	return decision, profile, nil
}

// saveSnapshot caches the profile at a log position. The snapshot is a
// pure optimization, so a failed save only warns: the attempt is already
// durable and the next load replays the log.
func (c *Coordinator) saveSnapshot(ctx context.Context, profile *mastery.Profile, seq int64) {
	data, err := json.Marshal(profile)
	if err != nil {
		c.logger.Warn("snapshot encode failed",
			zap.String("learner", profile.LearnerID), zap.Error(err))
		return
	}
	err = c.snapshots.Save(ctx, &progress.Snapshot{
		LearnerID: profile.LearnerID,
		Sequence:  seq,
		Data:      data,
	})
	if err != nil {
		c.logger.Warn("snapshot save failed",
			zap.String("learner", profile.LearnerID), zap.Error(err))
	}
}
