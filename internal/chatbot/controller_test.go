package chatbot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		ModalWait:     10 * time.Millisecond,
		SessionBudget: 5 * time.Second,
		QuestionPause: time.Millisecond,
	}
}

func TestControllerCompletesAfterThreeQuestions(t *testing.T) {
	detector := &scriptedDetector{
		questions:     []string{"Q1?", "Q2?", "Q3?"},
		submitVisible: true,
	}
	submitter := &scriptedSubmitter{ok: true}
	sink := &memorySink{}

	c := NewController(newFakeSurface(), detector, &staticResolver{answer: "Yes"}, submitter, sink, nopLogger(), fastConfig())
	outcome, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, outcome.Status)
	assert.Equal(t, 3, outcome.QuestionsAnswered)
	assert.True(t, outcome.Handled())
	assert.Len(t, sink.records, 3)
}

func TestControllerStallsWhenSubmitFails(t *testing.T) {
	detector := &scriptedDetector{questions: []string{"Q1?", "Q2?"}}
	submitter := &scriptedSubmitter{ok: false}
	sink := &memorySink{}

	c := NewController(newFakeSurface(), detector, &staticResolver{answer: "Yes"}, submitter, sink, nopLogger(), fastConfig())
	outcome, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StatusStalled, outcome.Status)
	assert.Equal(t, 0, outcome.QuestionsAnswered)

	// Ровно одна попытка: цепочка модальностей на один вопрос прогоняется один раз
	assert.Equal(t, 1, submitter.calls)
	assert.Equal(t, 1, detector.calls)

	// Неудачная попытка тоже попадает в журнал
	require.Len(t, sink.records, 1)
	assert.False(t, sink.records[0].Success)
}

func TestControllerStallsWhenNothingVisible(t *testing.T) {
	detector := &scriptedDetector{questions: nil, submitVisible: false}

	c := NewController(newFakeSurface(), detector, &staticResolver{answer: "Yes"}, &scriptedSubmitter{ok: true}, nil, nopLogger(), fastConfig())
	outcome, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StatusStalled, outcome.Status)
	assert.True(t, outcome.Handled())
}

func TestControllerNoChatbot(t *testing.T) {
	ui := newFakeSurface()
	ui.modalFound = false

	c := NewController(ui, &scriptedDetector{}, &staticResolver{answer: "Yes"}, &scriptedSubmitter{ok: true}, nil, nopLogger(), fastConfig())
	outcome, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StatusNoChatbot, outcome.Status)
	assert.False(t, outcome.Handled())
}

func TestControllerTimeoutIsWallClockBounded(t *testing.T) {
	detector := &endlessDetector{}
	cfg := Config{
		ModalWait:     10 * time.Millisecond,
		SessionBudget: 50 * time.Millisecond,
		QuestionPause: time.Millisecond,
	}

	c := NewController(newFakeSurface(), detector, &staticResolver{answer: "Yes"}, &scriptedSubmitter{ok: true}, nil, nopLogger(), cfg)

	started := time.Now()
	outcome, err := c.Run(context.Background())
	elapsed := time.Since(started)

	require.NoError(t, err)
	assert.Equal(t, StatusTimedOut, outcome.Status)

	// Выход по времени, а не по числу итераций: вопросы не кончались
	assert.GreaterOrEqual(t, elapsed, cfg.SessionBudget)
	assert.Less(t, elapsed, 5*time.Second)
	assert.Greater(t, outcome.QuestionsAnswered, 0)
	assert.True(t, outcome.Handled())
}

func TestControllerPropagatesFatalUIError(t *testing.T) {
	ui := newFakeSurface()
	ui.waitErr = errors.New("драйвер отвалился")

	c := NewController(ui, &scriptedDetector{}, &staticResolver{answer: "Yes"}, &scriptedSubmitter{ok: true}, nil, nopLogger(), fastConfig())
	_, err := c.Run(context.Background())

	assert.Error(t, err)
}

func TestControllerPropagatesDetectorError(t *testing.T) {
	detector := &scriptedDetector{detectErr: errors.New("element went stale beyond recovery")}

	c := NewController(newFakeSurface(), detector, &staticResolver{answer: "Yes"}, &scriptedSubmitter{ok: true}, nil, nopLogger(), fastConfig())
	_, err := c.Run(context.Background())

	assert.Error(t, err)
}

func TestControllerRecordsStrategyAndModality(t *testing.T) {
	detector := &scriptedDetector{questions: []string{"What is your notice period?"}, submitVisible: true}
	sink := &memorySink{}

	c := NewController(newFakeSurface(), detector, &staticResolver{answer: "30"}, &scriptedSubmitter{ok: true}, sink, nopLogger(), fastConfig())
	outcome, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, outcome.Status)

	require.Len(t, sink.records, 1)
	rec := sink.records[0]
	assert.Equal(t, "What is your notice period?", rec.Question)
	assert.Equal(t, "30", rec.Answer)
	assert.Equal(t, StrategyFallback, rec.Strategy)
	assert.Equal(t, string(ModalityText), rec.Modality)
	assert.True(t, rec.Success)
}

func TestControllerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	detector := &endlessDetector{}
	c := NewController(newFakeSurface(), detector, &staticResolver{answer: "Yes"}, &scriptedSubmitter{ok: true}, nil, nopLogger(), fastConfig())

	_, err := c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
