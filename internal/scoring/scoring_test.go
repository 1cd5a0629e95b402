package scoring

import (
	"context"
	"errors"
	"testing"

	"jobAgent/internal/config"
	"jobAgent/internal/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func nopLogger() *logger.Zap {
	return &logger.Zap{Logger: zap.NewNop()}
}

type fakeScorer struct {
	score int
	err   error
	calls int
}

func (f *fakeScorer) ScoreJob(ctx context.Context, title, description, profileSummary string) (int, error) {
	f.calls++
	return f.score, f.err
}

func testScorer(llmScorer *fakeScorer) *Scorer {
	profile := &config.Profile{
		Skills: []string{"Go", "PostgreSQL", "Kafka"},
	}
	cfg := config.Search{
		Keywords:       []string{"Backend Developer"},
		Location:       "bengaluru",
		MinJobScore:    60,
		AvoidCompanies: []string{"BodyShop Corp"},
	}
	if llmScorer != nil {
		return New(llmScorer, profile, cfg, nopLogger())
	}
	return New(nil, profile, cfg, nopLogger())
}

func TestScoreUsesLLMWhenAvailable(t *testing.T) {
	llmScorer := &fakeScorer{score: 85}
	s := testScorer(llmScorer)

	score := s.Score(context.Background(), "Backend Developer", "Go services")

	assert.Equal(t, 85, score)
	assert.Equal(t, 1, llmScorer.calls)
}

func TestScoreClampsLLMResult(t *testing.T) {
	s := testScorer(&fakeScorer{score: 140})
	assert.Equal(t, 100, s.Score(context.Background(), "x", "y"))
}

func TestScoreFallsBackOnLLMError(t *testing.T) {
	llmScorer := &fakeScorer{err: errors.New("quota exceeded")}
	s := testScorer(llmScorer)

	score := s.Score(context.Background(),
		"Backend Developer", "Go, Kafka, PostgreSQL. Office in Bengaluru")

	// 35 (роль) + 3*8 (навыки) + 10 (локация)
	assert.Equal(t, 69, score)
	assert.Equal(t, 1, llmScorer.calls)
}

func TestKeywordScoreRoleCountedOnce(t *testing.T) {
	s := testScorer(nil)

	score := s.KeywordScore("Backend Developer / backend developer position")
	assert.Equal(t, 35, score)
}

func TestKeywordScoreAvoidCompanyPenalty(t *testing.T) {
	s := testScorer(nil)

	with := s.KeywordScore("Backend Developer at BodyShop Corp, Bengaluru")
	without := s.KeywordScore("Backend Developer, Bengaluru")

	assert.Equal(t, without-20, with)
}

func TestKeywordScoreRemoteCountsAsLocation(t *testing.T) {
	s := testScorer(nil)

	assert.Equal(t, 10, s.KeywordScore("fully remote position"))
}

func TestKeywordScoreNeverNegative(t *testing.T) {
	s := testScorer(nil)

	assert.Equal(t, 0, s.KeywordScore("BodyShop Corp hiring"))
}

func TestShouldApplyThreshold(t *testing.T) {
	s := testScorer(nil)

	assert.True(t, s.ShouldApply(60))
	assert.True(t, s.ShouldApply(90))
	assert.False(t, s.ShouldApply(59))
}
