package chatbot

import (
	"context"
	"strings"

	"jobAgent/internal/config"
	"jobAgent/internal/llm"
	"jobAgent/internal/logger"

	"go.uber.org/zap"
)

// Имена стратегий резолвера. Пишутся в журнал взаимодействий: перекос
// в сторону fallback - сигнал, что словарь и профиль пора пополнять.
const (
	StrategyConfig   = "config"
	StrategyStore    = "store"
	StrategyKeywords = "keywords"
	StrategyLLM      = "llm"
	StrategyDefault  = "default"
	StrategyFallback = "fallback"
)

// AnswerResolver подбирает ответ по цепочке стратегий:
// статический конфиг → словарь → правила по ключевым словам → LLM → умолчания.
// Никогда не возвращает пустой ответ.
type AnswerResolver struct {
	answers        config.Answers
	static         []config.StaticPair
	store          QuestionStore
	generator      llm.AnswerGenerator // nil, если LLM не настроен
	profileSummary string
	log            *logger.Zap
}

func NewAnswerResolver(profile *config.Profile, store QuestionStore, generator llm.AnswerGenerator, log *logger.Zap) *AnswerResolver {
	return &AnswerResolver{
		answers:        profile.Answers,
		static:         profile.Static,
		store:          store,
		generator:      generator,
		profileSummary: profile.Summary(),
		log:            log,
	}
}

func (r *AnswerResolver) Resolve(ctx context.Context, question string) Resolution {
	resolution := r.resolve(ctx, question)
	r.log.Info("Ответ подобран",
		zap.String("question", truncate(question, 80)),
		zap.String("answer", resolution.Answer),
		zap.String("strategy", resolution.Strategy),
	)
	return resolution
}

func (r *AnswerResolver) resolve(ctx context.Context, question string) Resolution {
	lower := strings.ToLower(question)

	if answer := r.fromStatic(lower); answer != "" {
		return Resolution{Answer: answer, Strategy: StrategyConfig}
	}

	if r.store != nil {
		if answer, ok := r.store.LookupFuzzy(question); ok && answer != "" {
			return Resolution{Answer: answer, Strategy: StrategyStore}
		}
	}

	if answer := r.fromKeywords(lower); answer != "" {
		return Resolution{Answer: answer, Strategy: StrategyKeywords}
	}

	if answer := r.fromGenerator(ctx, question); answer != "" {
		return Resolution{Answer: answer, Strategy: StrategyLLM}
	}

	if answer := r.smartDefault(lower); answer != "" {
		return Resolution{Answer: answer, Strategy: StrategyDefault}
	}

	answer := r.answers.DefaultAnswer
	if answer == "" {
		answer = "Yes"
	}
	return Resolution{Answer: answer, Strategy: StrategyFallback}
}

// fromStatic ищет ключ статической таблицы как подстроку вопроса.
func (r *AnswerResolver) fromStatic(lowerQuestion string) string {
	for _, pair := range r.static {
		if pair.Key == "" {
			continue
		}
		if strings.Contains(lowerQuestion, strings.ToLower(pair.Key)) {
			return pair.Answer
		}
	}
	return ""
}

func (r *AnswerResolver) fromKeywords(lowerQuestion string) string {
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lowerQuestion, w) {
				return true
			}
		}
		return false
	}

	switch {
	case strings.Contains(lowerQuestion, "current") && strings.Contains(lowerQuestion, "ctc"):
		return r.answers.CurrentCTC
	case strings.Contains(lowerQuestion, "expected") && strings.Contains(lowerQuestion, "ctc"):
		return r.answers.ExpectedCTC
	case has("experience", "years"):
		return r.answers.Experience
	case strings.Contains(lowerQuestion, "notice"):
		return r.answers.NoticePeriod
	case has("location", "relocate"):
		return r.answers.PreferredLocation
	}

	return ""
}

// fromGenerator спрашивает LLM. Любая ошибка сервиса глотается:
// резолвер просто проваливается на следующую стратегию.
func (r *AnswerResolver) fromGenerator(ctx context.Context, question string) string {
	if r.generator == nil {
		return ""
	}

	answer, err := r.generator.GenerateAnswer(ctx, question, r.profileSummary)
	if err != nil {
		r.log.Debug("Генеративный сервис не ответил", zap.Error(err))
		return ""
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return ""
	}

	// Новый ответ запоминаем, чтобы в следующий раз не ходить в сеть
	if r.store != nil {
		if err := r.store.Add(question, answer); err != nil {
			r.log.Warn("Не удалось сохранить ответ в словарь", zap.Error(err))
		}
	}

	return answer
}

var yesNoIndicators = []string{
	"are you", "do you", "can you", "will you",
	"comfortable", "willing", "able to",
}

func (r *AnswerResolver) smartDefault(lowerQuestion string) string {
	for _, indicator := range yesNoIndicators {
		if strings.Contains(lowerQuestion, indicator) {
			return "Yes"
		}
	}

	if strings.Contains(lowerQuestion, "location") {
		return r.answers.PreferredLocation
	}

	return ""
}
