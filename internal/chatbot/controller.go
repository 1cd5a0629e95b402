package chatbot

import (
	"context"
	"time"

	"jobAgent/internal/logger"

	"go.uber.org/zap"
)

// modalSelector покрывает известные контейнеры анкеты. Появление любого из них
// означает, что отклик сопровождается вопросами.
const modalSelector = "div[class*='chatbot'], div[class*='modal'], div[class*='apply-form']"

// Config - таймауты сессии. Нулевые значения заменяются умолчаниями.
type Config struct {
	ModalWait     time.Duration // Ожидание появления модального окна
	SessionBudget time.Duration // Бюджет времени на всю фазу вопросов
	QuestionPause time.Duration // Пауза после ответа, пока рисуется следующий вопрос
}

// Controller - конечный автомат сессии чат-бота:
// WAITING_FOR_MODAL → ACTIVE → {COMPLETED, STALLED, TIMED_OUT}.
// Все зависимости внедряются интерфейсами, ни одна не глобальна.
type Controller struct {
	ui        UISurface
	detector  Detector
	resolver  Resolver
	submitter Submitter
	sink      Sink // может быть nil
	log       *logger.Zap
	cfg       Config
}

func NewController(ui UISurface, detector Detector, resolver Resolver, submitter Submitter, sink Sink, log *logger.Zap, cfg Config) *Controller {
	if cfg.ModalWait == 0 {
		cfg.ModalWait = 5 * time.Second
	}
	if cfg.SessionBudget == 0 {
		cfg.SessionBudget = 60 * time.Second
	}
	if cfg.QuestionPause == 0 {
		cfg.QuestionPause = time.Second
	}

	return &Controller{
		ui:        ui,
		detector:  detector,
		resolver:  resolver,
		submitter: submitter,
		sink:      sink,
		log:       log,
		cfg:       cfg,
	}
}

// Run ведет сессию до терминального состояния. Ошибка возвращается только
// при отказе самой UI-поверхности (драйвер умер) - всё остальное выражено
// статусом Outcome. Отсутствие модального окна - не ошибка: у большинства
// вакансий чат-бота нет.
func (c *Controller) Run(ctx context.Context) (Outcome, error) {
	start := time.Now()

	found, err := c.ui.WaitVisible(ctx, modalSelector, c.cfg.ModalWait)
	if err != nil {
		return c.outcome(StatusNoChatbot, 0, start), err
	}
	if !found {
		c.log.Info("Чат-бот не обнаружен")
		return c.outcome(StatusNoChatbot, 0, start), nil
	}

	c.log.Info("Модальное окно обнаружено")
	answered := 0

	for {
		// Кооперативная отмена: проверка бюджета в начале каждой итерации.
		// Медленная операция внутри итерации не прерывается.
		if time.Since(start) >= c.cfg.SessionBudget {
			c.log.Warn("Бюджет времени сессии исчерпан", zap.Int("answered", answered))
			return c.outcome(StatusTimedOut, answered, start), nil
		}
		if ctx.Err() != nil {
			return c.outcome(StatusTimedOut, answered, start), ctx.Err()
		}

		question, ok, err := c.detector.DetectQuestion(ctx)
		if err != nil {
			return c.outcome(StatusStalled, answered, start), err
		}

		if !ok {
			return c.finish(ctx, answered, start)
		}

		resolution := c.resolver.Resolve(ctx, question.Text)

		modality, submitted := c.submitter.SubmitAnswer(ctx, resolution.Answer)
		c.record(question.Text, resolution, modality, submitted)

		if !submitted {
			c.log.Warn("Не удалось отправить ответ",
				zap.String("question", truncate(question.Text, 80)),
				zap.String("answer", resolution.Answer),
			)
			return c.outcome(StatusStalled, answered, start), nil
		}

		answered++
		c.log.Info("Ответ отправлен",
			zap.Int("answered", answered),
			zap.String("modality", string(modality)),
		)

		// Даем следующему вопросу отрисоваться
		select {
		case <-ctx.Done():
			return c.outcome(StatusTimedOut, answered, start), ctx.Err()
		case <-time.After(c.cfg.QuestionPause):
		}
	}
}

// finish решает, чем кончилась сессия, когда вопросов больше нет:
// видимая терминальная кнопка - анкета заполнена, иначе - тупик.
func (c *Controller) finish(ctx context.Context, answered int, start time.Time) (Outcome, error) {
	_, ok, err := c.detector.DetectSubmitControl(ctx)
	if err != nil {
		return c.outcome(StatusStalled, answered, start), err
	}

	if ok {
		c.log.Info("Анкета заполнена", zap.Int("answered", answered))
		return c.outcome(StatusCompleted, answered, start), nil
	}

	c.log.Warn("Ни вопроса, ни кнопки отправки - выходим", zap.Int("answered", answered))
	return c.outcome(StatusStalled, answered, start), nil
}

func (c *Controller) record(question string, resolution Resolution, modality Modality, success bool) {
	if c.sink == nil {
		return
	}
	c.sink.Record(InteractionRecord{
		Question: question,
		Answer:   resolution.Answer,
		Strategy: resolution.Strategy,
		Modality: string(modality),
		Success:  success,
	})
}

func (c *Controller) outcome(status Status, answered int, start time.Time) Outcome {
	return Outcome{
		Status:            status,
		QuestionsAnswered: answered,
		Elapsed:           time.Since(start),
	}
}
