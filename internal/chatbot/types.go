// Package chatbot реализует цикл вопрос-ответ для анкеты отклика на вакансию:
// поиск вопроса в модальном окне, подбор ответа и отправку через подходящее
// поле ввода. Контроллер собирается из интерфейсов, поэтому варианты
// (с LLM и без) отличаются только внедренным резолвером.
package chatbot

import (
	"context"
	"time"
)

// Element - минимальная поверхность элемента UI, которую используют
// детектор и сабмиттер. Реализуется браузерным драйвером и тестовыми дублерами.
type Element interface {
	Text() (string, error)
	Click() error
	Fill(value string) error
	IsVisible() (bool, error)
	IsEnabled() (bool, error)
	IsChecked() (bool, error)
	Attr(name string) (string, error)
	SelectByText(text string) error
	SelectByValue(value string) error
	Options() ([]Option, error)
}

// Option - один пункт выпадающего списка.
type Option struct {
	Text  string
	Value string
}

// UISurface - доступ к текущему состоянию страницы.
type UISurface interface {
	// QueryAll возвращает все элементы по CSS селектору. Пустой результат - не ошибка.
	QueryAll(selector string) ([]Element, error)

	// WaitVisible ждет появления видимого элемента. false без ошибки означает,
	// что элемент так и не появился за отведенное время.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) (bool, error)
}

// Question - вопрос, извлеченный из UI. Живет один цикл детекции.
type Question struct {
	Text     string
	Strategy string // имя локатора, который нашел вопрос
	El       Element
}

// Resolution - подобранный ответ и имя стратегии, которая его дала.
type Resolution struct {
	Answer   string
	Strategy string
}

// Resolver подбирает ответ на вопрос. Всегда возвращает непустой ответ.
type Resolver interface {
	Resolve(ctx context.Context, question string) Resolution
}

// Modality - тип поля ввода, через которое ушел ответ.
type Modality string

const (
	ModalityText     Modality = "text"
	ModalitySelect   Modality = "select"
	ModalityRadio    Modality = "radio"
	ModalityCheckbox Modality = "checkbox"
	ModalityNone     Modality = "none"
)

// Submitter вводит ответ в форму и продвигает её дальше.
type Submitter interface {
	// SubmitAnswer возвращает модальность, принявшую ответ, и признак успеха.
	// false означает, что ни одно поле не приняло ответ или форма не продвинулась.
	SubmitAnswer(ctx context.Context, answer string) (Modality, bool)
}

// Detector ищет текущий вопрос и терминальную кнопку отправки.
type Detector interface {
	DetectQuestion(ctx context.Context) (Question, bool, error)
	DetectSubmitControl(ctx context.Context) (Element, bool, error)
}

// QuestionStore - словарь ранее встреченных вопросов.
type QuestionStore interface {
	LookupFuzzy(question string) (string, bool)
	Add(question, answer string) error
}

// InteractionRecord - одна запись журнала взаимодействий.
type InteractionRecord struct {
	Question string
	Answer   string
	Strategy string
	Modality string
	Success  bool
}

// Sink принимает записи журнала. Журнал append-only и живым циклом не читается.
type Sink interface {
	Record(rec InteractionRecord)
}

// Status - итоговое состояние сессии чат-бота.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusStalled   Status = "stalled"
	StatusTimedOut  Status = "timed_out"
	StatusNoChatbot Status = "no_chatbot"
)

// Outcome - результат одной сессии.
type Outcome struct {
	Status            Status
	QuestionsAnswered int
	Elapsed           time.Duration
}

// Handled сообщает вызывающему, была ли анкета обработана. Исторически
// completed, stalled и timed_out все считаются "обработано" - вызывающий,
// которому важна разница, должен смотреть на Status.
func (o Outcome) Handled() bool {
	return o.Status != StatusNoChatbot
}
