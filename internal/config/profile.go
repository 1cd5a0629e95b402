package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Profile описывает анкету пользователя: личные данные, ответы для чат-бота
// и предпочтения по поиску вакансий. Хранится в отдельном JSON-файле,
// чтобы пользователь мог править ответы руками.
type Profile struct {
	Credentials Credentials   `json:"credentials"`
	Personal    Personal      `json:"personal_info"`
	Answers     Answers       `json:"chatbot_answers"`
	Static      []StaticPair  `json:"static_answers"`
	Skills      []string      `json:"skills"`
	Search      ProfileSearch `json:"job_search"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Personal struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Phone     string `json:"phone"`
}

// Answers содержит значения, которые резолвер подставляет по ключевым словам.
type Answers struct {
	Experience        string `json:"experience"`
	CurrentCTC        string `json:"current_ctc"`
	ExpectedCTC       string `json:"expected_ctc"`
	NoticePeriod      string `json:"notice_period"`
	PreferredLocation string `json:"preferred_location"`
	DefaultAnswer     string `json:"default_answer"`
}

// StaticPair - пара ключ→ответ для первой стратегии резолвера.
// Ключ сравнивается как подстрока вопроса без учета регистра.
type StaticPair struct {
	Key    string `json:"key"`
	Answer string `json:"answer"`
}

type ProfileSearch struct {
	Keywords        []string `json:"keywords"`
	Location        string   `json:"location"`
	PagesPerKeyword int      `json:"pages_per_keyword"`
	MaxApplications int      `json:"max_applications_per_session"`
	MinJobScore     int      `json:"min_job_score"`
	AvoidCompanies  []string `json:"avoid_companies"`
}

func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		profile := defaultProfile()
		if err := SaveProfile(path, profile); err != nil {
			return nil, fmt.Errorf("ошибка создания профиля по умолчанию: %w", err)
		}
		return profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения профиля: %w", err)
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("ошибка разбора профиля: %w", err)
	}

	applyProfileDefaults(&profile)
	return &profile, nil
}

func SaveProfile(path string, profile *Profile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultProfile() *Profile {
	profile := &Profile{
		Personal: Personal{FirstName: "YOUR_FIRSTNAME", LastName: "YOUR_LASTNAME"},
		Answers: Answers{
			Experience:        "5",
			CurrentCTC:        "15",
			ExpectedCTC:       "20",
			NoticePeriod:      "30",
			PreferredLocation: "Bengaluru",
			DefaultAnswer:     "Yes",
		},
		Search: ProfileSearch{
			Keywords:        []string{"Python Developer", "Data Engineer"},
			Location:        "bengaluru",
			PagesPerKeyword: 3,
			MaxApplications: 20,
			MinJobScore:     60,
		},
	}
	return profile
}

func applyProfileDefaults(profile *Profile) {
	if profile.Answers.DefaultAnswer == "" {
		profile.Answers.DefaultAnswer = "Yes"
	}
	if profile.Answers.PreferredLocation == "" {
		profile.Answers.PreferredLocation = profile.Search.Location
	}
	if profile.Search.PagesPerKeyword == 0 {
		profile.Search.PagesPerKeyword = 3
	}
	if profile.Search.MaxApplications == 0 {
		profile.Search.MaxApplications = 20
	}
}

// Summary возвращает компактное описание профиля для промпта LLM.
func (p *Profile) Summary() string {
	return fmt.Sprintf(
		"Experience: %s years; Current CTC: %s LPA; Expected CTC: %s LPA; Notice period: %s days; Preferred location: %s",
		p.Answers.Experience, p.Answers.CurrentCTC, p.Answers.ExpectedCTC,
		p.Answers.NoticePeriod, p.Answers.PreferredLocation,
	)
}
