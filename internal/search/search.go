// Package search - сбор ссылок на вакансии по ключевым словам.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"jobAgent/internal/browser"
	"jobAgent/internal/chatbot"
	"jobAgent/internal/config"
	"jobAgent/internal/logger"

	"go.uber.org/zap"
)

const baseURL = "https://www.naukri.com"

// Карточки вакансий: разметка выдачи меняется между редизайнами сайта,
// селекторы перебираются по порядку до первого непустого результата.
var jobCardSelectors = []string{
	"article.jobTuple",
	"div.jobTuple",
	"div[class*='job-tuple']",
	"a.title",
}

var nextPageSelectors = []string{
	"a.styles_btn-secondary__2AsIP[href*='page']",
	"a.fright",
}

// AppliedChecker отвечает, был ли уже отклик на вакансию.
type AppliedChecker interface {
	IsApplied(jobID string) (bool, error)
}

type Job struct {
	ID  string
	URL string
}

type Searcher struct {
	browser browser.Browser
	cfg     config.Search
	applied AppliedChecker
	log     *logger.Zap
}

func New(b browser.Browser, cfg config.Search, applied AppliedChecker, log *logger.Zap) *Searcher {
	return &Searcher{
		browser: b,
		cfg:     cfg,
		applied: applied,
		log:     log,
	}
}

// CollectJobs обходит выдачу по всем ключевым словам и возвращает вакансии
// без дублей и без тех, на которые отклик уже был.
func (s *Searcher) CollectJobs(ctx context.Context) ([]Job, error) {
	var urls []string

	for _, keyword := range s.cfg.Keywords {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s.log.Info("Поиск вакансий",
			zap.String("keyword", keyword),
			zap.String("location", s.cfg.Location))

		links, err := s.searchKeyword(ctx, keyword)
		if err != nil {
			s.log.Warn("Ошибка поиска по ключевому слову",
				zap.String("keyword", keyword), zap.Error(err))
			continue
		}
		urls = append(urls, links...)
	}

	jobs := s.dedupeAndFilter(urls)
	s.log.Info("Поиск завершен", zap.Int("jobs", len(jobs)))
	return jobs, nil
}

// SearchURL строит адрес выдачи: пробелы в ключевом слове и городе
// заменяются дефисами.
func SearchURL(keyword, location string) string {
	kw := strings.ReplaceAll(strings.TrimSpace(keyword), " ", "-")
	loc := strings.ReplaceAll(strings.TrimSpace(location), " ", "-")
	return fmt.Sprintf("%s/%s-jobs-in-%s", baseURL, strings.ToLower(kw), strings.ToLower(loc))
}

func (s *Searcher) searchKeyword(ctx context.Context, keyword string) ([]string, error) {
	url := SearchURL(keyword, s.cfg.Location)
	if err := s.browser.Navigate(ctx, url); err != nil {
		return nil, fmt.Errorf("ошибка перехода на выдачу: %w", err)
	}

	maxPages := s.cfg.PagesPerKeyword
	if maxPages <= 0 {
		maxPages = 1
	}

	var links []string
	for page := 1; page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return links, err
		}

		pageLinks := s.extractLinks()
		links = append(links, pageLinks...)
		s.log.Debug("Страница выдачи обработана",
			zap.Int("page", page), zap.Int("links", len(pageLinks)))

		if page < maxPages {
			if !s.nextPage(ctx) {
				break
			}
			time.Sleep(2 * time.Second)
		}
	}

	return links, nil
}

// extractLinks собирает ссылки с текущей страницы выдачи.
func (s *Searcher) extractLinks() []string {
	var links []string

	for _, selector := range jobCardSelectors {
		cards, err := s.browser.QueryAll(selector)
		if err != nil || len(cards) == 0 {
			continue
		}

		for _, card := range cards {
			link := cardLink(card)
			if link == "" || !strings.Contains(link, "naukri.com") {
				continue
			}
			if !s.matchesCriteria(card) {
				continue
			}
			links = append(links, link)
		}

		if len(links) > 0 {
			break
		}
	}

	return links
}

// cardLink достает href с самой карточки либо с первой ссылки внутри нее.
func cardLink(card chatbot.Element) string {
	if href, err := card.Attr("href"); err == nil && href != "" {
		return href
	}
	return ""
}

// matchesCriteria фильтрует карточку по тексту: нежелательные компании
// отсеиваются, остальное проходит.
func (s *Searcher) matchesCriteria(card chatbot.Element) bool {
	text, err := card.Text()
	if err != nil {
		return true
	}
	lower := strings.ToLower(text)

	for _, company := range s.cfg.AvoidCompanies {
		if company != "" && strings.Contains(lower, strings.ToLower(company)) {
			return false
		}
	}
	return true
}

func (s *Searcher) nextPage(ctx context.Context) bool {
	for _, selector := range nextPageSelectors {
		elements, err := s.browser.QueryAll(selector)
		if err != nil {
			continue
		}
		for _, el := range elements {
			if visible, err := el.IsVisible(); err != nil || !visible {
				continue
			}
			if enabled, err := el.IsEnabled(); err != nil || !enabled {
				continue
			}
			if el.Click() == nil {
				return true
			}
		}
	}

	// Fallback по тексту ссылки
	elements, err := s.browser.QueryAll("a")
	if err != nil {
		return false
	}
	for _, el := range elements {
		text, err := el.Text()
		if err != nil || !strings.Contains(strings.ToLower(text), "next") {
			continue
		}
		if visible, err := el.IsVisible(); err != nil || !visible {
			continue
		}
		if el.Click() == nil {
			return true
		}
	}
	return false
}

// dedupeAndFilter убирает дубли и вакансии с уже отправленным откликом.
// Порядок результата детерминированный.
func (s *Searcher) dedupeAndFilter(urls []string) []Job {
	seen := make(map[string]string, len(urls))
	for _, url := range urls {
		id := ExtractJobID(url)
		if _, ok := seen[id]; !ok {
			seen[id] = url
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	jobs := make([]Job, 0, len(ids))
	for _, id := range ids {
		if s.applied != nil {
			if applied, err := s.applied.IsApplied(id); err == nil && applied {
				continue
			}
		}
		jobs = append(jobs, Job{ID: id, URL: seen[id]})
	}
	return jobs
}
