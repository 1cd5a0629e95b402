// Package server - HTTP API для просмотра результатов работы бота:
// отправленные отклики, статистика взаимодействий, словарь вопросов.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobAgent/internal/config"
	"jobAgent/internal/database"
	"jobAgent/internal/logger"
	"jobAgent/internal/qastore"
)

type Server struct {
	cfg          *config.Cfg
	log          *logger.Zap
	jobs         *database.AppliedJobRepository
	interactions *database.InteractionRepository
	store        *qastore.Store
}

func New(cfg *config.Cfg, log *logger.Zap, db *database.Database, store *qastore.Store) *Server {
	return &Server{
		cfg:          cfg,
		log:          log,
		jobs:         database.NewAppliedJobRepository(db.DB),
		interactions: database.NewInteractionRepository(db.DB),
		store:        store,
	}
}

func (s *Server) Run(ctx context.Context) error {
	r := gin.New()
	r.Use(gin.Recovery())

	// Простейший лог-мидлвар
	r.Use(func(c *gin.Context) {
		s.log.Info("HTTP",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Список откликов
	r.GET("/api/jobs", func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit <= 0 {
			limit = 50
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		jobs, err := s.jobs.List(limit, offset)
		if err != nil {
			s.log.Error("db list jobs", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, jobs)
	})

	// Сводка по статусам откликов и сессиям чат-бота
	r.GET("/api/stats", func(c *gin.Context) {
		applied, err := s.jobs.CountByStatus("applied")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		failed, _ := s.jobs.CountByStatus("failed")
		skipped, _ := s.jobs.CountByStatus("skipped")

		stats, err := s.interactions.Stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"applied":              applied,
			"failed":               failed,
			"skipped":              skipped,
			"questions_total":      stats.Total,
			"questions_successful": stats.Successful,
			"success_rate":         stats.SuccessRate(),
		})
	})

	// Вопросы, на которые бот не нашел ответа - кандидаты в словарь
	r.GET("/api/unanswered", func(c *gin.Context) {
		recs, err := s.interactions.Unanswered(100)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, recs)
	})

	// Словарь вопрос-ответ
	r.GET("/api/dictionary", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.Entries())
	})

	// Добавить пару в словарь
	r.POST("/api/dictionary", func(c *gin.Context) {
		var req struct {
			Question string `json:"question" binding:"required"`
			Answer   string `json:"answer" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := s.store.Add(req.Question, req.Answer); err != nil {
			s.log.Error("store add", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "store error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "added"})
	})

	addr := fmt.Sprintf("%s:%s", s.cfg.App.Host, s.cfg.App.Port)
	s.log.Info("Сервер запущен", zap.String("addr", addr))
	return r.Run(addr)
}
