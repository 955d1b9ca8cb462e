package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"golang.org/x/crypto/bcrypt"

	"github.com/coteja-lab/ew-jamming/backend/internal/config"
	"github.com/coteja-lab/ew-jamming/backend/internal/optimizer"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	controller *optimizer.Controller
	translator ut.Translator
	// 操作员密码哈希在启动时计算一次，登录时比对
	adminPasswordHash []byte

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialAdmin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	defaults := &optimizer.Parameters{
		PopulationSize: cfg.Optimizer.PopulationSize,
		MaxGenerations: cfg.Optimizer.MaxGenerations,
		CrossoverRate:  cfg.Optimizer.CrossoverRate,
		ScalingFactor:  cfg.Optimizer.ScalingFactor,
		MutationRate:   cfg.Optimizer.MutationRate,
		PerturbRate:    cfg.Optimizer.PerturbRate,
		TimeLimit:      time.Duration(cfg.Optimizer.TimeLimit * float64(time.Second)),
	}

	return &Handler{
		validate:          validate,
		config:            cfg,
		controller:        optimizer.NewController(defaults, cfg.Optimizer.ConsiderIllumination),
		translator:        trans,
		adminPasswordHash: passwordHash,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/optimization", func(r chi.Router) {
			r.Post("/run", h.RunOptimization)
			r.Get("/statistics", h.GetOptimizationStatistics)
			r.Get("/history", h.GetOptimizationHistory)
		})

		r.Get("/scenarios/random", h.GetRandomScenario)
	})
}
