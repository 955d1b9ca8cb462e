package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/coteja-lab/ew-jamming/backend/internal/domain"
	"github.com/coteja-lab/ew-jamming/backend/internal/optimizer"
	"github.com/coteja-lab/ew-jamming/backend/internal/scenario"
)

func (h *Handler) RunOptimization(w http.ResponseWriter, r *http.Request) {
	// 获取场景和可选的参数覆盖
	var req struct {
		Scenario   domain.Scenario `json:"scenario"`
		Parameters *struct {
			PopulationSize   int     `json:"population_size" validate:"omitempty,min=1"`
			MaxGenerations   int     `json:"max_generations" validate:"omitempty,min=1"`
			CrossoverRate    float64 `json:"crossover_rate" validate:"omitempty,min=0,max=1"`
			ScalingFactor    float64 `json:"scaling_factor" validate:"omitempty,min=0,max=1"`
			TimeLimitSeconds float64 `json:"time_limit_seconds" validate:"omitempty,min=0"`
			Seed             int64   `json:"seed"`
		} `json:"parameters"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 在配置默认值的基础上应用请求中的覆盖项
	var parameters *optimizer.Parameters
	if req.Parameters != nil {
		parameters = h.defaultParameters()
		if req.Parameters.PopulationSize > 0 {
			parameters.PopulationSize = req.Parameters.PopulationSize
		}
		if req.Parameters.MaxGenerations > 0 {
			parameters.MaxGenerations = req.Parameters.MaxGenerations
		}
		if req.Parameters.CrossoverRate > 0 {
			parameters.CrossoverRate = req.Parameters.CrossoverRate
		}
		if req.Parameters.ScalingFactor > 0 {
			parameters.ScalingFactor = req.Parameters.ScalingFactor
		}
		if req.Parameters.TimeLimitSeconds > 0 {
			parameters.TimeLimit = time.Duration(req.Parameters.TimeLimitSeconds * float64(time.Second))
		}
		parameters.Seed = req.Parameters.Seed
	}

	result := h.controller.RunOptimization(&req.Scenario, parameters)

	h.successResponse(w, r, "优化完成", result)
}

func (h *Handler) GetOptimizationStatistics(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "", h.controller.Statistics())
}

func (h *Handler) GetOptimizationHistory(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if param := r.URL.Query().Get("limit"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed < 1 {
			h.errorResponse(w, r, "无效的 limit 参数")
			return
		}
		limit = parsed
	}

	h.successResponse(w, r, "", h.controller.History(limit))
}

func (h *Handler) GetRandomScenario(w http.ResponseWriter, r *http.Request) {
	radarCount, err := queryCount(r, "n_radars", 3)
	if err != nil {
		h.errorResponse(w, r, "无效的 n_radars 参数")
		return
	}
	jammerCount, err := queryCount(r, "n_jammers", 5)
	if err != nil {
		h.errorResponse(w, r, "无效的 n_jammers 参数")
		return
	}

	s := scenario.Generate(&scenario.Options{
		RadarCount:  radarCount,
		JammerCount: jammerCount,
	})

	h.successResponse(w, r, "", s)
}

func queryCount(r *http.Request, name string, fallback int) (int, error) {
	param := r.URL.Query().Get(name)
	if param == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(param)
	if err != nil || parsed < 0 || parsed > 50 {
		return 0, strconv.ErrRange
	}
	return parsed, nil
}

func (h *Handler) defaultParameters() *optimizer.Parameters {
	return &optimizer.Parameters{
		PopulationSize: h.config.Optimizer.PopulationSize,
		MaxGenerations: h.config.Optimizer.MaxGenerations,
		CrossoverRate:  h.config.Optimizer.CrossoverRate,
		ScalingFactor:  h.config.Optimizer.ScalingFactor,
		MutationRate:   h.config.Optimizer.MutationRate,
		PerturbRate:    h.config.Optimizer.PerturbRate,
		TimeLimit:      time.Duration(h.config.Optimizer.TimeLimit * float64(time.Second)),
	}
}
