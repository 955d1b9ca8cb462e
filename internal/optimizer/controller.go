package optimizer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/coteja-lab/ew-jamming/backend/internal/analysis"
	"github.com/coteja-lab/ew-jamming/backend/internal/domain"
	"github.com/coteja-lab/ew-jamming/backend/internal/utils"
)

// Controller: 优化控制器，串联 ePDE 优化与结果分析，并维护运行历史
type Controller struct {
	defaults *Parameters
	analyzer *analysis.Analyzer

	mu      sync.Mutex
	history []*RunRecord
}

func NewController(defaults *Parameters, considerIllumination bool) *Controller {
	return &Controller{
		defaults: defaults,
		analyzer: analysis.NewAnalyzer(considerIllumination),
	}
}

func (c *Controller) Analyzer() *analysis.Analyzer {
	return c.analyzer
}

// RunRecord: 一次运行的历史记录
type RunRecord struct {
	Timestamp        time.Time `json:"timestamp"`
	Success          bool      `json:"success"`
	BestFitness      float64   `json:"best_fitness"`
	OptimizationTime float64   `json:"optimization_time"` // 秒
	RadarCount       int       `json:"n_radars"`
	JammerCount      int       `json:"n_jammers"`
}

// RunResult: 完整优化流程的输出
type RunResult struct {
	Success             bool                    `json:"success"`
	OptimizationTime    float64                 `json:"optimization_time"` // 秒
	BestSolution        domain.AssignmentMatrix `json:"best_solution"`
	BestFitness         float64                 `json:"best_fitness"`
	ConvergenceAnalysis *ConvergenceAnalysis    `json:"convergence_analysis"`
	AssignmentReport    *AssignmentReport       `json:"assignment_report"`
	ConvergenceData     []ConvergenceRecord     `json:"convergence_data"`
	ResourceUtilization float64                 `json:"resource_utilization"`
}

// RunOptimization 运行完整优化流程：ePDE 优化 → 收敛分析 → 分配报告
// parameters 为 nil 时使用控制器的默认参数
func (c *Controller) RunOptimization(scenario *domain.Scenario, parameters *Parameters) *RunResult {
	start := time.Now()

	if parameters == nil {
		parameters = c.defaults
	}

	slog.Info("开始干扰资源分配优化",
		"radars", len(scenario.Radars),
		"jammers", len(scenario.Jammers),
		"population_size", parameters.PopulationSize,
		"time_limit", parameters.TimeLimit,
	)

	opt := New(parameters, c.analyzer, scenario)
	result := opt.Optimize()

	convergenceAnalysis := AnalyzeConvergence(result.Convergence)
	report := GenerateAssignmentReport(result.BestAssignment, scenario, c.analyzer)

	elapsed := time.Since(start).Seconds()

	c.mu.Lock()
	c.history = append(c.history, &RunRecord{
		Timestamp:        start,
		Success:          true,
		BestFitness:      result.BestFitness,
		OptimizationTime: elapsed,
		RadarCount:       len(scenario.Radars),
		JammerCount:      len(scenario.Jammers),
	})
	c.mu.Unlock()

	slog.Info("优化完成",
		"time", elapsed,
		"best_fitness", result.BestFitness,
		"resource_utilization", report.Summary.ResourceUtilization,
	)

	return &RunResult{
		Success:             true,
		OptimizationTime:    elapsed,
		BestSolution:        result.BestAssignment,
		BestFitness:         result.BestFitness,
		ConvergenceAnalysis: convergenceAnalysis,
		AssignmentReport:    report,
		ConvergenceData:     result.Convergence,
		ResourceUtilization: report.Summary.ResourceUtilization,
	}
}

// Statistics: 最近若干次运行的聚合统计
type Statistics struct {
	TotalRuns   int     `json:"total_runs"`
	AvgFitness  float64 `json:"avg_fitness"`
	StdFitness  float64 `json:"std_fitness"`
	MaxFitness  float64 `json:"max_fitness"`
	AvgTime     float64 `json:"avg_time"`
	SuccessRate float64 `json:"success_rate"`
}

// Statistics 基于最近 10 次运行计算聚合统计
func (c *Controller) Statistics() *Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.history) == 0 {
		return &Statistics{}
	}

	recent := c.history
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}

	fitnesses := make([]float64, len(recent))
	times := make([]float64, len(recent))
	succeeded := 0
	for i, record := range recent {
		fitnesses[i] = record.BestFitness
		times[i] = record.OptimizationTime
		if record.Success {
			succeeded++
		}
	}

	return &Statistics{
		TotalRuns:   len(c.history),
		AvgFitness:  utils.Mean(fitnesses),
		StdFitness:  utils.StdDev(fitnesses),
		MaxFitness:  utils.Max(fitnesses),
		AvgTime:     utils.Mean(times),
		SuccessRate: float64(succeeded) / float64(len(recent)),
	}
}

// History 返回最近 limit 条运行记录，limit <= 0 时返回全部
func (c *Controller) History(limit int) []*RunRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.history
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}

	out := make([]*RunRecord, len(records))
	copy(out, records)
	return out
}
