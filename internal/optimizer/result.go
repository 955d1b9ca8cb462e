package optimizer

import (
	"math"
	"sort"

	"github.com/coteja-lab/ew-jamming/backend/internal/analysis"
	"github.com/coteja-lab/ew-jamming/backend/internal/domain"
	"github.com/coteja-lab/ew-jamming/backend/internal/utils"
)

// ConvergenceAnalysis: 收敛性诊断结果
type ConvergenceAnalysis struct {
	FinalBestFitness      float64 `json:"final_best_fitness"`
	FinalAvgFitness       float64 `json:"final_avg_fitness"`
	ConvergenceGeneration int     `json:"convergence_generation"`
	ImprovementRatio      float64 `json:"improvement_ratio"`
	Stability             float64 `json:"stability"`
}

// AnalyzeConvergence 分析一次运行的收敛数据
func AnalyzeConvergence(convergence []ConvergenceRecord) *ConvergenceAnalysis {
	if len(convergence) == 0 {
		return &ConvergenceAnalysis{}
	}

	best := make([]float64, len(convergence))
	for i, record := range convergence {
		best[i] = record.BestFitness
	}

	return &ConvergenceAnalysis{
		FinalBestFitness:      best[len(best)-1],
		FinalAvgFitness:       convergence[len(convergence)-1].AvgFitness,
		ConvergenceGeneration: findConvergenceGeneration(best),
		ImprovementRatio:      improvementRatio(best),
		Stability:             stability(best),
	}
}

// findConvergenceGeneration 寻找收敛代：从该点起，最优适应度的滑动 10 代标准差
// 始终低于 0.01（平台期）。序列不足 10 代或从未进入平台期时返回序列长度
func findConvergenceGeneration(best []float64) int {
	const window = 10
	const threshold = 0.01

	if len(best) < window {
		return len(best)
	}

	// 从尾部向前扫描，找到平台期的最早起点
	converged := len(best)
	for t := len(best) - 1; t >= window-1; t-- {
		if utils.StdDev(best[t-window+1:t+1]) >= threshold {
			break
		}
		converged = t - window + 1
	}
	return converged
}

func improvementRatio(best []float64) float64 {
	initial := best[0]
	if math.Abs(initial) < 1e-9 {
		return 0.0
	}
	return (best[len(best)-1] - initial) / initial
}

// stability 用后半段最优适应度的离散程度衡量收敛稳定性
func stability(best []float64) float64 {
	if len(best) < 5 {
		return 1.0
	}
	lastHalf := best[len(best)/2:]
	return 1.0 - utils.StdDev(lastHalf)/(utils.Mean(lastHalf)+1e-6)
}

// AssignmentDetail: 分配报告中的单行（一个已分配目标的干扰机）
type AssignmentDetail struct {
	JammerID      string           `json:"jammer_id"`
	JammerName    string           `json:"jammer_name"`
	TargetID      string           `json:"target_id"`
	TargetName    string           `json:"target_name"`
	Technique     domain.Technique `json:"technique"`
	Bandwidth     domain.Bandwidth `json:"bw_type"`
	Effectiveness float64          `json:"effectiveness"`
	RadarStage    domain.Stage     `json:"radar_stage"`
}

type ReportSummary struct {
	TotalEffectiveness  float64 `json:"total_effectiveness"`
	ResourceUtilization float64 `json:"resource_utilization"`
	InterruptionCount   int     `json:"interruption_count"`
	AssignedJammers     int     `json:"assigned_jammers"`
	TotalJammers        int     `json:"total_jammers"`
}

type AssignmentReport struct {
	Summary      ReportSummary      `json:"summary"`
	Assignments  []AssignmentDetail `json:"assignments"`
	RadarEffects map[string]float64 `json:"radar_effects"`
}

// GenerateAssignmentReport 生成最优解的分配报告
func GenerateAssignmentReport(best domain.AssignmentMatrix, scenario *domain.Scenario, analyzer *analysis.Analyzer) *AssignmentReport {
	evaluation := analyzer.EvaluateAssignment(best, scenario.Radars, scenario.Jammers)

	assignedJammers := 0
	details := make([]AssignmentDetail, 0, len(best))
	for jammerID, assignment := range best {
		if assignment.TargetID == nil {
			continue
		}
		assignedJammers++

		jammer := scenario.JammerByID(jammerID)
		radar := scenario.RadarByID(*assignment.TargetID)
		if jammer == nil || radar == nil {
			continue
		}

		details = append(details, AssignmentDetail{
			JammerID:      jammer.ID,
			JammerName:    jammer.Name,
			TargetID:      radar.ID,
			TargetName:    radar.Name,
			Technique:     assignment.Technique,
			Bandwidth:     assignment.Bandwidth,
			Effectiveness: analyzer.JammingEffectiveness(radar, jammer, assignment.Technique, assignment.Bandwidth, 1),
			RadarStage:    radar.CurrentStage,
		})
	}

	// map 遍历顺序不稳定，按干扰机 ID 排序保证报告可复现
	sort.Slice(details, func(i, j int) bool {
		return details[i].JammerID < details[j].JammerID
	})

	return &AssignmentReport{
		Summary: ReportSummary{
			TotalEffectiveness:  evaluation.TotalEffectiveness,
			ResourceUtilization: evaluation.ResourceUtilization,
			InterruptionCount:   evaluation.InterruptionCount,
			AssignedJammers:     assignedJammers,
			TotalJammers:        len(scenario.Jammers),
		},
		Assignments:  details,
		RadarEffects: evaluation.RadarEffects,
	}
}
