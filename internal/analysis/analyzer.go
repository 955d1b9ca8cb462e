package analysis

import (
	"math"

	"github.com/coteja-lab/ew-jamming/backend/internal/domain"
)

const (
	// 有效干扰距离 50km，超出后按远距离衰减处理
	maxEffectiveDistance = 50000.0
	earthRadius          = 6371000.0
	// 坐标或功率数据异常时使用的中性因子
	neutralFactor = 0.5
)

// Analyzer: 干扰机-雷达对抗分析器
type Analyzer struct {
	tables *Tables
}

func NewAnalyzer(considerIllumination bool) *Analyzer {
	return &Analyzer{
		tables: NewTables(considerIllumination),
	}
}

func (a *Analyzer) Tables() *Tables {
	return a.tables
}

// JammingEffectiveness 计算单个干扰机对单个雷达的干扰效果
// assignedTargets 为该 (雷达, 带宽) 组合下的并发分配数，超出带宽容量时返回 0（无效分配）
func (a *Analyzer) JammingEffectiveness(radar *domain.Radar, jammer *domain.Jammer, technique domain.Technique, bw domain.Bandwidth, assignedTargets int) float64 {
	base := a.tables.StageEffectiveness(radar.CurrentStage, technique)

	adjustment, ok := a.tables.BandwidthAdjustment(bw, assignedTargets)
	if !ok {
		return 0.0
	}

	total := (base + adjustment) * a.distanceEffect(radar, jammer) * a.powerMatch(radar, jammer)

	return clamp(total, -1.0, 1.0)
}

// RadarAssignment: 指向某部雷达的一次干扰分配
type RadarAssignment struct {
	Jammer    *domain.Jammer
	Technique domain.Technique
	Bandwidth domain.Bandwidth
	// 该 (雷达, 带宽) 组合下的并发分配数
	AssignedTargets int
}

// CooperativeEffect 计算多个干扰机对单部雷达的协同干扰效果
// 除各自的单机效果外，还累加所有已就位技术两两之间的交互因子
func (a *Analyzer) CooperativeEffect(radar *domain.Radar, assignments []RadarAssignment) float64 {
	total := 0.0
	activeTechniques := make([]domain.Technique, 0, len(assignments))

	for _, assignment := range assignments {
		effect := a.JammingEffectiveness(radar, assignment.Jammer, assignment.Technique, assignment.Bandwidth, assignment.AssignedTargets)

		for _, other := range activeTechniques {
			effect += a.tables.TechniqueInteraction(assignment.Technique, other)
		}

		total += effect
		activeTechniques = append(activeTechniques, assignment.Technique)
	}

	return clamp(total, -1.0, 1.0)
}

// Evaluation: 整个分配矩阵的评估结果
type Evaluation struct {
	TotalEffectiveness  float64
	RadarEffects        map[string]float64
	ResourceUtilization float64
	InterruptionCount   int
}

// EvaluateAssignment 评估分配矩阵的整体效果
// 引用了不存在的雷达或干扰机的分配项贡献为 0，不会导致失败
func (a *Analyzer) EvaluateAssignment(matrix domain.AssignmentMatrix, radars []domain.Radar, jammers []domain.Jammer) *Evaluation {
	evaluation := &Evaluation{
		RadarEffects: make(map[string]float64, len(radars)),
	}

	jammerByID := make(map[string]*domain.Jammer, len(jammers))
	for i := range jammers {
		jammerByID[jammers[i].ID] = &jammers[i]
	}

	// 统计每个 (雷达, 带宽) 组合的并发分配数
	type radarBandwidth struct {
		radarID string
		bw      domain.Bandwidth
	}
	counts := make(map[radarBandwidth]int)
	assignedJammers := 0
	for _, assignment := range matrix {
		if assignment.TargetID == nil {
			continue
		}
		assignedJammers++
		counts[radarBandwidth{*assignment.TargetID, assignment.Bandwidth}]++
	}

	// 按雷达聚合针对它的所有分配
	byRadar := make(map[string][]RadarAssignment)
	for jammerID, assignment := range matrix {
		if assignment.TargetID == nil {
			continue
		}
		jammer, ok := jammerByID[jammerID]
		if !ok {
			continue
		}
		byRadar[*assignment.TargetID] = append(byRadar[*assignment.TargetID], RadarAssignment{
			Jammer:          jammer,
			Technique:       assignment.Technique,
			Bandwidth:       assignment.Bandwidth,
			AssignedTargets: counts[radarBandwidth{*assignment.TargetID, assignment.Bandwidth}],
		})
	}

	for i := range radars {
		radar := &radars[i]
		effect := a.CooperativeEffect(radar, byRadar[radar.ID])
		evaluation.RadarEffects[radar.ID] = effect
		evaluation.TotalEffectiveness += effect

		if effect > 1.0-radar.InterruptionThreshold {
			evaluation.InterruptionCount++
		}
	}

	if len(jammers) > 0 {
		evaluation.ResourceUtilization = float64(assignedJammers) / float64(len(jammers))
	}

	return evaluation
}

func (a *Analyzer) distanceEffect(radar *domain.Radar, jammer *domain.Jammer) float64 {
	distance, ok := greatCircleDistance(radar.Position, jammer.Position)
	if !ok {
		return neutralFactor
	}
	if distance > maxEffectiveDistance {
		return 0.1
	}
	return 1.0 - distance/maxEffectiveDistance*0.8
}

func (a *Analyzer) powerMatch(radar *domain.Radar, jammer *domain.Jammer) float64 {
	ratio := jammer.Power / (radar.Power + 1e-6)
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio < 0 {
		return neutralFactor
	}
	return math.Min(1.0, ratio/10.0)
}

// greatCircleDistance 用哈弗辛公式计算两点间的大圆距离（米）
// 坐标越界或非法时返回 false
func greatCircleDistance(p1, p2 domain.Position) (float64, bool) {
	if !validPosition(p1) || !validPosition(p2) {
		return 0, false
	}

	lat1, lon1 := p1.Lat*math.Pi/180, p1.Lon*math.Pi/180
	lat2, lon2 := p2.Lat*math.Pi/180, p2.Lon*math.Pi/180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(h))

	return c * earthRadius, true
}

func validPosition(p domain.Position) bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
