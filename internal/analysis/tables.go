package analysis

import "github.com/coteja-lab/ew-jamming/backend/internal/domain"

// 查找表均为常量数据，按枚举序号索引，构造后不再修改

// 表1: 阶段有效性因子（考虑平台照明）
// 跟踪/制导阶段拖引类干扰会暴露自身平台，因而为强负值
var stageEffectivenessWithIllumination = [4][5]float64{
	{0.8, 0.9, 1.0, -0.9, -0.9},   // search
	{0.9, 0.9, 1.0, -0.9, -0.9},   // acquisition
	{-0.9, -0.9, 0.0, -0.9, -0.8}, // tracking
	{-0.9, -0.9, 0.0, -0.8, -0.9}, // guidance
}

// 表1: 阶段有效性因子（忽略平台照明）
var stageEffectivenessWithoutIllumination = [4][5]float64{
	{0.8, 0.9, 1.0, 0.2, 0.2}, // search
	{0.9, 0.9, 1.0, 0.1, 0.1}, // acquisition
	{0.5, 0.5, 0.0, 0.9, 0.8}, // tracking
	{0.5, 0.5, 0.0, 0.8, 0.9}, // guidance
}

// 表2: 技术交互因子（对称）
var techniqueInteractionTable = [5][5]float64{
	{0.0, 0.0, 0.2, -0.3, -0.3},  // NJ
	{0.0, 0.0, 0.1, 0.2, 0.2},    // CP
	{0.2, 0.1, 0.0, -0.2, -0.2},  // MFT
	{-0.3, 0.2, -0.2, 0.0, 0.2},  // RGPO
	{-0.3, 0.2, -0.2, 0.2, 0.0},  // VGPO
}

// 表3: 带宽调整因子，按已分配目标数索引（第 n 列对应 n 个目标）
// 超出 MaxTargets 的目标数视为不可行
var bandwidthAdjustmentTable = [3][5]float64{
	{0.0, 0, 0, 0, 0},                     // N
	{-0.1, -0.2, -0.35, 0, 0},             // M
	{-0.15, -0.25, -0.4, -0.6, -0.8},      // W
}

// 表4: 阶段交互因子（预留的组合因子，默认适应度未使用）
var stageInteractionTable = [4][4]float64{
	{0.1, 0.0, 0.0, 0.0}, // search
	{0.2, 0.1, 0.0, 0.0}, // acquisition
	{0.3, 0.2, 0.1, 0.0}, // tracking
	{0.4, 0.3, 0.2, 0.1}, // guidance
}

func stageIndex(s domain.Stage) int {
	switch s {
	case domain.StageSearch:
		return 0
	case domain.StageAcquisition:
		return 1
	case domain.StageTracking:
		return 2
	case domain.StageGuidance:
		return 3
	default:
		return -1
	}
}

func techniqueIndex(t domain.Technique) int {
	switch t {
	case domain.TechniqueNJ:
		return 0
	case domain.TechniqueCP:
		return 1
	case domain.TechniqueMFT:
		return 2
	case domain.TechniqueRGPO:
		return 3
	case domain.TechniqueVGPO:
		return 4
	default:
		return -1
	}
}

func bandwidthIndex(b domain.Bandwidth) int {
	switch b {
	case domain.BandwidthNarrow:
		return 0
	case domain.BandwidthMedium:
		return 1
	case domain.BandwidthWide:
		return 2
	default:
		return -1
	}
}

// Tables: 对抗分析查找表
type Tables struct {
	stageEffectiveness *[4][5]float64
}

func NewTables(considerIllumination bool) *Tables {
	t := &Tables{}
	if considerIllumination {
		t.stageEffectiveness = &stageEffectivenessWithIllumination
	} else {
		t.stageEffectiveness = &stageEffectivenessWithoutIllumination
	}
	return t
}

// StageEffectiveness 返回阶段有效性因子，未知的阶段或技术返回 0
func (t *Tables) StageEffectiveness(stage domain.Stage, technique domain.Technique) float64 {
	si, ti := stageIndex(stage), techniqueIndex(technique)
	if si < 0 || ti < 0 {
		return 0.0
	}
	return t.stageEffectiveness[si][ti]
}

// TechniqueInteraction 返回两种同时作用于同一雷达的干扰技术之间的交互因子
func (t *Tables) TechniqueInteraction(t1, t2 domain.Technique) float64 {
	i1, i2 := techniqueIndex(t1), techniqueIndex(t2)
	if i1 < 0 || i2 < 0 {
		return 0.0
	}
	return techniqueInteractionTable[i1][i2]
}

// BandwidthAdjustment 返回带宽调整因子，第二个返回值为 false 表示该目标数不可行
func (t *Tables) BandwidthAdjustment(bw domain.Bandwidth, assignedTargets int) (float64, bool) {
	bi := bandwidthIndex(bw)
	if bi < 0 || assignedTargets < 1 || assignedTargets > bw.MaxTargets() {
		return 0.0, false
	}
	return bandwidthAdjustmentTable[bi][assignedTargets-1], true
}

// StageInteraction 返回两个阶段之间的交互因子
func (t *Tables) StageInteraction(s1, s2 domain.Stage) float64 {
	i1, i2 := stageIndex(s1), stageIndex(s2)
	if i1 < 0 || i2 < 0 {
		return 0.0
	}
	return stageInteractionTable[i1][i2]
}
