package domain

// Technique: 干扰技术
type Technique string

const (
	TechniqueNJ   Technique = "NJ"   // 噪声干扰
	TechniqueCP   Technique = "CP"   // 覆盖脉冲干扰
	TechniqueMFT  Technique = "MFT"  // 多假目标干扰
	TechniqueRGPO Technique = "RGPO" // 距离门拖引
	TechniqueVGPO Technique = "VGPO" // 速度门拖引
)

var Techniques = []Technique{TechniqueNJ, TechniqueCP, TechniqueMFT, TechniqueRGPO, TechniqueVGPO}

// Bandwidth: 干扰带宽类型，决定单个干扰机能同时压制的目标数上限
type Bandwidth string

const (
	BandwidthNarrow Bandwidth = "N"
	BandwidthMedium Bandwidth = "M"
	BandwidthWide   Bandwidth = "W"
)

var Bandwidths = []Bandwidth{BandwidthNarrow, BandwidthMedium, BandwidthWide}

// MaxTargets 返回该带宽类型支持的最大同时目标数（表3）
func (b Bandwidth) MaxTargets() int {
	switch b {
	case BandwidthNarrow:
		return 1
	case BandwidthMedium:
		return 3
	case BandwidthWide:
		return 5
	default:
		return 1
	}
}

// JammerAssignment: 单个干扰机的分配决策，TargetID 为 nil 表示未分配目标
type JammerAssignment struct {
	TargetID    *string   `json:"target_id"`
	Technique   Technique `json:"technique"`
	Bandwidth   Bandwidth `json:"bw_type"`
	JammerPower float64   `json:"jammer_power"`
}

// AssignmentMatrix: 完整的分配方案，每个已知干扰机恰好对应一项
type AssignmentMatrix map[string]JammerAssignment
