package domain

// Stage: 雷达所处的攻击阶段，不同阶段下各干扰技术的收益差别很大
type Stage string

const (
	StageSearch      Stage = "search"
	StageAcquisition Stage = "acquisition"
	StageTracking    Stage = "tracking"
	StageGuidance    Stage = "guidance"
)

var Stages = []Stage{StageSearch, StageAcquisition, StageTracking, StageGuidance}

// Position: 经纬度坐标（度）与海拔（米）
type Position struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
	Alt float64 `json:"alt"`
}

type Radar struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name"`
	Position  Position `json:"position"`
	Frequency float64  `json:"frequency" validate:"min=0"` // MHz
	Power     float64  `json:"power" validate:"min=0"`     // kW
	// 雷达当前所处的攻击阶段
	CurrentStage Stage `json:"current_stage" validate:"required,oneof=search acquisition tracking guidance"`
	// 累计干扰效果超过 1 - InterruptionThreshold 时认为该雷达被中断
	InterruptionThreshold float64 `json:"interruption_threshold" validate:"min=0,max=1"`
}
