package optimizer

import (
	"time"

	"github.com/coteja-lab/ew-jamming/backend/internal/domain"
)

// Gene: 单个干扰机的分配决策，targetIdx 为雷达在场景中的下标，-1 表示未分配目标
type Gene struct {
	targetIdx int
	technique domain.Technique
	bandwidth domain.Bandwidth
}

// Individual: 完整的干扰分配方案（每个干扰机恰好一个基因）
type Individual struct {
	genes   []Gene
	fitness float64
}

// ePDE 算法参数
type Parameters struct {
	PopulationSize int     // 种群大小
	MaxGenerations int     // 最大迭代次数
	CrossoverRate  float64 // 交叉概率 CR
	ScalingFactor  float64 // 缩放因子 F
	// 离散变异的外层概率与差分扰动概率
	// 数值沿用经验调参结果，作为参数暴露以便调整
	MutationRate float64
	PerturbRate  float64
	TimeLimit    time.Duration // 墙钟时间预算，在每代开始时检查
	Seed         int64         // 随机数种子，0 表示按当前时间取种
}

func DefaultParameters() *Parameters {
	return &Parameters{
		PopulationSize: 50,
		MaxGenerations: 100,
		CrossoverRate:  0.9,
		ScalingFactor:  0.5,
		MutationRate:   0.8,
		PerturbRate:    0.5,
		TimeLimit:      time.Second,
	}
}

// ConvergenceRecord: 单代的收敛数据
type ConvergenceRecord struct {
	Generation  int     `json:"generation"`
	AvgFitness  float64 `json:"avg_fitness"`
	MaxFitness  float64 `json:"max_fitness"`
	BestFitness float64 `json:"best_fitness"`
}

// GenerationObserver 在每代结束时被调用一次，用于进度上报
// 优化器本身不做任何打印，由调用方决定输出到哪里
type GenerationObserver func(record ConvergenceRecord)
