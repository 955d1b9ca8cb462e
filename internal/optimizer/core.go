package optimizer

import (
	"math"
	"slices"

	"github.com/coteja-lab/ew-jamming/backend/internal/domain"
)

// 适应度中的资源利用率与中断次数权重，以及约束惩罚系数
const (
	utilizationWeight  = 0.5
	interruptionWeight = 0.3
	danglingPenalty    = 1.0
	overrunPenalty     = 0.5
)

// randomInitIndividual 随机初始化一个个体
// 没有雷达时所有干扰机都置为未分配
func (o *Optimizer) randomInitIndividual() *Individual {
	genes := make([]Gene, len(o.jammers))
	for i := range genes {
		targetIdx := -1
		if len(o.radars) > 0 {
			targetIdx = o.rng.Intn(len(o.radars))
		}
		genes[i] = Gene{
			targetIdx: targetIdx,
			technique: domain.Techniques[o.rng.Intn(len(domain.Techniques))],
			bandwidth: domain.Bandwidths[o.rng.Intn(len(domain.Bandwidths))],
		}
	}
	return &Individual{genes: genes}
}

// mutate 变异操作：差分进化的离散替代
// 基因是分类值，无法做算术差分，因此按概率在 a 的基因与 b/c 的差分选择之间取舍
func (o *Optimizer) mutate(pop []*Individual, current int) []Gene {
	a, b, c := o.sampleThree(len(pop), current)
	geneA, geneB, geneC := pop[a].genes, pop[b].genes, pop[c].genes

	mutant := make([]Gene, len(geneA))
	for j := range mutant {
		mutant[j] = geneA[j]

		if o.rng.Float64() >= o.parameters.MutationRate {
			continue
		}
		if o.rng.Float64() >= o.parameters.PerturbRate {
			continue
		}

		// 只有 b、c 在该位置都有真实目标时差分才有意义，否则退回 a 的基因
		if geneB[j].targetIdx >= 0 && geneC[j].targetIdx >= 0 {
			if o.rng.Float64() < o.parameters.ScalingFactor {
				mutant[j] = geneB[j]
			} else {
				mutant[j] = geneC[j]
			}
		}
	}
	return mutant
}

// sampleThree 从种群中随机选择三个互不相同且不等于 current 的个体下标
// 种群过小时允许重复取样
func (o *Optimizer) sampleThree(n, current int) (int, int, int) {
	candidates := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if i != current {
			candidates = append(candidates, i)
		}
	}

	if len(candidates) == 0 {
		return current, current, current
	}
	if len(candidates) < 3 {
		pick := func() int { return candidates[o.rng.Intn(len(candidates))] }
		return pick(), pick(), pick()
	}

	o.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates[0], candidates[1], candidates[2]
}

// crossover 交叉操作：按 CR 逐基因地在变异个体与目标个体之间选择，生成试验个体
func (o *Optimizer) crossover(target, mutant []Gene) []Gene {
	trial := make([]Gene, len(target))
	for j := range target {
		if o.rng.Float64() < o.parameters.CrossoverRate {
			trial[j] = mutant[j]
		} else {
			trial[j] = target[j]
		}
	}
	return trial
}

// repair 修复不可行解
// 1. 指向不存在雷达的基因重新随机分配
// 2. 超出带宽容量的 (雷达, 带宽) 组合，把多出的基因迁移到同带宽下仍有余量的最空闲雷达，
//    无处可迁时放弃分配
func (o *Optimizer) repair(genes []Gene) {
	nRadars := len(o.radars)
	if nRadars == 0 {
		for j := range genes {
			genes[j].targetIdx = -1
		}
		return
	}

	for j := range genes {
		if genes[j].targetIdx >= nRadars || genes[j].targetIdx < -1 {
			genes[j].targetIdx = o.rng.Intn(nRadars)
		}
	}

	counts := o.assignmentCounts(genes)

	for j := range genes {
		t := genes[j].targetIdx
		if t < 0 {
			continue
		}
		bw := bandwidthOrdinal(genes[j].bandwidth)
		maxTargets := genes[j].bandwidth.MaxTargets()
		if counts[t][bw] <= maxTargets {
			continue
		}

		bestIdx := -1
		for r := 0; r < nRadars; r++ {
			if counts[r][bw] >= maxTargets {
				continue
			}
			if bestIdx == -1 || counts[r][bw] < counts[bestIdx][bw] {
				bestIdx = r
			}
		}

		counts[t][bw]--
		if bestIdx >= 0 {
			genes[j].targetIdx = bestIdx
			counts[bestIdx][bw]++
		} else {
			genes[j].targetIdx = -1
		}
	}
}

// fitness 评估个体适应度
// 总干扰效果 + 资源利用率奖励 + 中断次数奖励 - 约束惩罚，floor 到 0
func (o *Optimizer) fitness(genes []Gene) float64 {
	evaluation := o.analyzer.EvaluateAssignment(o.toMatrix(genes), o.radars, o.jammers)

	f := evaluation.TotalEffectiveness +
		utilizationWeight*evaluation.ResourceUtilization +
		interruptionWeight*float64(evaluation.InterruptionCount)
	f -= o.constraintPenalty(genes)

	return math.Max(0.0, f)
}

// constraintPenalty 计算约束违反惩罚：无效目标每个 1.0，带宽容量每超出一个单位 0.5
func (o *Optimizer) constraintPenalty(genes []Gene) float64 {
	penalty := 0.0
	counts := make([][3]int, len(o.radars))

	for j := range genes {
		t := genes[j].targetIdx
		if t == -1 {
			continue
		}
		if t < 0 || t >= len(o.radars) {
			penalty += danglingPenalty
			continue
		}
		counts[t][bandwidthOrdinal(genes[j].bandwidth)]++
	}

	for _, radarCounts := range counts {
		for bw, n := range radarCounts {
			if max := domain.Bandwidths[bw].MaxTargets(); n > max {
				penalty += float64(n-max) * overrunPenalty
			}
		}
	}

	return penalty
}

func (o *Optimizer) assignmentCounts(genes []Gene) [][3]int {
	counts := make([][3]int, len(o.radars))
	for j := range genes {
		if t := genes[j].targetIdx; t >= 0 && t < len(o.radars) {
			counts[t][bandwidthOrdinal(genes[j].bandwidth)]++
		}
	}
	return counts
}

// toMatrix 把内部的下标基因组转换为按干扰机 ID 寻址的分配矩阵
func (o *Optimizer) toMatrix(genes []Gene) domain.AssignmentMatrix {
	matrix := make(domain.AssignmentMatrix, len(o.jammers))
	for i := range o.jammers {
		jammer := &o.jammers[i]
		assignment := domain.JammerAssignment{
			Technique:   genes[i].technique,
			Bandwidth:   genes[i].bandwidth,
			JammerPower: jammer.Power,
		}
		if t := genes[i].targetIdx; t >= 0 && t < len(o.radars) {
			targetID := o.radars[t].ID
			assignment.TargetID = &targetID
		}
		matrix[jammer.ID] = assignment
	}
	return matrix
}

func bandwidthOrdinal(b domain.Bandwidth) int {
	switch b {
	case domain.BandwidthNarrow:
		return 0
	case domain.BandwidthMedium:
		return 1
	default:
		return 2
	}
}

func cloneGenes(genes []Gene) []Gene {
	return slices.Clone(genes)
}
