package optimizer

import (
	"math"
	"math/rand"
	"time"

	"github.com/coteja-lab/ew-jamming/backend/internal/analysis"
	"github.com/coteja-lab/ew-jamming/backend/internal/domain"
	"github.com/coteja-lab/ew-jamming/backend/internal/utils"
)

// Optimizer: 扩展置换差分进化算法 (ePDE)
// 在墙钟时间预算内求解干扰资源分配的组合优化问题
// 整个迭代过程是单线程同步的，时间预算只在每代开始时检查，进行中的一代总会跑完
type Optimizer struct {
	parameters *Parameters
	analyzer   *analysis.Analyzer
	observer   GenerationObserver
	rng        *rand.Rand

	radars  []domain.Radar
	jammers []domain.Jammer
}

func New(parameters *Parameters, analyzer *analysis.Analyzer, scenario *domain.Scenario) *Optimizer {
	seed := parameters.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Optimizer{
		parameters: parameters,
		analyzer:   analyzer,
		rng:        rand.New(rand.NewSource(seed)),
		radars:     scenario.Radars,
		jammers:    scenario.Jammers,
	}
}

func (o *Optimizer) SetObserver(observer GenerationObserver) {
	o.observer = observer
}

// Result: 一次优化运行的输出
type Result struct {
	BestAssignment domain.AssignmentMatrix
	BestFitness    float64
	Convergence    []ConvergenceRecord
}

// Optimize 运行完整的 ePDE 迭代
// 算法是 anytime 的：无论何时因时间预算停止，返回的都是迄今为止找到的最优解
func (o *Optimizer) Optimize() *Result {
	start := time.Now()

	// 初始化种群
	popSize := o.parameters.PopulationSize
	if popSize < 1 {
		popSize = 1
	}
	pop := make([]*Individual, popSize)
	for i := range pop {
		pop[i] = o.randomInitIndividual()
		pop[i].fitness = o.fitness(pop[i].genes)
	}

	// 全局最优单独保存，不受种群整体替换影响
	best := &Individual{genes: nil, fitness: math.Inf(-1)}
	for _, ind := range pop {
		if ind.fitness > best.fitness {
			best.fitness = ind.fitness
			best.genes = cloneGenes(ind.genes)
		}
	}

	convergence := make([]ConvergenceRecord, 0, o.parameters.MaxGenerations+1)
	convergence = append(convergence, o.record(0, pop, best.fitness))

	for gen := 1; gen <= o.parameters.MaxGenerations; gen++ {
		// 时间预算只在代与代之间检查
		if time.Since(start) >= o.parameters.TimeLimit {
			break
		}

		// 上一代种群只读，新一代整体替换
		newPop := make([]*Individual, len(pop))
		for i, ind := range pop {
			mutant := o.mutate(pop, i)
			trial := o.crossover(ind.genes, mutant)
			o.repair(trial)
			trialFitness := o.fitness(trial)

			// 贪心选择：试验个体严格优于原个体时才替换
			if trialFitness > ind.fitness {
				newPop[i] = &Individual{genes: trial, fitness: trialFitness}
			} else {
				newPop[i] = ind
			}

			if trialFitness > best.fitness {
				best.fitness = trialFitness
				best.genes = cloneGenes(trial)
			}
			if ind.fitness > best.fitness {
				best.fitness = ind.fitness
				best.genes = cloneGenes(ind.genes)
			}
		}
		pop = newPop

		convergence = append(convergence, o.record(gen, pop, best.fitness))
	}

	return &Result{
		BestAssignment: o.toMatrix(best.genes),
		BestFitness:    best.fitness,
		Convergence:    convergence,
	}
}

func (o *Optimizer) record(generation int, pop []*Individual, bestFitness float64) ConvergenceRecord {
	fitnesses := make([]float64, len(pop))
	for i, ind := range pop {
		fitnesses[i] = ind.fitness
	}

	record := ConvergenceRecord{
		Generation:  generation,
		AvgFitness:  utils.Mean(fitnesses),
		MaxFitness:  utils.Max(fitnesses),
		BestFitness: bestFitness,
	}
	if o.observer != nil {
		o.observer(record)
	}
	return record
}
