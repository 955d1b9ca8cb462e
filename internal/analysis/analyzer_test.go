package analysis

import (
	"math"
	"testing"

	"github.com/coteja-lab/ew-jamming/backend/internal/domain"
)

func testRadar(id string, stage domain.Stage) *domain.Radar {
	return &domain.Radar{
		ID:                    id,
		Name:                  "雷达-" + id,
		Position:              domain.Position{Lat: 30.0, Lon: 120.0},
		Frequency:             5000,
		Power:                 100,
		CurrentStage:          stage,
		InterruptionThreshold: 0.5,
	}
}

func testJammer(id string, power float64) *domain.Jammer {
	return &domain.Jammer{
		ID:       id,
		Name:     "干扰机-" + id,
		Position: domain.Position{Lat: 30.05, Lon: 120.05},
		Power:    power,
	}
}

func TestJammingEffectivenessInfeasibleBandwidth(t *testing.T) {
	analyzer := NewAnalyzer(true)
	radar := testRadar("R1", domain.StageSearch)
	jammer := testJammer("J1", 1000)

	// 窄带只支持 1 个目标，2 个目标的分配无效，贡献为 0
	got := analyzer.JammingEffectiveness(radar, jammer, domain.TechniqueNJ, domain.BandwidthNarrow, 2)
	if got != 0.0 {
		t.Errorf("infeasible assignment effectiveness = %v, want 0", got)
	}
}

func TestJammingEffectivenessIlluminationFlip(t *testing.T) {
	radar := testRadar("R1", domain.StageTracking)
	jammer := testJammer("J1", 1000)

	with := NewAnalyzer(true).JammingEffectiveness(radar, jammer, domain.TechniqueRGPO, domain.BandwidthNarrow, 1)
	without := NewAnalyzer(false).JammingEffectiveness(radar, jammer, domain.TechniqueRGPO, domain.BandwidthNarrow, 1)

	if with >= 0 {
		t.Errorf("tracking RGPO with illumination = %v, want negative", with)
	}
	if without <= 0 {
		t.Errorf("tracking RGPO without illumination = %v, want positive", without)
	}
	if math.Abs(with+without) > 1e-9 {
		t.Errorf("illumination toggle should flip the sign only: with=%v without=%v", with, without)
	}
}

func TestJammingEffectivenessMalformedPosition(t *testing.T) {
	analyzer := NewAnalyzer(true)
	radar := testRadar("R1", domain.StageSearch)
	radar.Position.Lat = math.NaN()
	jammer := testJammer("J1", 1000)

	// 坐标异常时距离因子退回中性值 0.5，而不是失败
	// (0.8 + 0.0) * 0.5 * 1.0
	got := analyzer.JammingEffectiveness(radar, jammer, domain.TechniqueNJ, domain.BandwidthNarrow, 1)
	want := 0.4
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("effectiveness with malformed position = %v, want %v", got, want)
	}
}

func TestJammingEffectivenessDistanceDecay(t *testing.T) {
	analyzer := NewAnalyzer(true)
	radar := testRadar("R1", domain.StageSearch)
	near := testJammer("J1", 1000)
	near.Position = radar.Position

	far := testJammer("J2", 1000)
	far.Position = domain.Position{Lat: 35.0, Lon: 125.0} // 远超 50km

	nearEffect := analyzer.JammingEffectiveness(radar, near, domain.TechniqueNJ, domain.BandwidthNarrow, 1)
	farEffect := analyzer.JammingEffectiveness(radar, far, domain.TechniqueNJ, domain.BandwidthNarrow, 1)

	if nearEffect <= farEffect {
		t.Errorf("near effect %v should exceed far effect %v", nearEffect, farEffect)
	}
	// 超出有效距离后衰减为 0.1
	want := 0.8 * 0.1
	if math.Abs(farEffect-want) > 1e-6 {
		t.Errorf("far effect = %v, want %v", farEffect, want)
	}
}

func TestCooperativeEffectPairwiseInteraction(t *testing.T) {
	analyzer := NewAnalyzer(true)
	radar := testRadar("R1", domain.StageSearch)
	j1 := testJammer("J1", 1000)
	j2 := testJammer("J2", 1000)

	assignments := []RadarAssignment{
		{Jammer: j1, Technique: domain.TechniqueNJ, Bandwidth: domain.BandwidthMedium, AssignedTargets: 2},
		{Jammer: j2, Technique: domain.TechniqueMFT, Bandwidth: domain.BandwidthMedium, AssignedTargets: 2},
	}

	e1 := analyzer.JammingEffectiveness(radar, j1, domain.TechniqueNJ, domain.BandwidthMedium, 2)
	e2 := analyzer.JammingEffectiveness(radar, j2, domain.TechniqueMFT, domain.BandwidthMedium, 2)
	interaction := analyzer.Tables().TechniqueInteraction(domain.TechniqueMFT, domain.TechniqueNJ)

	want := math.Max(-1.0, math.Min(1.0, e1+e2+interaction))
	got := analyzer.CooperativeEffect(radar, assignments)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("CooperativeEffect = %v, want %v", got, want)
	}
}

func TestCooperativeEffectClamped(t *testing.T) {
	analyzer := NewAnalyzer(true)
	radar := testRadar("R1", domain.StageSearch)
	radar.Power = 10 // 功率匹配因子拉满

	var assignments []RadarAssignment
	for i := 0; i < 5; i++ {
		j := testJammer("J", 1000)
		j.Position = radar.Position
		assignments = append(assignments, RadarAssignment{
			Jammer:          j,
			Technique:       domain.TechniqueMFT,
			Bandwidth:       domain.BandwidthWide,
			AssignedTargets: 5,
		})
	}

	got := analyzer.CooperativeEffect(radar, assignments)
	if got < -1.0 || got > 1.0 {
		t.Errorf("CooperativeEffect = %v, want within [-1, 1]", got)
	}
}

func TestEvaluateAssignment(t *testing.T) {
	analyzer := NewAnalyzer(true)
	r1 := testRadar("R1", domain.StageSearch)
	r2 := testRadar("R2", domain.StageTracking)
	j1 := testJammer("J1", 1000)
	j2 := testJammer("J2", 1000)
	j3 := testJammer("J3", 1000)

	radars := []domain.Radar{*r1, *r2}
	jammers := []domain.Jammer{*j1, *j2, *j3}

	target1 := "R1"
	matrix := domain.AssignmentMatrix{
		"J1": {TargetID: &target1, Technique: domain.TechniqueNJ, Bandwidth: domain.BandwidthMedium, JammerPower: 1000},
		"J2": {TargetID: &target1, Technique: domain.TechniqueCP, Bandwidth: domain.BandwidthMedium, JammerPower: 1000},
		"J3": {TargetID: nil, Technique: domain.TechniqueNJ, Bandwidth: domain.BandwidthNarrow, JammerPower: 1000},
	}

	evaluation := analyzer.EvaluateAssignment(matrix, radars, jammers)

	if got := evaluation.ResourceUtilization; math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("ResourceUtilization = %v, want 2/3", got)
	}
	if len(evaluation.RadarEffects) != 2 {
		t.Fatalf("RadarEffects size = %d, want 2", len(evaluation.RadarEffects))
	}
	if evaluation.RadarEffects["R2"] != 0.0 {
		t.Errorf("untargeted radar effect = %v, want 0", evaluation.RadarEffects["R2"])
	}

	sum := evaluation.RadarEffects["R1"] + evaluation.RadarEffects["R2"]
	if math.Abs(evaluation.TotalEffectiveness-sum) > 1e-9 {
		t.Errorf("TotalEffectiveness = %v, want sum of radar effects %v", evaluation.TotalEffectiveness, sum)
	}
}

func TestEvaluateAssignmentTotalBounds(t *testing.T) {
	analyzer := NewAnalyzer(true)
	radars := []domain.Radar{*testRadar("R1", domain.StageSearch), *testRadar("R2", domain.StageGuidance)}
	jammers := []domain.Jammer{*testJammer("J1", 1000), *testJammer("J2", 500)}

	t1, t2 := "R1", "R2"
	matrix := domain.AssignmentMatrix{
		"J1": {TargetID: &t1, Technique: domain.TechniqueMFT, Bandwidth: domain.BandwidthWide, JammerPower: 1000},
		"J2": {TargetID: &t2, Technique: domain.TechniqueRGPO, Bandwidth: domain.BandwidthNarrow, JammerPower: 500},
	}

	evaluation := analyzer.EvaluateAssignment(matrix, radars, jammers)
	bound := float64(len(radars))
	if evaluation.TotalEffectiveness < -bound || evaluation.TotalEffectiveness > bound {
		t.Errorf("TotalEffectiveness = %v, want within [-%v, %v]", evaluation.TotalEffectiveness, bound, bound)
	}
}

func TestEvaluateAssignmentDanglingReferences(t *testing.T) {
	analyzer := NewAnalyzer(true)
	radars := []domain.Radar{*testRadar("R1", domain.StageSearch)}
	jammers := []domain.Jammer{*testJammer("J1", 1000)}

	ghost := "R99"
	matrix := domain.AssignmentMatrix{
		"J1":  {TargetID: &ghost, Technique: domain.TechniqueNJ, Bandwidth: domain.BandwidthNarrow, JammerPower: 1000},
		"J99": {TargetID: &ghost, Technique: domain.TechniqueNJ, Bandwidth: domain.BandwidthNarrow, JammerPower: 1000},
	}

	// 悬空引用按效果 0 处理，不应崩溃
	evaluation := analyzer.EvaluateAssignment(matrix, radars, jammers)
	if evaluation.RadarEffects["R1"] != 0.0 {
		t.Errorf("radar effect with dangling assignments = %v, want 0", evaluation.RadarEffects["R1"])
	}
}

func TestEvaluateAssignmentEmptyScenario(t *testing.T) {
	analyzer := NewAnalyzer(true)

	evaluation := analyzer.EvaluateAssignment(domain.AssignmentMatrix{}, nil, nil)
	if evaluation.TotalEffectiveness != 0.0 || evaluation.ResourceUtilization != 0.0 || evaluation.InterruptionCount != 0 {
		t.Errorf("empty scenario evaluation = %+v, want zero values", evaluation)
	}
}

func TestGreatCircleDistance(t *testing.T) {
	// 赤道上 1 度经度 ≈ 111km
	d, ok := greatCircleDistance(domain.Position{Lat: 0, Lon: 0}, domain.Position{Lat: 0, Lon: 1})
	if !ok {
		t.Fatal("expected valid distance")
	}
	if math.Abs(d-111195) > 200 {
		t.Errorf("distance = %v, want ≈111195", d)
	}

	if _, ok := greatCircleDistance(domain.Position{Lat: 91, Lon: 0}, domain.Position{Lat: 0, Lon: 0}); ok {
		t.Error("latitude out of range should be invalid")
	}
}
