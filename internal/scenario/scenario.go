package scenario

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/coteja-lab/ew-jamming/backend/internal/domain"
)

// 演示场景的默认部署中心与散布范围（度）
const (
	defaultCenterLat = 30.5
	defaultCenterLon = 120.2
	spreadDegrees    = 0.35
)

type Options struct {
	RadarCount  int
	JammerCount int
	CenterLat   float64
	CenterLon   float64
	Seed        int64 // 0 表示按当前时间取种
}

// Generate 随机生成一个演示场景，供前端联调和测试使用
func Generate(opts *Options) *domain.Scenario {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	centerLat, centerLon := opts.CenterLat, opts.CenterLon
	if centerLat == 0 && centerLon == 0 {
		centerLat, centerLon = defaultCenterLat, defaultCenterLon
	}

	s := &domain.Scenario{
		Radars:  make([]domain.Radar, 0, opts.RadarCount),
		Jammers: make([]domain.Jammer, 0, opts.JammerCount),
	}

	for i := 0; i < opts.RadarCount; i++ {
		s.Radars = append(s.Radars, domain.Radar{
			ID:   fmt.Sprintf("R%d", i+1),
			Name: fmt.Sprintf("雷达-%02d", i+1),
			Position: domain.Position{
				Lat: centerLat + (rng.Float64()*2-1)*spreadDegrees,
				Lon: centerLon + (rng.Float64()*2-1)*spreadDegrees,
				Alt: rng.Float64() * 500,
			},
			Frequency:             3000 + rng.Float64()*6000, // S~X 波段
			Power:                 80 + rng.Float64()*40,
			CurrentStage:          domain.Stages[rng.Intn(len(domain.Stages))],
			InterruptionThreshold: 0.3 + rng.Float64()*0.4,
		})
	}

	for i := 0; i < opts.JammerCount; i++ {
		s.Jammers = append(s.Jammers, domain.Jammer{
			ID:   fmt.Sprintf("J%d", i+1),
			Name: fmt.Sprintf("干扰机-%02d", i+1),
			Position: domain.Position{
				Lat: centerLat + (rng.Float64()*2-1)*spreadDegrees,
				Lon: centerLon + (rng.Float64()*2-1)*spreadDegrees,
				Alt: 3000 + rng.Float64()*5000,
			},
			Power: 300 + rng.Float64()*900,
		})
	}

	return s
}
