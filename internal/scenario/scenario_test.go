package scenario

import (
	"reflect"
	"testing"

	"github.com/coteja-lab/ew-jamming/backend/internal/domain"
)

func TestGenerateCounts(t *testing.T) {
	s := Generate(&Options{RadarCount: 4, JammerCount: 6, Seed: 1})
	if len(s.Radars) != 4 {
		t.Errorf("radars = %d, want 4", len(s.Radars))
	}
	if len(s.Jammers) != 6 {
		t.Errorf("jammers = %d, want 6", len(s.Jammers))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(&Options{RadarCount: 3, JammerCount: 5, Seed: 77})
	b := Generate(&Options{RadarCount: 3, JammerCount: 5, Seed: 77})
	if !reflect.DeepEqual(a, b) {
		t.Error("identical seeds should produce identical scenarios")
	}
}

func TestGenerateFieldRanges(t *testing.T) {
	s := Generate(&Options{RadarCount: 10, JammerCount: 10, Seed: 3})

	validStage := func(stage domain.Stage) bool {
		for _, known := range domain.Stages {
			if stage == known {
				return true
			}
		}
		return false
	}

	for _, radar := range s.Radars {
		if radar.ID == "" || radar.Name == "" {
			t.Errorf("radar missing identity: %+v", radar)
		}
		if radar.Frequency < 3000 || radar.Frequency > 9000 {
			t.Errorf("radar frequency = %v, want within [3000, 9000]", radar.Frequency)
		}
		if radar.InterruptionThreshold < 0.3 || radar.InterruptionThreshold > 0.7 {
			t.Errorf("interruption threshold = %v, want within [0.3, 0.7]", radar.InterruptionThreshold)
		}
		if !validStage(radar.CurrentStage) {
			t.Errorf("unknown radar stage %q", radar.CurrentStage)
		}
		if radar.Position.Lat < defaultCenterLat-spreadDegrees || radar.Position.Lat > defaultCenterLat+spreadDegrees {
			t.Errorf("radar latitude %v outside deployment spread", radar.Position.Lat)
		}
	}

	for _, jammer := range s.Jammers {
		if jammer.Power < 300 || jammer.Power > 1200 {
			t.Errorf("jammer power = %v, want within [300, 1200]", jammer.Power)
		}
	}
}

func TestGenerateCustomCenter(t *testing.T) {
	s := Generate(&Options{RadarCount: 5, JammerCount: 0, CenterLat: 45.0, CenterLon: 10.0, Seed: 9})
	for _, radar := range s.Radars {
		if radar.Position.Lat < 45.0-spreadDegrees || radar.Position.Lat > 45.0+spreadDegrees {
			t.Errorf("radar latitude %v outside custom center spread", radar.Position.Lat)
		}
		if radar.Position.Lon < 10.0-spreadDegrees || radar.Position.Lon > 10.0+spreadDegrees {
			t.Errorf("radar longitude %v outside custom center spread", radar.Position.Lon)
		}
	}
}
