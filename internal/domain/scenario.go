package domain

type Scenario struct {
	Radars  []Radar  `json:"radars" validate:"dive"`
	Jammers []Jammer `json:"jammers" validate:"dive"`
}

func (s *Scenario) RadarByID(id string) *Radar {
	for i := range s.Radars {
		if s.Radars[i].ID == id {
			return &s.Radars[i]
		}
	}
	return nil
}

func (s *Scenario) JammerByID(id string) *Jammer {
	for i := range s.Jammers {
		if s.Jammers[i].ID == id {
			return &s.Jammers[i]
		}
	}
	return nil
}
