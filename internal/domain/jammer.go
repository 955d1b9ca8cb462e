package domain

type Jammer struct {
	ID       string   `json:"id" validate:"required"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Power    float64  `json:"power" validate:"min=0"` // kW
}
