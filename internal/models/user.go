package models

// UserProfile is supplied per request and never persisted on its own; it is
// embedded into the analysis record as input parameters.
type UserProfile struct {
	UserID      string   `json:"user_id"`
	Age         float64  `json:"age,omitempty"`
	Weight      float64  `json:"weight,omitempty"` // kg
	Height      float64  `json:"height,omitempty"` // cm
	Gender      string   `json:"gender,omitempty"`
	Symptoms    []string `json:"symptoms,omitempty"`
	HealthGoals []string `json:"health_goals,omitempty"`
}
