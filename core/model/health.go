package model

// ComponentHealth describes the validation outcome for one component during
// a system health check.
type ComponentHealth struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

// HealthReport aggregates validation results for an entire system state.
type HealthReport struct {
	Healthy            bool                       `json:"healthy"`
	Components         map[string]ComponentHealth `json:"components"`
	CriticalViolations int                        `json:"critical_violations"`
	Warnings           int                        `json:"warnings"`
}
