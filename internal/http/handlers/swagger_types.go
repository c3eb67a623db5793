package handlers

// HealthResponse is the /healthz payload.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// JobAcceptedResponse acknowledges a job trigger. The job itself runs
// in the background; its outcome only shows up in the process logs.
type JobAcceptedResponse struct {
	Status string `json:"status" example:"accepted"`
	Job    string `json:"job" example:"backblasts"`
}
