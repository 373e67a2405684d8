package model

type ActiveJobs struct {
	ActiveJobs int64 `json:"activeJobs"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// QueueStats is the breakdown printed by the inspect command.
type QueueStats struct {
	Queue         string `json:"queue"`
	Strategy      string `json:"strategy"`
	Pending       int64  `json:"pending"`
	ActiveWorkers int64  `json:"activeWorkers"`
	ActiveJobs    int64  `json:"activeJobs"`
}
