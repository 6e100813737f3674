package entity

import "time"

// JobStatus espelha o status do job assíncrono de last-accessed.
type JobStatus string

const (
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)

// Done indica se o job chegou a um estado terminal.
func (s JobStatus) Done() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// UsageJob guarda o último status observado de um job por policy.
type UsageJob struct {
	PolicyArn string
	JobID     string
	Status    JobStatus
	Attempts  int
}

// TrackedAction é o último acesso registrado para uma ação específica.
type TrackedAction struct {
	ActionName         string
	LastAccessedTime   *time.Time
	LastAccessedRegion string
}

// ServiceLastAccessed é uma entrada por serviço do resultado do job.
type ServiceLastAccessed struct {
	ServiceName       string
	ServiceNamespace  string
	LastAuthenticated *time.Time
	TrackedActions    []TrackedAction
}

// JobResult é o retorno de uma consulta ao job.
// Services só é preenchido quando Status == COMPLETED.
type JobResult struct {
	Status       JobStatus
	Services     []ServiceLastAccessed
	ErrorMessage string
}
