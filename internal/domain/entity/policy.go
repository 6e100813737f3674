package entity

// PolicyReference identifica uma managed policy aplicada ao usuário.
// Name é resolvido apenas durante a agregação.
type PolicyReference struct {
	Arn  string `json:"arn"`
	Name string `json:"name,omitempty"`
}

// GroupReference representa um grupo IAM do qual o usuário faz parte.
type GroupReference struct {
	Name string `json:"name"`
	Arn  string `json:"arn,omitempty"`
}

// PolicySummary resume o resultado de uma policy para a tabela do console.
type PolicySummary struct {
	PolicyArn  string    `json:"policy_arn"`
	PolicyName string    `json:"policy_name"`
	Services   int       `json:"services"`
	Actions    int       `json:"actions"`
	NeverUsed  int       `json:"never_used"`
	JobStatus  JobStatus `json:"job_status"`
}
