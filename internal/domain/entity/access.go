package entity

import "time"

const (
	// NoActionData marca um serviço sem ações rastreadas no resultado do job.
	NoActionData = "NO_ACTION_DATA"
	// NeverAccessed é o texto exportado quando não existe timestamp de acesso.
	NeverAccessed = "Never"

	UnknownService = "UnknownService"
	UnknownAction  = "UnknownAction"

	// LastAccessedLayout é o formato ISO-8601 usado no relatório (sempre em UTC).
	LastAccessedLayout = "2006-01-02T15:04:05"
)

// AccessRecordColumns é a ordem fixa das colunas em todos os formatos.
var AccessRecordColumns = []string{
	"UserName",
	"PolicyName",
	"PolicyArn",
	"ServiceName",
	"ActionName",
	"LastAccessed",
}

// AccessRow é uma linha normalizada produzida pelo job de last-accessed.
// LastAccessed é nil quando o serviço nunca registrou uso.
type AccessRow struct {
	PolicyArn    string
	ServiceName  string
	ActionName   string
	LastAccessed *time.Time
}

// AccessRecord é a unidade exportada do relatório.
type AccessRecord struct {
	UserName     string `json:"UserName" yaml:"UserName" xml:"UserName"`
	PolicyName   string `json:"PolicyName" yaml:"PolicyName" xml:"PolicyName"`
	PolicyArn    string `json:"PolicyArn" yaml:"PolicyArn" xml:"PolicyArn"`
	ServiceName  string `json:"ServiceName" yaml:"ServiceName" xml:"ServiceName"`
	ActionName   string `json:"ActionName" yaml:"ActionName" xml:"ActionName"`
	LastAccessed string `json:"LastAccessed" yaml:"LastAccessed" xml:"LastAccessed"`
}

// Values retorna os campos na mesma ordem de AccessRecordColumns.
func (r AccessRecord) Values() []string {
	return []string{r.UserName, r.PolicyName, r.PolicyArn, r.ServiceName, r.ActionName, r.LastAccessed}
}

// FormatLastAccessed converte o timestamp opcional para o texto do relatório.
func FormatLastAccessed(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NeverAccessed
	}
	return t.UTC().Format(LastAccessedLayout)
}

// NewAccessRecord monta o registro exportável a partir de uma linha normalizada.
func NewAccessRecord(userName, policyName string, row AccessRow) AccessRecord {
	return AccessRecord{
		UserName:     userName,
		PolicyName:   policyName,
		PolicyArn:    row.PolicyArn,
		ServiceName:  row.ServiceName,
		ActionName:   row.ActionName,
		LastAccessed: FormatLastAccessed(row.LastAccessed),
	}
}
