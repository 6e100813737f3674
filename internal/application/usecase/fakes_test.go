package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/aws-iam-access-report-go/internal/domain/entity"
	"github.com/diillson/aws-iam-access-report-go/internal/shared/types"
)

type fakeIAMRepo struct {
	accountID  string
	accountErr error

	userPolicies    map[string][]entity.PolicyReference
	userPoliciesErr error
	groups          map[string][]entity.GroupReference
	groupPolicies   map[string][]entity.PolicyReference
	policyNames     map[string]string
	policyNameErr   map[string]error

	// jobs guarda a sequência de respostas de polling por ARN; a última se repete.
	jobs        map[string][]entity.JobResult
	generateErr error

	generated []string
	polls     map[string]int
	calls     int
}

func newFakeIAMRepo() *fakeIAMRepo {
	return &fakeIAMRepo{
		accountID:     "123456789012",
		userPolicies:  map[string][]entity.PolicyReference{},
		groups:        map[string][]entity.GroupReference{},
		groupPolicies: map[string][]entity.PolicyReference{},
		policyNames:   map[string]string{},
		policyNameErr: map[string]error{},
		jobs:          map[string][]entity.JobResult{},
		polls:         map[string]int{},
	}
}

func (f *fakeIAMRepo) GetAccountID(ctx context.Context) (string, error) {
	return f.accountID, f.accountErr
}

func (f *fakeIAMRepo) ListAttachedUserPolicies(ctx context.Context, userName string) ([]entity.PolicyReference, error) {
	f.calls++
	if f.userPoliciesErr != nil {
		return nil, f.userPoliciesErr
	}
	return f.userPolicies[userName], nil
}

func (f *fakeIAMRepo) ListGroupsForUser(ctx context.Context, userName string) ([]entity.GroupReference, error) {
	f.calls++
	return f.groups[userName], nil
}

func (f *fakeIAMRepo) ListAttachedGroupPolicies(ctx context.Context, groupName string) ([]entity.PolicyReference, error) {
	f.calls++
	return f.groupPolicies[groupName], nil
}

func (f *fakeIAMRepo) GetPolicyName(ctx context.Context, policyArn string) (string, error) {
	f.calls++
	if err := f.policyNameErr[policyArn]; err != nil {
		return "", err
	}
	if name, ok := f.policyNames[policyArn]; ok {
		return name, nil
	}
	return policyArn[strings.LastIndex(policyArn, "/")+1:], nil
}

func (f *fakeIAMRepo) GenerateServiceLastAccessedDetails(ctx context.Context, policyArn string) (string, error) {
	f.calls++
	if f.generateErr != nil {
		return "", f.generateErr
	}
	f.generated = append(f.generated, policyArn)
	return "job-" + policyArn, nil
}

func (f *fakeIAMRepo) GetServiceLastAccessedDetails(ctx context.Context, jobID string) (entity.JobResult, error) {
	f.calls++
	arn := strings.TrimPrefix(jobID, "job-")
	seq, ok := f.jobs[arn]
	if !ok || len(seq) == 0 {
		return entity.JobResult{Status: entity.JobStatusInProgress}, nil
	}
	i := f.polls[jobID]
	f.polls[jobID]++
	if i >= len(seq) {
		i = len(seq) - 1
	}
	return seq[i], nil
}

type fakeStorage struct {
	localPath, bucket, key string
	err                    error
}

func (f *fakeStorage) Upload(ctx context.Context, localPath, bucket, key string) (string, error) {
	f.localPath, f.bucket, f.key = localPath, bucket, key
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}

type fakeConsole struct {
	printed   []string
	infos     []string
	warnings  []string
	errors    []string
	successes []string
	progress  *fakeProgress
}

func (c *fakeConsole) Print(a ...interface{})                 { c.printed = append(c.printed, fmt.Sprint(a...)) }
func (c *fakeConsole) Printf(format string, a ...interface{}) { c.printed = append(c.printed, fmt.Sprintf(format, a...)) }
func (c *fakeConsole) Println(a ...interface{})               { c.printed = append(c.printed, fmt.Sprintln(a...)) }

func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.successes = append(c.successes, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Status(message string) types.StatusHandle { return &fakeStatus{} }

func (c *fakeConsole) ProgressWithTotal(total int) types.ProgressHandle {
	c.progress = &fakeProgress{total: total}
	return c.progress
}

func (c *fakeConsole) CreateTable() types.TableInterface { return &fakeTable{} }

type fakeStatus struct{}

func (s *fakeStatus) Update(message string) {}
func (s *fakeStatus) Stop()                 {}

type fakeProgress struct {
	total, count int
	stopped      bool
}

func (p *fakeProgress) Increment() { p.count++ }
func (p *fakeProgress) Stop()      { p.stopped = true }

type fakeTable struct {
	columns []string
	rows    [][]interface{}
}

func (t *fakeTable) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

func (t *fakeTable) AddRow(cells ...interface{}) { t.rows = append(t.rows, cells) }

func (t *fakeTable) Render() string {
	return fmt.Sprintf("table(%d columns, %d rows)", len(t.columns), len(t.rows))
}
