package usecase

import (
	"context"

	"github.com/diillson/aws-iam-access-report-go/internal/domain/entity"
)

// Aggregate roda o job de cada policy resolvida e junta tudo em registros
// exportáveis. Falha ao buscar o nome de uma policy aborta a agregação inteira.
func (uc *ReportUseCase) Aggregate(ctx context.Context, userName string) ([]entity.AccessRecord, []entity.PolicySummary, error) {
	status := uc.console.Status("Resolving policies for user " + userName)
	arns, err := uc.ResolvePolicies(ctx, userName)
	status.Stop()
	if err != nil {
		return nil, nil, err
	}
	if len(arns) == 0 {
		uc.console.LogWarning("No managed policies attached to user %s", userName)
		return nil, nil, nil
	}

	progress := uc.console.ProgressWithTotal(len(arns))
	defer progress.Stop()

	var records []entity.AccessRecord
	summaries := make([]entity.PolicySummary, 0, len(arns))

	for _, arn := range arns {
		policyName, err := uc.iamRepo.GetPolicyName(ctx, arn)
		if err != nil {
			return nil, nil, err
		}

		rows, job, err := uc.runJob(ctx, arn)
		if err != nil {
			return nil, nil, err
		}

		summary := entity.PolicySummary{PolicyArn: arn, PolicyName: policyName, JobStatus: job.Status}
		services := make(map[string]bool)
		for _, row := range rows {
			if row.PolicyArn != arn {
				uc.logger.Warn("row policy arn differs from requested policy", "requested", arn, "row", row.PolicyArn)
			}
			records = append(records, entity.NewAccessRecord(userName, policyName, row))

			services[row.ServiceName] = true
			if row.ActionName != entity.NoActionData {
				summary.Actions++
			}
			if row.LastAccessed == nil {
				summary.NeverUsed++
			}
		}
		summary.Services = len(services)
		summaries = append(summaries, summary)

		progress.Increment()
	}

	return records, summaries, nil
}
