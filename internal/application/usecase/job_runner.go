package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/aws-iam-access-report-go/internal/domain/entity"
	"github.com/diillson/aws-iam-access-report-go/internal/shared/types"
)

// RunJob gera o relatório ACTION_LEVEL de uma policy e devolve as linhas
// normalizadas. Um job FAILED é registrado no stderr e resulta em zero linhas.
func (uc *ReportUseCase) RunJob(ctx context.Context, policyArn string) ([]entity.AccessRow, error) {
	rows, _, err := uc.runJob(ctx, policyArn)
	return rows, err
}

func (uc *ReportUseCase) runJob(ctx context.Context, policyArn string) ([]entity.AccessRow, entity.UsageJob, error) {
	jobID, err := uc.iamRepo.GenerateServiceLastAccessedDetails(ctx, policyArn)
	if err != nil {
		return nil, entity.UsageJob{PolicyArn: policyArn}, err
	}

	job := entity.UsageJob{PolicyArn: policyArn, JobID: jobID, Status: entity.JobStatusInProgress}
	result, err := uc.waitForJob(ctx, &job)
	if err != nil {
		return nil, job, err
	}

	if job.Status == entity.JobStatusFailed {
		if result.ErrorMessage != "" {
			uc.console.LogError("Failed to get service last accessed details for %s: %s", policyArn, result.ErrorMessage)
		} else {
			uc.console.LogError("Failed to get service last accessed details for %s", policyArn)
		}
		return nil, job, nil
	}

	return normalizeServices(policyArn, result.Services), job, nil
}

// waitForJob consulta o job em intervalo fixo até COMPLETED ou FAILED.
func (uc *ReportUseCase) waitForJob(ctx context.Context, job *entity.UsageJob) (entity.JobResult, error) {
	for {
		result, err := uc.iamRepo.GetServiceLastAccessedDetails(ctx, job.JobID)
		if err != nil {
			return entity.JobResult{}, err
		}
		job.Attempts++
		job.Status = result.Status

		uc.logger.Debug("polled last accessed job", "policy", job.PolicyArn, "job_id", job.JobID, "status", job.Status, "attempt", job.Attempts)

		if job.Status.Done() {
			return result, nil
		}
		if job.Attempts >= uc.maxPollAttempts {
			return entity.JobResult{}, fmt.Errorf("%w: policy %s, job %s, %d attempts", types.ErrJobTimedOut, job.PolicyArn, job.JobID, job.Attempts)
		}
		if err := uc.wait(ctx, uc.pollInterval); err != nil {
			return entity.JobResult{}, err
		}
	}
}

// normalizeServices achata o resultado por serviço em linhas por ação, na
// ordem devolvida pela AWS.
func normalizeServices(policyArn string, services []entity.ServiceLastAccessed) []entity.AccessRow {
	var rows []entity.AccessRow
	for _, svc := range services {
		if len(svc.TrackedActions) == 0 {
			rows = append(rows, entity.AccessRow{
				PolicyArn:    policyArn,
				ServiceName:  svc.ServiceName,
				ActionName:   entity.NoActionData,
				LastAccessed: svc.LastAuthenticated,
			})
			continue
		}
		for _, action := range svc.TrackedActions {
			rows = append(rows, entity.AccessRow{
				PolicyArn:    policyArn,
				ServiceName:  svc.ServiceName,
				ActionName:   action.ActionName,
				LastAccessed: action.LastAccessedTime,
			})
		}
	}
	return rows
}
