package repository

import (
	"context"

	"github.com/diillson/aws-iam-access-report-go/internal/domain/entity"
)

// IAMRepository define as chamadas ao IAM/STS usadas pelo relatório.
type IAMRepository interface {
	// Identity
	GetAccountID(ctx context.Context) (string, error)

	// Policy resolution
	ListAttachedUserPolicies(ctx context.Context, userName string) ([]entity.PolicyReference, error)
	ListGroupsForUser(ctx context.Context, userName string) ([]entity.GroupReference, error)
	ListAttachedGroupPolicies(ctx context.Context, groupName string) ([]entity.PolicyReference, error)
	GetPolicyName(ctx context.Context, policyArn string) (string, error)

	// Service last accessed jobs (ACTION_LEVEL)
	GenerateServiceLastAccessedDetails(ctx context.Context, policyArn string) (string, error)
	GetServiceLastAccessedDetails(ctx context.Context, jobID string) (entity.JobResult, error)
}
