package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamTypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/diillson/aws-iam-access-report-go/internal/domain/entity"
	"github.com/diillson/aws-iam-access-report-go/internal/domain/repository"
)

// IAMAPI é o subconjunto do cliente IAM usado pelo relatório.
type IAMAPI interface {
	ListAttachedUserPolicies(ctx context.Context, params *iam.ListAttachedUserPoliciesInput, optFns ...func(*iam.Options)) (*iam.ListAttachedUserPoliciesOutput, error)
	ListGroupsForUser(ctx context.Context, params *iam.ListGroupsForUserInput, optFns ...func(*iam.Options)) (*iam.ListGroupsForUserOutput, error)
	ListAttachedGroupPolicies(ctx context.Context, params *iam.ListAttachedGroupPoliciesInput, optFns ...func(*iam.Options)) (*iam.ListAttachedGroupPoliciesOutput, error)
	GetPolicy(ctx context.Context, params *iam.GetPolicyInput, optFns ...func(*iam.Options)) (*iam.GetPolicyOutput, error)
	GenerateServiceLastAccessedDetails(ctx context.Context, params *iam.GenerateServiceLastAccessedDetailsInput, optFns ...func(*iam.Options)) (*iam.GenerateServiceLastAccessedDetailsOutput, error)
	GetServiceLastAccessedDetails(ctx context.Context, params *iam.GetServiceLastAccessedDetailsInput, optFns ...func(*iam.Options)) (*iam.GetServiceLastAccessedDetailsOutput, error)
}

// STSAPI é usado apenas para descobrir a conta em uso.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// IAMRepositoryImpl implementa o IAMRepository sobre o aws-sdk-go-v2.
type IAMRepositoryImpl struct {
	session *Session
	iam     IAMAPI
	sts     STSAPI
}

// NewIAMRepository cria um IAMRepository que obtém os clientes da Session.
func NewIAMRepository(session *Session) repository.IAMRepository {
	return &IAMRepositoryImpl{session: session}
}

// NewIAMRepositoryWithClients usa clientes já construídos (útil para testes).
func NewIAMRepositoryWithClients(iamClient IAMAPI, stsClient STSAPI) *IAMRepositoryImpl {
	return &IAMRepositoryImpl{iam: iamClient, sts: stsClient}
}

func (r *IAMRepositoryImpl) iamClient(ctx context.Context) (IAMAPI, error) {
	if r.iam != nil {
		return r.iam, nil
	}
	client, err := r.session.getServiceClient(ctx, "iam")
	if err != nil {
		return nil, err
	}
	r.iam = client.(*iam.Client)
	return r.iam, nil
}

func (r *IAMRepositoryImpl) stsClient(ctx context.Context) (STSAPI, error) {
	if r.sts != nil {
		return r.sts, nil
	}
	client, err := r.session.getServiceClient(ctx, "sts")
	if err != nil {
		return nil, err
	}
	r.sts = client.(*sts.Client)
	return r.sts, nil
}

func (r *IAMRepositoryImpl) GetAccountID(ctx context.Context) (string, error) {
	client, err := r.stsClient(ctx)
	if err != nil {
		return "", err
	}

	result, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting caller identity: %w", err)
	}
	return aws.ToString(result.Account), nil
}

func (r *IAMRepositoryImpl) ListAttachedUserPolicies(ctx context.Context, userName string) ([]entity.PolicyReference, error) {
	client, err := r.iamClient(ctx)
	if err != nil {
		return nil, err
	}

	var policies []entity.PolicyReference
	paginator := iam.NewListAttachedUserPoliciesPaginator(client, &iam.ListAttachedUserPoliciesInput{
		UserName: aws.String(userName),
	})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ListAttachedUserPolicies(%s): %w", userName, err)
		}
		policies = append(policies, toPolicyReferences(output.AttachedPolicies)...)
	}
	return policies, nil
}

func (r *IAMRepositoryImpl) ListGroupsForUser(ctx context.Context, userName string) ([]entity.GroupReference, error) {
	client, err := r.iamClient(ctx)
	if err != nil {
		return nil, err
	}

	var groups []entity.GroupReference
	paginator := iam.NewListGroupsForUserPaginator(client, &iam.ListGroupsForUserInput{
		UserName: aws.String(userName),
	})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ListGroupsForUser(%s): %w", userName, err)
		}
		for _, g := range output.Groups {
			groups = append(groups, entity.GroupReference{
				Name: aws.ToString(g.GroupName),
				Arn:  aws.ToString(g.Arn),
			})
		}
	}
	return groups, nil
}

func (r *IAMRepositoryImpl) ListAttachedGroupPolicies(ctx context.Context, groupName string) ([]entity.PolicyReference, error) {
	client, err := r.iamClient(ctx)
	if err != nil {
		return nil, err
	}

	var policies []entity.PolicyReference
	paginator := iam.NewListAttachedGroupPoliciesPaginator(client, &iam.ListAttachedGroupPoliciesInput{
		GroupName: aws.String(groupName),
	})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ListAttachedGroupPolicies(%s): %w", groupName, err)
		}
		policies = append(policies, toPolicyReferences(output.AttachedPolicies)...)
	}
	return policies, nil
}

func (r *IAMRepositoryImpl) GetPolicyName(ctx context.Context, policyArn string) (string, error) {
	client, err := r.iamClient(ctx)
	if err != nil {
		return "", err
	}

	output, err := client.GetPolicy(ctx, &iam.GetPolicyInput{PolicyArn: aws.String(policyArn)})
	if err != nil {
		return "", fmt.Errorf("GetPolicy(%s): %w", policyArn, err)
	}
	if output.Policy == nil {
		return "", fmt.Errorf("GetPolicy(%s): empty policy in response", policyArn)
	}
	return aws.ToString(output.Policy.PolicyName), nil
}

func (r *IAMRepositoryImpl) GenerateServiceLastAccessedDetails(ctx context.Context, policyArn string) (string, error) {
	client, err := r.iamClient(ctx)
	if err != nil {
		return "", err
	}

	output, err := client.GenerateServiceLastAccessedDetails(ctx, &iam.GenerateServiceLastAccessedDetailsInput{
		Arn:         aws.String(policyArn),
		Granularity: iamTypes.AccessAdvisorUsageGranularityTypeActionLevel,
	})
	if err != nil {
		return "", fmt.Errorf("GenerateServiceLastAccessedDetails(%s): %w", policyArn, err)
	}
	return aws.ToString(output.JobId), nil
}

// GetServiceLastAccessedDetails consulta o job. Com o job concluído, todas as
// páginas de serviços são lidas antes de retornar.
func (r *IAMRepositoryImpl) GetServiceLastAccessedDetails(ctx context.Context, jobID string) (entity.JobResult, error) {
	client, err := r.iamClient(ctx)
	if err != nil {
		return entity.JobResult{}, err
	}

	var result entity.JobResult
	var marker *string

	for {
		output, err := client.GetServiceLastAccessedDetails(ctx, &iam.GetServiceLastAccessedDetailsInput{
			JobId:  aws.String(jobID),
			Marker: marker,
		})
		if err != nil {
			return entity.JobResult{}, fmt.Errorf("GetServiceLastAccessedDetails(%s): %w", jobID, err)
		}

		result.Status = entity.JobStatus(output.JobStatus)
		if output.Error != nil {
			result.ErrorMessage = aws.ToString(output.Error.Message)
		}
		if result.Status != entity.JobStatusCompleted {
			return result, nil
		}

		for _, svc := range output.ServicesLastAccessed {
			result.Services = append(result.Services, toServiceLastAccessed(svc))
		}

		if !output.IsTruncated || output.Marker == nil {
			break
		}
		marker = output.Marker
	}

	return result, nil
}

func toPolicyReferences(attached []iamTypes.AttachedPolicy) []entity.PolicyReference {
	refs := make([]entity.PolicyReference, 0, len(attached))
	for _, p := range attached {
		refs = append(refs, entity.PolicyReference{
			Arn:  aws.ToString(p.PolicyArn),
			Name: aws.ToString(p.PolicyName),
		})
	}
	return refs
}

func toServiceLastAccessed(svc iamTypes.ServiceLastAccessed) entity.ServiceLastAccessed {
	out := entity.ServiceLastAccessed{
		ServiceName:       aws.ToString(svc.ServiceName),
		ServiceNamespace:  aws.ToString(svc.ServiceNamespace),
		LastAuthenticated: svc.LastAuthenticated,
	}
	if out.ServiceName == "" {
		out.ServiceName = entity.UnknownService
	}
	for _, action := range svc.TrackedActionsLastAccessed {
		name := aws.ToString(action.ActionName)
		if name == "" {
			name = entity.UnknownAction
		}
		out.TrackedActions = append(out.TrackedActions, entity.TrackedAction{
			ActionName:         name,
			LastAccessedTime:   action.LastAccessedTime,
			LastAccessedRegion: aws.ToString(action.LastAccessedRegion),
		})
	}
	return out
}
