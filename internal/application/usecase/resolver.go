package usecase

import (
	"context"
	"sort"
)

// ResolvePolicies retorna as ARNs de todas as managed policies aplicadas ao
// usuário, diretamente ou via grupos, sem duplicatas.
// Qualquer erro remoto interrompe a resolução sem resultado parcial.
func (uc *ReportUseCase) ResolvePolicies(ctx context.Context, userName string) ([]string, error) {
	seen := make(map[string]bool)
	var arns []string
	add := func(arn string) {
		if arn == "" || seen[arn] {
			return
		}
		seen[arn] = true
		arns = append(arns, arn)
	}

	direct, err := uc.iamRepo.ListAttachedUserPolicies(ctx, userName)
	if err != nil {
		return nil, err
	}
	for _, p := range direct {
		add(p.Arn)
	}

	groups, err := uc.iamRepo.ListGroupsForUser(ctx, userName)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		groupPolicies, err := uc.iamRepo.ListAttachedGroupPolicies(ctx, g.Name)
		if err != nil {
			return nil, err
		}
		for _, p := range groupPolicies {
			add(p.Arn)
		}
	}

	uc.logger.Debug("policies resolved", "user", userName, "direct", len(direct), "groups", len(groups), "unique", len(arns))

	if uc.sortPolicies {
		sort.Strings(arns)
	}
	return arns, nil
}
