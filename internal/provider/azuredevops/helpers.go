package azuredevops

import (
	"fmt"
	"strings"

	"github.com/johanforsgren/lgtmthreads/internal/provider/common"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/git"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/webapi"
)

func extractBranchName(refName *string) string {
	return strings.TrimPrefix(common.Deref(refName), "refs/heads/")
}

func buildRepositoryIdentifier(projectName, repoName string) string {
	return fmt.Sprintf("%s/%s", projectName, repoName)
}

func buildPRWebURL(pr *git.GitPullRequest) string {
	if pr.Repository == nil || pr.Repository.WebUrl == nil {
		return ""
	}
	return fmt.Sprintf("%s/pullrequest/%d", *pr.Repository.WebUrl, common.Deref(pr.PullRequestId))
}

// matchesUser compares an identity with the username stored on the PAT,
// which may be a display name or the local part of the sign-in address.
func matchesUser(identity *webapi.IdentityRef, username string) bool {
	if identity == nil || username == "" {
		return false
	}

	displayName := common.Deref(identity.DisplayName)
	uniqueName := common.Deref(identity.UniqueName)

	return strings.EqualFold(displayName, username) ||
		strings.EqualFold(uniqueName, username) ||
		strings.HasPrefix(strings.ToLower(uniqueName), strings.ToLower(username)+"@")
}
