package datasource

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v53/github"
)

// CheckAccessToken verifies the classic token scopes reported by GitHub.
// Fine grained tokens report no scopes and are accepted as is.
func CheckAccessToken(ctx context.Context, client *github.Client, expectedScopes []string) error {
	_, resp, err := client.Users.Get(ctx, "")
	if err != nil {
		return err
	}
	scopesStr := resp.Header.Get("X-OAuth-Scopes")
	if scopesStr == "" {
		return nil
	}
	scopes := strings.Split(scopesStr, ",")
	missing := []string{}
	for _, es := range expectedScopes {
		found := false
		for _, s := range scopes {
			trimmed := strings.Trim(s, " ")
			if trimmed == es {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, es)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("Required scopes are [%s]. Did not find [%s].\nPlease re-issue a new token with the required scopes.", strings.Join(expectedScopes, ","), strings.Join(missing, ","))
}
