package yourang

import (
	"context"
	"net/http"

	"github.com/tombee/yourang/internal/operation/api"
)

// CredentialTestPath is the endpoint used to check an API key.
const CredentialTestPath = "/profile"

// VerifyCredentials sends GET /profile and returns the profile of the
// account the key belongs to.
func VerifyCredentials(ctx context.Context, r Requester) (any, error) {
	return r.Do(ctx, &api.Request{Method: http.MethodGet, Path: CredentialTestPath})
}
