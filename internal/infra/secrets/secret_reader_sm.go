package secrets

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// Reader fetches secret payloads from Google Secret Manager. It is used at
// startup to load the SendGrid API key when it is not in the environment.
type Reader struct {
	sm        *secretmanager.Client
	projectID string
}

func NewReader(ctx context.Context, projectID string) (*Reader, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, errors.New("secrets: projectID is empty")
	}
	sm, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Reader{sm: sm, projectID: projectID}, nil
}

// Read returns the latest version of the named secret, trimmed.
func (r *Reader) Read(ctx context.Context, secretID string) (string, error) {
	if r == nil || r.sm == nil {
		return "", errors.New("secrets: reader not configured")
	}
	sid := strings.TrimSpace(secretID)
	if sid == "" {
		return "", errors.New("secrets: secretID is empty")
	}

	name := "projects/" + r.projectID + "/secrets/" + sid + "/versions/latest"
	resp, err := r.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.New("secrets: AccessSecretVersion failed (" + name + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("secrets: empty payload (" + name + ")")
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

func (r *Reader) Close() error {
	if r == nil || r.sm == nil {
		return nil
	}
	return r.sm.Close()
}
