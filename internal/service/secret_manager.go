package service

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// FetchSecret reads one secret version from GCP Secret Manager. Used at
// startup to resolve the inference API credential when it is not supplied
// directly in the environment.
func FetchSecret(ctx context.Context, versionResource string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	defer client.Close()

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: versionResource,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version %s: %w", versionResource, err)
	}
	return string(result.Payload.Data), nil
}
