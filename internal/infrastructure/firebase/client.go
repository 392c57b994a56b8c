package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// CredentialOption resolves the service account, preferring the JSON blob in
// the environment (production) over a key file path (local development).
func CredentialOption() (option.ClientOption, error) {
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		return option.WithCredentialsJSON([]byte(serviceAccountJSON)), nil
	}

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountPath == "" {
		return nil, fmt.Errorf("no firebase credentials configured")
	}
	if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("service account file does not exist: %s", serviceAccountPath)
	}
	return option.WithCredentialsFile(serviceAccountPath), nil
}

// NewFirestoreClient bootstraps the Firebase app for the project and hands
// back its Firestore handle.
func NewFirestoreClient(ctx context.Context, projectID string, opt option.ClientOption) (*firestore.Client, error) {
	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return client, nil
}
