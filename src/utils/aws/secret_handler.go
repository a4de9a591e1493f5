package aws_handler

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

const (
	polygonAPIKeySecretID   = "PolygonAPIKey"
	polygonAPIKeySecretName = "POLYGON_API_KEY"
	jwtSecretKeySecretID    = "JWTSecretKey"
	jwtSecretKeySecretName  = "JWT_SECRET_KEY"
	geminiAPIKeySecretID    = "GeminiAPIKey"
	geminiAPIKeySecretName  = "GEMINI_API_KEY"
)

// Secrets holds the credentials the backend needs, resolved once at startup
// and passed into constructors as plain values.
type Secrets struct {
	PolygonAPIKey string
	JWTSecretKey  string
	GeminiAPIKey  string
}

type SecretManager struct {
	svc *secretsmanager.SecretsManager
}

func NewSecretManager(svc *secretsmanager.SecretsManager) *SecretManager {
	return &SecretManager{svc: svc}
}

func (s *SecretManager) GetSecretValue(secretId string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretId),
	}

	result, err := s.svc.GetSecretValue(input)
	if err != nil {
		return "", err
	}

	return *result.SecretString, nil
}

// LoadSecrets fetches every secret the backend uses in one pass. The Gemini
// key is optional since the Bedrock provider needs no secret at all.
func (s *SecretManager) LoadSecrets() (*Secrets, error) {
	polygonKey, err := s.getSecretField(polygonAPIKeySecretID, polygonAPIKeySecretName)
	if err != nil {
		return nil, err
	}
	jwtKey, err := s.getSecretField(jwtSecretKeySecretID, jwtSecretKeySecretName)
	if err != nil {
		return nil, err
	}
	geminiKey, _ := s.getSecretField(geminiAPIKeySecretID, geminiAPIKeySecretName)

	return &Secrets{
		PolygonAPIKey: polygonKey,
		JWTSecretKey:  jwtKey,
		GeminiAPIKey:  geminiKey,
	}, nil
}

// getSecretField reads one field out of a JSON-valued secret.
func (s *SecretManager) getSecretField(secretId, field string) (string, error) {
	value, err := s.GetSecretValue(secretId)
	if err != nil {
		return "", err
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(value), &payload); err != nil {
		return "", fmt.Errorf("secret %q is not a JSON object: %w", secretId, err)
	}
	fieldValue, ok := payload[field]
	if !ok {
		return "", fmt.Errorf("secret %q has no field %q", secretId, field)
	}
	return fieldValue, nil
}
