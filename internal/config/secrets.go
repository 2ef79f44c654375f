package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Credential sources reported by ServiceAccountJSON.
const (
	SourceEnv         = "env"
	SourceSecretsFile = "secrets_file"
	SourceKeyFile     = "key_file"
)

// secretsKey is the mapping in the secrets file that holds the service account.
const secretsKey = "gcp_service_account"

// ServiceAccountJSON returns the Google service-account key used to reach the
// sheet, together with the source it came from. Sources are tried in order:
// the DVRHUB_GCP_SERVICE_ACCOUNT variable, the gcp_service_account mapping of
// the secrets file, and finally the local JSON key file.
func (c *Config) ServiceAccountJSON() ([]byte, string, error) {
	if c.ServiceAccount != "" {
		if !json.Valid([]byte(c.ServiceAccount)) {
			return nil, SourceEnv, errors.New("DVRHUB_GCP_SERVICE_ACCOUNT is not valid JSON")
		}
		return []byte(c.ServiceAccount), SourceEnv, nil
	}

	data, found, err := readSecretsFile(c.SecretsPath)
	if err != nil {
		return nil, SourceSecretsFile, err
	}
	if found {
		return data, SourceSecretsFile, nil
	}

	data, err = os.ReadFile(c.CredentialsFile)
	if err != nil {
		return nil, SourceKeyFile, fmt.Errorf("read credentials file %s: %w", c.CredentialsFile, err)
	}
	return data, SourceKeyFile, nil
}

// readSecretsFile extracts the gcp_service_account mapping from a YAML secrets
// file and re-encodes it as JSON. found is false when the file does not exist
// or carries no such mapping.
func readSecretsFile(path string) (data []byte, found bool, err error) {
	if path == "" {
		return nil, false, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read secrets file %s: %w", path, err)
	}

	var secrets map[string]any
	if err := yaml.Unmarshal(raw, &secrets); err != nil {
		return nil, false, fmt.Errorf("parse secrets file %s: %w", path, err)
	}

	account, ok := secrets[secretsKey].(map[string]any)
	if !ok || len(account) == 0 {
		return nil, false, nil
	}

	data, err = json.Marshal(account)
	if err != nil {
		return nil, false, fmt.Errorf("encode %s from %s: %w", secretsKey, path, err)
	}
	return data, true, nil
}
