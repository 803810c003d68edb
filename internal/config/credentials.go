package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const systemBotoConfig = "/etc/boto.cfg"

// CredentialSource identifies where AWS credentials were found.
type CredentialSource string

const (
	// SourceEnvironment means static keys from AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY.
	SourceEnvironment CredentialSource = "environment"
	// SourceSharedFile means a profile in the shared credentials file.
	SourceSharedFile CredentialSource = "shared-credentials-file"
)

// Credentials is the resolved AWS identity handed to the provider client.
type Credentials struct {
	Source          CredentialSource
	Profile         string
	File            string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// Static reports whether the credentials carry literal keys.
func (c Credentials) Static() bool {
	return c.Source == SourceEnvironment
}

// String never prints secrets.
func (c Credentials) String() string {
	if c.Static() {
		return fmt.Sprintf("%s (access key %s)", c.Source, maskKey(c.AccessKeyID))
	}
	return fmt.Sprintf("%s (profile %q in %s)", c.Source, c.Profile, c.File)
}

// ResolveCredentials finds AWS credentials in priority order:
//
//  1. AWS_ACCESS_KEY_ID + AWS_SECRET_ACCESS_KEY (+ AWS_SESSION_TOKEN)
//  2. the profile (explicit, AWS_PROFILE, or "default") in the shared
//     credentials file (AWS_SHARED_CREDENTIALS_FILE or ~/.aws/credentials)
//
// Legacy boto files (~/.boto, /etc/boto.cfg) are not read; their presence
// only changes the error message. getenv and home are injectable for tests.
func ResolveCredentials(profile string, getenv func(string) string, home string) (*Credentials, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	accessKey := getenv("AWS_ACCESS_KEY_ID")
	secretKey := getenv("AWS_SECRET_ACCESS_KEY")
	switch {
	case accessKey != "" && secretKey != "":
		return &Credentials{
			Source:          SourceEnvironment,
			AccessKeyID:     accessKey,
			SecretAccessKey: secretKey,
			SessionToken:    getenv("AWS_SESSION_TOKEN"),
		}, nil
	case accessKey != "":
		return nil, fmt.Errorf("%w: the environment variable AWS_SECRET_ACCESS_KEY must be set", ErrConfig)
	case secretKey != "":
		return nil, fmt.Errorf("%w: the environment variable AWS_ACCESS_KEY_ID must be set", ErrConfig)
	}

	if profile == "" {
		profile = getenv("AWS_PROFILE")
	}
	if profile == "" {
		profile = "default"
	}

	file := getenv("AWS_SHARED_CREDENTIALS_FILE")
	if file == "" && home != "" {
		file = filepath.Join(home, ".aws", "credentials")
	}
	if file != "" {
		found, err := fileHasProfile(file, profile)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, file, err)
		}
		if found {
			return &Credentials{Source: SourceSharedFile, Profile: profile, File: file}, nil
		}
	}

	legacyFiles := []string{systemBotoConfig}
	if home != "" {
		legacyFiles = append([]string{filepath.Join(home, ".boto")}, legacyFiles...)
	}
	for _, legacy := range legacyFiles {
		if _, err := os.Stat(legacy); err == nil {
			return nil, fmt.Errorf("%w: found legacy boto credentials in %s; move them to %s or export AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY",
				ErrConfig, legacy, filepath.Join("~", ".aws", "credentials"))
		}
	}

	return nil, fmt.Errorf("%w: no AWS credentials found: the environment variables AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set, or profile %q must exist in the shared credentials file",
		ErrConfig, profile)
}

// fileHasProfile reports whether an INI credentials file has a [profile] section.
func fileHasProfile(path, profile string) (bool, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
			continue
		}
		name := strings.TrimSpace(line[1 : len(line)-1])
		name = strings.TrimSpace(strings.TrimPrefix(name, "profile "))
		if name == profile {
			return true, nil
		}
	}
	return false, scanner.Err()
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
