package devops

import (
	"context"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

var (
	mu     sync.Mutex
	loaded = map[string]string{}
)

// LoadParameter reads a SecureString parameter from SSM. Each name is fetched once per process.
func LoadParameter(ctx context.Context, paramName string) (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if v, ok := loaded[paramName]; ok {
		return v, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}

	client := ssm.NewFromConfig(cfg)

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %s: %w", paramName, err)
	}

	value := aws.ToString(out.Parameter.Value)
	loaded[paramName] = value
	return value, nil
}

// LoadYAMLParameter decodes a YAML parameter over out. Keys missing from the
// parameter leave out untouched.
func LoadYAMLParameter(ctx context.Context, paramName string, out any) error {
	value, err := LoadParameter(ctx, paramName)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal([]byte(value), out); err != nil {
		return fmt.Errorf("unmarshal yaml: %w", err)
	}
	return nil
}
