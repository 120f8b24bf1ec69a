package dirbuild

import (
	"fmt"
	"os"

	"github.com/signadot/plistkit/debug"
	"github.com/signadot/plistkit/eval"
	"github.com/signadot/plistkit/parse"
)

const (
	EnvEnv = "PLIST_BUILD_ENV"
)

// LoadEnv reads a YAML or JSON dict from $PLIST_BUILD_ENV.
func LoadEnv() (map[string]any, error) {
	envEnv := os.Getenv(EnvEnv)
	if envEnv == "" {
		return nil, nil
	}
	it, err := parse.Parse([]byte(envEnv), parse.ParseYAML())
	if err != nil {
		return nil, fmt.Errorf("error decoding env $%s: %w", EnvEnv, err)
	}
	envAny := eval.ToValue(it)
	theEnvEnv, ok := envAny.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("error decoding env $%s: wrong type %T", EnvEnv, envAny)
	}
	if debug.Build() {
		debug.Logf("\nloaded env from env: %s\n", theEnvEnv)
	}
	return theEnvEnv, nil
}
