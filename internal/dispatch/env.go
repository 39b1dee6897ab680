package dispatch

import (
	"fmt"
	"slices"
	"strings"
)

// GetEnv returns the value for the key from an env slice.
func GetEnv(env []string, key string) (string, bool) {
	for _, entry := range env {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) == 2 && parts[0] == key {
			return parts[1], true
		}
	}
	return "", false
}

// SetEnv returns env with every entry for key replaced by a single key=value entry.
func SetEnv(env []string, key string, value string) []string {
	return append(UnsetEnv(env, key), fmt.Sprintf("%s=%s", key, value))
}

// UnsetEnv returns env without any entries for key.
// If key is empty, it returns env unchanged.
func UnsetEnv(env []string, key string) []string {
	if key == "" {
		return env
	}
	prefix := key + "="
	result := make([]string, 0, len(env))
	for _, entry := range env {
		if !strings.HasPrefix(entry, prefix) {
			result = append(result, entry)
		}
	}
	return result
}

// mergeEnv sets every override on base, in key order.
func mergeEnv(base []string, overrides map[string]string) []string {
	env := slices.Clone(base)
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		env = SetEnv(env, key, overrides[key])
	}
	return env
}
