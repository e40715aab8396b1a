package utils

import (
	"fmt"
	"sort"
	"strings"
)

// ParseEnvVars parses KEY=VALUE pairs separated by commas, semicolons, or newlines.
func ParseEnvVars(input string) (map[string]string, error) {
	result := make(map[string]string)
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return result, nil
	}

	for _, part := range splitEnvInput(trimmed) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid env var: %q", part)
		}
		result[key] = strings.TrimSpace(value)
	}

	return result, nil
}

// FormatEnvVars formats env vars as a comma-separated list of KEY=VALUE entries,
// sorted by key.
func FormatEnvVars(env map[string]string) string {
	return strings.Join(EnvList(env), ", ")
}

// EnvList returns env as sorted KEY=VALUE entries.
func EnvList(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}

// MergeEnv returns base with overrides applied. Entries of base whose key is
// overridden are dropped.
func MergeEnv(base []string, overrides map[string]string) []string {
	out := make([]string, 0, len(base)+len(overrides))
	for _, entry := range base {
		key, _, _ := strings.Cut(entry, "=")
		if _, ok := overrides[key]; ok {
			continue
		}
		out = append(out, entry)
	}
	return append(out, EnvList(overrides)...)
}

func splitEnvInput(input string) []string {
	return strings.FieldsFunc(input, func(r rune) bool {
		switch r {
		case ',', ';', '\n':
			return true
		default:
			return false
		}
	})
}
