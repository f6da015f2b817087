package config

import (
	"os"
	"strings"
)

var (
	EnvTrue  = []string{"1", "yes", "true", "on"}  // EnvTrue are the values considered "true" by [EnvBool].
	EnvFalse = []string{"0", "no", "false", "off"} // EnvFalse are the values considered "false" by [EnvBool].
)

func lookupEnv(key string) (string, bool) {
	key = strings.ToLower(key)
	for _, entry := range os.Environ() {
		k, v, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		if strings.ToLower(k) == key {
			return v, true
		}
	}
	return "", false
}

// EnvVal returns the value of an environment variable, or defaultVal if it isn't set or is blank.
// Keys are compared case-insensitive.
func EnvVal(key string, defaultVal string) string {
	val, ok := lookupEnv(key)
	if !ok {
		return defaultVal
	}
	val = strings.TrimSpace(val)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

// EnvBool interprets an environment variable as a boolean using [EnvTrue] and [EnvFalse].
// The defaultVal is returned if the variable isn't set, is blank, or isn't recognized.
func EnvBool(key string, defaultVal bool) bool {
	val := strings.ToLower(EnvVal(key, ""))
	if len(val) == 0 {
		return defaultVal
	}
	for _, t := range EnvTrue {
		if val == t {
			return true
		}
	}
	for _, f := range EnvFalse {
		if val == f {
			return false
		}
	}
	return defaultVal
}
