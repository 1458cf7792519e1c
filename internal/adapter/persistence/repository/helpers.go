package repository

import "os"

// envOr returns the environment variable key, or def when it is unset or empty.
func envOr(key, def string) string {
	return orDefault(os.Getenv(key), def)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
