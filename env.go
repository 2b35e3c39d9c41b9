package solr

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by the client. Both are read per call, so a
// running process picks up changes.
const (
	// EnvRequestTimeout overrides the default request timeout, in
	// milliseconds. An explicit Config.RequestTimeout wins over it.
	EnvRequestTimeout = "SOLR_REQUEST_TIMEOUT"
	// EnvDebugQueryTime logs the elapsed time of every request at info
	// level when set to a true value.
	EnvDebugQueryTime = "SOLR_DEBUG_QUERY_TIME"
)

const (
	envFileName         = "/.env"
	envOverrideFileName = "/.local.env"
)

// envRequestTimeout reads EnvRequestTimeout. ok is false when the variable
// is unset or not a positive integer.
func envRequestTimeout() (time.Duration, bool) {
	v := os.Getenv(EnvRequestTimeout)
	if v == "" {
		return 0, false
	}

	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return 0, false
	}

	return time.Duration(ms) * time.Millisecond, true
}

func envDebugQueryTime() bool {
	ok, _ := strconv.ParseBool(os.Getenv(EnvDebugQueryTime))
	return ok
}

// LoadEnv reads .env and .local.env from the given folder into the process
// environment, the override file last. Variables already present in the
// environment are left untouched. Missing files are not an error.
func LoadEnv(folder string) error {
	initialEnv := make(map[string]bool)

	for _, envVar := range os.Environ() {
		key, _, _ := strings.Cut(envVar, "=")
		initialEnv[key] = true
	}

	envMap := make(map[string]string)

	for _, file := range []string{folder + envFileName, folder + envOverrideFileName} {
		content, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return err
		}

		for k, v := range content {
			envMap[k] = v
		}
	}

	for key, value := range envMap {
		if !initialEnv[key] {
			os.Setenv(key, value)
		}
	}

	return nil
}
