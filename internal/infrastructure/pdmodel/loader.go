// Package pdmodel loads trained logistic regression artifacts from disk.
// The artifact is loaded once at startup; scoring itself never touches the
// filesystem.
package pdmodel

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iho/goprovision/internal/risk"
)

// Load reads a logistic model artifact from a JSON file. An empty path
// returns a nil model; the estimator then scores every loan with the fixed
// fallback.
func Load(path string) (*risk.LogisticModel, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pd model artifact: %w", err)
	}

	var model risk.LogisticModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("failed to parse pd model artifact: %w", err)
	}

	return &model, nil
}
