package worker

import (
	"encoding/json"
	"os"

	"github.com/emanuelpaduret/alex-backend/models"
)

// writeStatusFile records the latest run result so operators can check the
// worker without querying the store. Failures here are non-fatal.
func writeStatusFile(path string, result *models.WorkerRunResult) error {
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadStatusFile loads the last recorded run result
func ReadStatusFile(path string) (*models.WorkerRunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var result models.WorkerRunResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
