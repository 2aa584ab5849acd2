package main

import (
	"testing"

	"covidcast/internal/config"
	"covidcast/internal/storage"
)

func TestResolveDeploymentMode(t *testing.T) {
	local := &config.Config{LocalReportsDir: "./reports"}
	if mode := resolveDeploymentMode(local); mode != storage.DeploymentLocal {
		t.Errorf("expected local mode without a bucket, got %v", mode)
	}

	gcs := &config.Config{GCSBucket: "covidcast-reports"}
	if mode := resolveDeploymentMode(gcs); mode != storage.DeploymentGCS {
		t.Errorf("expected gcs mode with a bucket, got %v", mode)
	}
}
