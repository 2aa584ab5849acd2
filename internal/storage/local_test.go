package storage

import (
	"context"
	"testing"
	"time"
)

func TestLocalStoreAndGetFile(t *testing.T) {
	dir := t.TempDir()
	client, err := NewLocalStorageClient(dir)
	if err != nil {
		t.Fatalf("NewLocalStorageClient failed: %v", err)
	}
	defer client.Close()

	ts := time.Date(2020, 3, 15, 10, 30, 0, 0, time.UTC)
	content := []byte("<html>report</html>")
	if err := client.StoreFile(context.Background(), content, "index.html", ts); err != nil {
		t.Fatalf("StoreFile failed: %v", err)
	}

	path := GenerateReportFolderPath(ts) + "/index.html"
	got, err := client.GetFile(context.Background(), path)
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("GetFile = %q, want %q", got, content)
	}
}

func TestLocalListReportsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	client, err := NewLocalStorageClient(dir)
	if err != nil {
		t.Fatalf("NewLocalStorageClient failed: %v", err)
	}

	ctx := context.Background()
	older := time.Date(2020, 3, 10, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2020, 3, 15, 8, 0, 0, 0, time.UTC)
	for _, ts := range []time.Time{older, newer} {
		if err := client.StoreFile(ctx, []byte("x"), "index.html", ts); err != nil {
			t.Fatalf("StoreFile failed: %v", err)
		}
		// only index.html counts as a report
		if err := client.StoreFile(ctx, []byte("{}"), "summary.json", ts); err != nil {
			t.Fatalf("StoreFile failed: %v", err)
		}
	}

	reports, err := client.ListReports(ctx, 10)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d: %v", len(reports), reports)
	}
	if reports[0] != GenerateReportFolderPath(newer)+"/index.html" {
		t.Errorf("newest report not first: %v", reports)
	}

	latest, err := client.GetLatestReport()
	if err != nil {
		t.Fatalf("GetLatestReport failed: %v", err)
	}
	if latest != reports[0] {
		t.Errorf("GetLatestReport = %q, want %q", latest, reports[0])
	}

	limited, err := client.ListReports(ctx, 1)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit not applied: %v", limited)
	}
}

func TestLocalGetLatestReportEmpty(t *testing.T) {
	client, err := NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorageClient failed: %v", err)
	}
	if _, err := client.GetLatestReport(); err == nil {
		t.Fatal("expected error when no reports exist")
	}
}

func TestGenerateReportFolderPath(t *testing.T) {
	ts := time.Date(2020, 3, 5, 9, 7, 3, 0, time.UTC)
	got := GenerateReportFolderPath(ts)
	want := "2020/03/05/CovidReport-2020-03-05-09-07-03"
	if got != want {
		t.Errorf("GenerateReportFolderPath = %q, want %q", got, want)
	}
}

func TestGetContentType(t *testing.T) {
	cases := map[string]string{
		"index.html":   "text/html",
		"summary.json": "application/json",
		"notes.md":     "text/markdown",
		"raw.csv":      "text/csv",
		"chart.png":    "image/png",
		"blob.bin":     "application/octet-stream",
	}
	for filename, want := range cases {
		if got := GetContentType(filename); got != want {
			t.Errorf("GetContentType(%q) = %q, want %q", filename, got, want)
		}
	}
}
