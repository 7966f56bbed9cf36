// Package fetch downloads the official NELFUND policy documents into the
// local data directory so they can be ingested offline.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultDocuments maps local file names to their official download URLs.
var DefaultDocuments = map[string]string{
	"Student_Loan_Act_2023.pdf":       "https://nelf.gov.ng/documents/student-loan-act-2023.pdf",
	"NELFUND_Official_Guidelines.pdf": "https://nelf.gov.ng/documents/official-guidelines.pdf",
	"Application_Procedures.pdf":      "https://nelf.gov.ng/documents/application-procedures.pdf",
	"NELFUND_FAQs.pdf":                "https://nelf.gov.ng/documents/faqs.pdf",
	"Covered_Institutions_List.pdf":   "https://nelf.gov.ng/documents/covered-institutions.pdf",
}

const requestTimeout = 30 * time.Second

// Result summarizes a download run.
type Result struct {
	Downloaded []string
	Skipped    []string
	Failed     map[string]error
}

// Download fetches each document into dir, skipping files that already
// exist. Individual failures are collected rather than aborting the run.
func Download(ctx context.Context, dir string, docs map[string]string) (*Result, error) {
	if len(docs) == 0 {
		docs = DefaultDocuments
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	client := &http.Client{Timeout: requestTimeout}
	res := &Result{Failed: make(map[string]error)}

	for name, url := range docs {
		dest := filepath.Join(dir, name)
		if _, err := os.Stat(dest); err == nil {
			res.Skipped = append(res.Skipped, name)
			continue
		}

		if err := downloadFile(ctx, client, url, dest); err != nil {
			log.Printf("[FETCH] %s: %v", name, err)
			res.Failed[name] = err
			continue
		}
		res.Downloaded = append(res.Downloaded, name)
	}
	return res, nil
}

func downloadFile(ctx context.Context, client *http.Client, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	// Write to a temp file first so a failed transfer never leaves a
	// truncated document that would be skipped on retry.
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
