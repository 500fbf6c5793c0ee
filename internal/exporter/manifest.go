package exporter

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

// Artifact describes one file produced during an export run.
type Artifact struct {
	RelativePath string `json:"relative_path"`
	Robot        string `json:"robot"`
	Target       string `json:"target"`
	CollectedAt  string `json:"collected_at"`
	SizeBytes    int64  `json:"size_bytes"`
	SHA256       string `json:"sha256"`
}

// Manifest indexes every file an export run wrote, so transfers to the
// edge PC can be verified file by file afterwards.
type Manifest struct {
	RunID     string            `json:"run_id"`
	CreatedAt string            `json:"created_at"`
	Artifacts []Artifact        `json:"artifacts"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// WriteManifest writes m as manifest.json under outputDir.
func WriteManifest(outputDir string, m Manifest) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(outputDir, "manifest.json")
	return os.WriteFile(path, b, 0o644)
}

// SHA256File hashes the file at path, returning the hex digest and the
// file's size in bytes.
func SHA256File(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
