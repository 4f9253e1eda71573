package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"app-inventory/core/storage"
	"app-inventory/core/utils"
	"app-inventory/feature/inventory/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrEmptyName is returned when no artifact name is given.
var ErrEmptyName = errors.New("export name is empty")

// Source provides the rows to export.
type Source interface {
	All(ctx context.Context) ([]models.App, error)
}

// Upload describes where artifacts are published after being written locally.
type Upload struct {
	Client storage.Client
	Bucket string
	Prefix string
	Region string
}

// Result lists the artifacts produced by one export.
type Result struct {
	Rows     int      `json:"rows"`
	CSVPath  string   `json:"csvPath"`
	JSONPath string   `json:"jsonPath"`
	Objects  []string `json:"objects,omitempty"`
}

// Exporter writes the whole table to CSV and JSON.
type Exporter struct {
	source Source
	dir    string
	upload *Upload
	logger *zap.Logger
}

// NewExporter creates an exporter writing into dir. A nil upload keeps artifacts local.
func NewExporter(source Source, dir string, upload *Upload, logger *zap.Logger) *Exporter {
	return &Exporter{
		source: source,
		dir:    dir,
		upload: upload,
		logger: logger,
	}
}

// Export writes {dir}/{name}.csv and {dir}/{name}.json, overwriting existing files.
func (e *Exporter) Export(ctx context.Context, name string) (*Result, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	apps, err := e.source.All(ctx)
	if err != nil {
		return nil, err
	}

	csvData, err := EncodeCSV(apps)
	if err != nil {
		return nil, err
	}
	jsonData, err := json.MarshalIndent(apps, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal apps: %w", err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &Result{
		Rows:     len(apps),
		CSVPath:  filepath.Join(e.dir, name+".csv"),
		JSONPath: filepath.Join(e.dir, name+".json"),
	}
	if err := os.WriteFile(result.CSVPath, csvData, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", result.CSVPath, err)
	}
	if err := os.WriteFile(result.JSONPath, jsonData, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", result.JSONPath, err)
	}
	e.logger.Info("Export written",
		zap.Int("rows", result.Rows),
		zap.String("csv", result.CSVPath),
		zap.String("json", result.JSONPath),
	)

	if e.upload == nil || e.upload.Client == nil {
		return result, nil
	}

	if err := storage.EnsureBucket(ctx, e.upload.Client, e.upload.Bucket, e.upload.Region); err != nil {
		return nil, err
	}
	artifacts := []struct {
		ext         string
		contentType string
		data        []byte
	}{
		{"csv", "text/csv", csvData},
		{"json", "application/json", jsonData},
	}
	for _, a := range artifacts {
		objName := fmt.Sprintf("%s%s.%s", e.upload.Prefix, name, a.ext)
		_, err := e.upload.Client.PutObject(ctx, e.upload.Bucket, objName, bytes.NewReader(a.data), int64(len(a.data)), minio.PutObjectOptions{
			ContentType: a.contentType,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload %s: %w", objName, err)
		}
		result.Objects = append(result.Objects, objName)
	}
	e.logger.Info("Export uploaded",
		zap.String("bucket", e.upload.Bucket),
		zap.Strings("objects", result.Objects),
	)

	return result, nil
}

// EncodeCSV renders a header line plus one line per app. NULL columns are empty cells.
func EncodeCSV(apps []models.App) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(models.Columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	record := make([]string, len(models.Columns))
	for i := range apps {
		for j, v := range apps[i].Values() {
			record[j] = utils.ToString(v)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.Bytes(), nil
}
