package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/chrisdamba/lunchrush/internal/cloudwriter"
	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

const (
	ProviderS3           = "s3"
	SessionsParquetFile  = "sessions.parquet"
	parquetWriteParallel = 4
)

// SessionRow is the parquet layout of an exported session.
type SessionRow struct {
	ID         int64  `parquet:"name=id, type=INT64"`
	PlayerName string `parquet:"name=player_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Money      int64  `parquet:"name=money, type=INT64"`
	TimePlayed int64  `parquet:"name=time_played, type=INT64"`
	DatePlayed string `parquet:"name=date_played, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func NewSessionRow(s *models.Session) SessionRow {
	return SessionRow{
		ID:         s.ID,
		PlayerName: s.PlayerName,
		Money:      int64(s.Money),
		TimePlayed: int64(s.TimePlayed),
		DatePlayed: s.DatePlayed,
	}
}

// SessionExporter writes the session history as one parquet file, either
// under a local directory or as an object in cloud storage.
type SessionExporter struct {
	basePath    string
	cloud       cloudwriter.CloudWriterFactory
	cloudBucket string
}

func NewLocalSessionExporter(basePath string) *SessionExporter {
	return &SessionExporter{basePath: basePath}
}

func NewCloudSessionExporter(factory cloudwriter.CloudWriterFactory, bucket, prefix string) *SessionExporter {
	return &SessionExporter{basePath: prefix, cloud: factory, cloudBucket: bucket}
}

// NewSessionExporter picks local or cloud export from the config.
func NewSessionExporter(ctx context.Context, cfg *models.Config) (*SessionExporter, error) {
	switch cfg.CloudStorage.Provider {
	case "":
		return NewLocalSessionExporter(cfg.Output.Path), nil
	case ProviderS3:
		factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		return NewCloudSessionExporter(factory, cfg.CloudStorage.BucketName, cfg.Output.Path), nil
	default:
		return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
	}
}

// Export writes sessions and returns where they went.
func (e *SessionExporter) Export(sessions []*models.Session) (string, error) {
	fw, location, err := e.createFile()
	if err != nil {
		return "", err
	}

	pw, err := writer.NewParquetWriter(fw, new(SessionRow), parquetWriteParallel)
	if err != nil {
		fw.Close()
		return "", fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	for _, s := range sessions {
		if err := pw.Write(NewSessionRow(s)); err != nil {
			fw.Close()
			return "", fmt.Errorf("failed to write session %d: %w", s.ID, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return "", fmt.Errorf("failed to finish parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", location, err)
	}
	return location, nil
}

func (e *SessionExporter) createFile() (source.ParquetFile, string, error) {
	if e.cloud != nil {
		objectPath := path.Join(filepath.ToSlash(e.basePath), SessionsParquetFile)
		cw, err := e.cloud.NewWriter(e.cloudBucket, objectPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		return NewCloudParquetFile(cw), fmt.Sprintf("%s/%s", e.cloudBucket, objectPath), nil
	}

	if err := os.MkdirAll(e.basePath, os.ModePerm); err != nil {
		return nil, "", fmt.Errorf("failed to create directory %s: %w", e.basePath, err)
	}
	filePath := filepath.Join(e.basePath, SessionsParquetFile)
	fw, err := local.NewLocalFileWriter(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create local file writer: %w", err)
	}
	return fw, filePath, nil
}

// CloudParquetFile lets the parquet writer stream into a CloudWriter. It is
// write-only.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cloudWriter}
}

func (c *CloudParquetFile) Open(string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Create(string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	default:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read([]byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (int, error) {
	n, err := c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
