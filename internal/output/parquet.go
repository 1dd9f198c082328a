package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/nutralab/quantisim/internal/cloudwriter"
	"github.com/nutralab/quantisim/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// DistributionRow is one Monte Carlo draw in the research export.
type DistributionRow struct {
	AnalysisID   string  `parquet:"name=analysis_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	SupplementID string  `parquet:"name=supplement_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Metric       string  `parquet:"name=metric, type=BYTE_ARRAY, convertedtype=UTF8"`
	Iteration    int32   `parquet:"name=iteration, type=INT32"`
	Value        float64 `parquet:"name=value, type=DOUBLE"`
}

// ParquetExporter writes Monte Carlo raw distributions as Parquet files,
// either under a local base path or to cloud storage.
type ParquetExporter struct {
	basePath           string
	folder             string
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

func NewParquetExporter(config models.ExportConfig) (*ParquetExporter, error) {
	p := &ParquetExporter{
		basePath: config.Path,
		folder:   config.Folder,
	}

	if config.Destination != "" && config.Destination != "local" {
		var factory cloudwriter.CloudWriterFactory
		var err error

		switch config.CloudStorage.Provider {
		case "s3":
			factory, err = cloudwriter.NewS3WriterFactory(config.CloudStorage.Region)
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", config.CloudStorage.Provider)
		}

		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}

		p.cloudWriterFactory = factory
		p.cloudBucketName = config.CloudStorage.BucketName
	}

	return p, nil
}

// ExportDistributions writes one file per analysis holding every raw draw of
// every metric, partitioned by day.
func (p *ParquetExporter) ExportDistributions(analysisID string, results []models.SupplementMonteCarloResult) error {
	now := time.Now().UTC()
	year, month, day := now.Date()
	partitionPath := fmt.Sprintf("year=%d/month=%02d/day=%02d", year, month, day)
	objectPath := filepath.Join(p.folder, "distributions", partitionPath, analysisID+".parquet")

	file, err := p.openParquetFile(objectPath)
	if err != nil {
		return err
	}

	pw, err := writer.NewParquetWriter(file, new(DistributionRow), 4)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	for _, result := range results {
		if result.MonteCarloSimulation == nil {
			continue
		}
		metrics := map[string][]float64{
			"peak_concentration": result.MonteCarloSimulation.PeakConcentration.Distribution,
			"auc":                result.MonteCarloSimulation.AUC.Distribution,
		}
		for metric, distribution := range metrics {
			for i, value := range distribution {
				row := DistributionRow{
					AnalysisID:   analysisID,
					SupplementID: result.SupplementID,
					Metric:       metric,
					Iteration:    int32(i),
					Value:        value,
				}
				if err := pw.Write(row); err != nil {
					pw.WriteStop()
					file.Close()
					return fmt.Errorf("failed to write parquet row: %w", err)
				}
			}
		}
	}

	if err := pw.WriteStop(); err != nil {
		file.Close()
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

func (p *ParquetExporter) openParquetFile(objectPath string) (source.ParquetFile, error) {
	if p.cloudWriterFactory != nil {
		cw, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer: %w", err)
		}
		return NewCloudParquetFile(cw), nil
	}

	fullPath := filepath.Join(p.basePath, objectPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
		return nil, err
	}
	return local.NewLocalFileWriter(fullPath)
}

// CloudParquetFile adapts a CloudWriter to the parquet source interface; the
// object is write-only and materializes on Close.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cloudWriter}
}

func (c *CloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
