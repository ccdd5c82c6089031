package ultimatum

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// statisticsFileVersion guards the on-disk layout of exported statistics.
const statisticsFileVersion = 1

// StatisticsSaveData is the gob payload written by SaveStatistics.
// Only the generation log is exported; population state is never persisted.
type StatisticsSaveData struct {
	Version     int
	RunID       string
	Generations []GenerationStats
}

// SaveStatistics writes the generation log to a gzip-compressed gob file for
// external plotting and reporting.
func (s *Statistics) SaveStatistics(filePath, runID string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create statistics file '%s': %w", filePath, err)
	}
	defer file.Close()

	if err := s.Encode(file, runID); err != nil {
		return fmt.Errorf("failed to write statistics file '%s': %w", filePath, err)
	}
	return file.Close()
}

// Encode writes the generation log to w.
func (s *Statistics) Encode(w io.Writer, runID string) error {
	gzWriter := gzip.NewWriter(w)
	saveData := StatisticsSaveData{
		Version:     statisticsFileVersion,
		RunID:       runID,
		Generations: s.generations,
	}
	if err := gob.NewEncoder(gzWriter).Encode(saveData); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to encode statistics: %w", err)
	}
	return gzWriter.Close()
}

// LoadStatistics reads a file written by SaveStatistics and returns the log
// together with its run id.
func LoadStatistics(filePath string) (*Statistics, string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open statistics file '%s': %w", filePath, err)
	}
	defer file.Close()
	return DecodeStatistics(file)
}

// DecodeStatistics reads a log written by Encode.
func DecodeStatistics(r io.Reader) (*Statistics, string, error) {
	gzReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create gzip reader for statistics: %w", err)
	}
	defer gzReader.Close()

	var saveData StatisticsSaveData
	if err := gob.NewDecoder(gzReader).Decode(&saveData); err != nil {
		return nil, "", fmt.Errorf("failed to decode statistics: %w", err)
	}
	if saveData.Version != statisticsFileVersion {
		return nil, "", fmt.Errorf("unsupported statistics file version %d", saveData.Version)
	}
	return &Statistics{generations: saveData.Generations}, saveData.RunID, nil
}
