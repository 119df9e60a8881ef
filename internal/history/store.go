package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/credlens/credlens/internal/model"
)

// Record is the persisted form of an analysis report. Slice fields are
// stored as JSON strings so the table stays flat.
type Record struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"`
	AnalysisID       string `gorm:"uniqueIndex"`
	CredibilityScore int
	Reasoning        string
	FlagsJSON        string
	SourceAuthority  *int
	AiClassification string
	AiConfidence     *int
	AiAnalysis       string
	FactChecksJSON   string
	CreatedAt        time.Time `gorm:"index"`
}

// Store keeps the most recent analysis reports in a local SQLite file.
// Append trims the log so at most `limit` entries survive.
type Store struct {
	db    *gorm.DB
	limit int
}

// Open opens (or creates) the history database at path
func Open(path string, limit int) (*Store, error) {
	if limit <= 0 {
		limit = 50
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate history schema: %w", err)
	}

	return &Store{db: db, limit: limit}, nil
}

// Append stores a report and drops the oldest entries beyond the limit
func (s *Store) Append(report *model.AnalysisReport) error {
	rec, err := toRecord(report)
	if err != nil {
		return err
	}

	if err := s.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("append history record: %w", err)
	}

	keep := s.db.Model(&Record{}).Select("id").Order("created_at DESC, id DESC").Limit(s.limit)
	if err := s.db.Where("id NOT IN (?)", keep).Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

// List returns the stored reports, newest first
func (s *Store) List() ([]model.AnalysisReport, error) {
	var records []Record
	if err := s.db.Order("created_at DESC, id DESC").Limit(s.limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	reports := make([]model.AnalysisReport, 0, len(records))
	for _, rec := range records {
		report, err := toReport(rec)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Clear deletes all stored reports
func (s *Store) Clear() error {
	if err := s.db.Where("1 = 1").Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRecord(report *model.AnalysisReport) (Record, error) {
	flags, err := json.Marshal(report.Flags)
	if err != nil {
		return Record{}, fmt.Errorf("encode flags: %w", err)
	}
	factChecks, err := json.Marshal(report.FactCheckResults)
	if err != nil {
		return Record{}, fmt.Errorf("encode fact checks: %w", err)
	}

	return Record{
		AnalysisID:       report.AnalysisID,
		CredibilityScore: report.CredibilityScore,
		Reasoning:        report.Reasoning,
		FlagsJSON:        string(flags),
		SourceAuthority:  report.SourceAuthority,
		AiClassification: string(report.AiClassification),
		AiConfidence:     report.AiConfidence,
		AiAnalysis:       report.AiAnalysis,
		FactChecksJSON:   string(factChecks),
		CreatedAt:        report.CreatedAt,
	}, nil
}

func toReport(rec Record) (model.AnalysisReport, error) {
	var flags []string
	if rec.FlagsJSON != "" {
		if err := json.Unmarshal([]byte(rec.FlagsJSON), &flags); err != nil {
			return model.AnalysisReport{}, fmt.Errorf("decode flags: %w", err)
		}
	}
	var factChecks []model.FactCheckResult
	if rec.FactChecksJSON != "" {
		if err := json.Unmarshal([]byte(rec.FactChecksJSON), &factChecks); err != nil {
			return model.AnalysisReport{}, fmt.Errorf("decode fact checks: %w", err)
		}
	}

	return model.AnalysisReport{
		AnalysisID:       rec.AnalysisID,
		CredibilityScore: rec.CredibilityScore,
		Reasoning:        rec.Reasoning,
		Flags:            flags,
		SourceAuthority:  rec.SourceAuthority,
		AiClassification: model.Classification(rec.AiClassification),
		AiConfidence:     rec.AiConfidence,
		AiAnalysis:       rec.AiAnalysis,
		FactCheckResults: factChecks,
		CreatedAt:        rec.CreatedAt,
	}, nil
}
