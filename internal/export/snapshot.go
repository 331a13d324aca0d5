// Package export writes and reads catalog snapshots as JSONL, Parquet or YAML.
package export

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/greenleaf-co/plantshop/internal/models"
)

// PlantRow is the flat on-disk form of a plant
type PlantRow struct {
	ID          string  `json:"id" parquet:"id"`
	Name        string  `json:"name" parquet:"name"`
	Image       string  `json:"image" parquet:"image"`
	Description string  `json:"description" parquet:"description"`
	Category    string  `json:"category" parquet:"category"`
	Price       float64 `json:"price" parquet:"price"`
}

// Snapshot is the YAML document form of an export
type Snapshot struct {
	Source     string            `yaml:"source"`
	CategoryID string            `yaml:"category_id,omitempty"`
	Timestamp  string            `yaml:"timestamp"`
	Categories []models.Category `yaml:"categories,omitempty"`
	Plants     []PlantRow        `yaml:"plants"`
}

// Rows converts plants to their flat form
func Rows(plants []models.Plant) []PlantRow {
	rows := make([]PlantRow, 0, len(plants))
	for _, p := range plants {
		rows = append(rows, PlantRow{
			ID:          p.ID,
			Name:        p.Name,
			Image:       p.Image,
			Description: p.Description,
			Category:    p.Category,
			Price:       float64(p.Price),
		})
	}
	return rows
}

// Plants converts flat rows back to plants
func Plants(rows []PlantRow) []models.Plant {
	plants := make([]models.Plant, 0, len(rows))
	for _, r := range rows {
		plants = append(plants, models.Plant{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.Image,
			Description: r.Description,
			Category:    r.Category,
			Price:       models.Price(r.Price),
		})
	}
	return plants
}

// Write saves a snapshot to path; the format follows the file extension
func Write(path string, snap Snapshot) error {
	if snap.Timestamp == "" {
		snap.Timestamp = time.Now().Format(time.RFC3339)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".jsonl", ".json":
		err = writeJSONL(file, snap.Plants)
	case ".parquet":
		err = parquet.Write(file, snap.Plants)
	case ".yaml", ".yml":
		err = writeYAML(file, snap)
	default:
		err = fmt.Errorf("unsupported file format: %s (supported: .jsonl, .parquet, .yaml)", ext)
	}
	if err != nil {
		return err
	}

	slog.Info("Snapshot written", "path", path, "plants", len(snap.Plants))
	return file.Close()
}

// Load reads plant rows from a snapshot written by Write
func Load(path string) ([]PlantRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".jsonl", ".json":
		return readJSONL(file)
	case ".parquet":
		return readParquet(file)
	case ".yaml", ".yml":
		var snap Snapshot
		if err := yaml.NewDecoder(file).Decode(&snap); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return snap.Plants, nil
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .jsonl, .parquet, .yaml)", ext)
	}
}

func writeJSONL(w io.Writer, rows []PlantRow) error {
	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	for i, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to encode row %d: %w", i, err)
		}
	}
	return buf.Flush()
}

func writeYAML(w io.Writer, snap Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&snap); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

func readJSONL(r io.Reader) ([]PlantRow, error) {
	var rows []PlantRow
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var row PlantRow
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read JSONL: %w", err)
	}
	return rows, nil
}

func readParquet(file *os.File) ([]PlantRow, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[PlantRow](pf)
	defer reader.Close()

	rows := make([]PlantRow, 0, pf.NumRows())
	batch := make([]PlantRow, 128)
	for {
		n, err := reader.Read(batch)
		rows = append(rows, batch[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
	return rows, nil
}
