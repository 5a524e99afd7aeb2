package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/fintrack/internal/common"
)

// maxAutoCheckpoints is how many automatic checkpoints are kept.
const maxAutoCheckpoints = 5

// Checkpoint errors.
var (
	ErrCheckpointNotFound  = fmt.Errorf("checkpoint %w", common.ErrNotFound)
	ErrCheckpointCorrupted = errors.New("checkpoint integrity check failed")
	ErrCheckpointExists    = errors.New("checkpoint already exists")
	ErrInvalidCheckpointID = fmt.Errorf("%w: checkpoint names cannot contain path separators", common.ErrValidation)
	ErrNoCheckpointsInMem  = errors.New("in-memory ledgers cannot be checkpointed")
)

// checkpointTables are counted into every checkpoint's metadata.
var checkpointTables = []string{"categories", "expenses", "subscriptions", "budgets"}

// CheckpointManager snapshots the ledger file into a sibling checkpoints
// directory and restores it from there.
type CheckpointManager struct {
	db             *sql.DB
	dbPath         string
	checkpointsDir string
}

// CheckpointInfo describes a stored checkpoint.
type CheckpointInfo struct {
	CreatedAt     time.Time      `json:"created_at"`
	RowCounts     map[string]int `json:"row_counts"`
	ID            string         `json:"id"`
	Description   string         `json:"description"`
	FileSize      int64          `json:"file_size"`
	SchemaVersion int            `json:"schema_version"`
	IsAuto        bool           `json:"is_auto"`
}

// Checkpoints returns a manager for this ledger's checkpoints.
func (s *SQLiteStorage) Checkpoints() (*CheckpointManager, error) {
	if s.dbPath == InMemory {
		return nil, ErrNoCheckpointsInMem
	}

	dir := filepath.Join(filepath.Dir(s.dbPath), "checkpoints")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create checkpoints directory: %w", err)
	}

	return &CheckpointManager{
		db:             s.db,
		dbPath:         s.dbPath,
		checkpointsDir: dir,
	}, nil
}

// Dir returns where checkpoints are stored.
func (cm *CheckpointManager) Dir() string {
	return cm.checkpointsDir
}

// Create snapshots the ledger under tag. An empty tag gets a timestamped name.
func (cm *CheckpointManager) Create(ctx context.Context, tag, description string) (*CheckpointInfo, error) {
	return cm.create(ctx, tag, description, false)
}

func (cm *CheckpointManager) create(ctx context.Context, tag, description string, auto bool) (*CheckpointInfo, error) {
	if tag == "" {
		tag = "checkpoint-" + time.Now().Format("2006-01-02-150405")
	}
	if err := validateCheckpointID(tag); err != nil {
		return nil, err
	}

	dbFile := cm.dbFile(tag)
	if cm.exists(tag) {
		return nil, fmt.Errorf("%w: %s", ErrCheckpointExists, tag)
	}

	var schemaVersion int
	if err := cm.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&schemaVersion); err != nil {
		return nil, fmt.Errorf("failed to get schema version: %w", err)
	}

	counts := cm.collectRowCounts(ctx)

	// VACUUM INTO writes a consistent copy even with a live WAL
	if _, err := cm.db.ExecContext(ctx, "VACUUM INTO ?", dbFile); err != nil {
		return nil, fmt.Errorf("failed to backup database: %w", err)
	}

	stat, err := os.Stat(dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to stat checkpoint: %w", err)
	}

	info := &CheckpointInfo{
		ID:            tag,
		CreatedAt:     time.Now(),
		Description:   description,
		FileSize:      stat.Size(),
		RowCounts:     counts,
		SchemaVersion: schemaVersion,
		IsAuto:        auto,
	}

	if err := cm.saveMetadata(info); err != nil {
		if rmErr := os.Remove(dbFile); rmErr != nil {
			slog.Error("failed to remove checkpoint file after metadata save failure", "error", rmErr)
		}
		return nil, fmt.Errorf("failed to save metadata: %w", err)
	}

	slog.Info("Created checkpoint", "id", tag, "size", info.FileSize, "auto", auto)

	return info, nil
}

// AutoCheckpoint snapshots the ledger before a bulk change and prunes old
// automatic checkpoints.
func (cm *CheckpointManager) AutoCheckpoint(ctx context.Context, prefix string) (*CheckpointInfo, error) {
	base := fmt.Sprintf("auto-%s-%s", prefix, time.Now().Format("2006-01-02-150405"))
	tag := base
	for i := 2; cm.exists(tag); i++ {
		tag = fmt.Sprintf("%s-%d", base, i)
	}

	info, err := cm.create(ctx, tag, "Automatic checkpoint before "+prefix, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create auto-checkpoint: %w", err)
	}

	if err := cm.pruneAuto(ctx); err != nil {
		slog.Warn("failed to clean up old auto-checkpoints", "error", err)
	}

	return info, nil
}

// List returns all checkpoints, newest first. Unreadable metadata is skipped.
func (cm *CheckpointManager) List(_ context.Context) ([]CheckpointInfo, error) {
	entries, err := os.ReadDir(cm.checkpointsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoints directory: %w", err)
	}

	checkpoints := make([]CheckpointInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".meta.json") {
			continue
		}

		info, err := cm.loadMetadata(strings.TrimSuffix(entry.Name(), ".meta.json"))
		if err != nil {
			slog.Debug("skipping unreadable checkpoint metadata", "file", entry.Name(), "error", err)
			continue
		}
		checkpoints = append(checkpoints, *info)
	}

	slices.SortFunc(checkpoints, func(a, b CheckpointInfo) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return checkpoints, nil
}

// Restore replaces the ledger file with a checkpoint. The storage the
// manager came from is closed and must be reopened afterwards.
func (cm *CheckpointManager) Restore(ctx context.Context, id string) error {
	if err := validateCheckpointID(id); err != nil {
		return err
	}

	dbFile := cm.dbFile(id)
	if _, err := os.Stat(dbFile); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrCheckpointNotFound, id)
		}
		return fmt.Errorf("failed to access checkpoint: %w", err)
	}

	if err := verifyIntegrity(ctx, dbFile); err != nil {
		return fmt.Errorf("%w: %v", ErrCheckpointCorrupted, err)
	}

	if err := cm.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	backup := cm.dbPath + ".restore-backup"
	if err := copyFile(cm.dbPath, backup); err != nil {
		return fmt.Errorf("failed to backup current database: %w", err)
	}

	if err := copyFile(dbFile, cm.dbPath); err != nil {
		if restoreErr := copyFile(backup, cm.dbPath); restoreErr != nil {
			slog.Error("failed to put database back after restore failure", "error", restoreErr)
		}
		return fmt.Errorf("failed to restore checkpoint: %w", err)
	}

	if err := os.Remove(backup); err != nil {
		slog.Warn("failed to remove restore backup", "path", backup, "error", err)
	}

	slog.Info("Restored checkpoint", "id", id)
	return nil
}

// Delete removes a checkpoint and its metadata.
func (cm *CheckpointManager) Delete(_ context.Context, id string) error {
	if err := validateCheckpointID(id); err != nil {
		return err
	}

	if err := os.Remove(cm.dbFile(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrCheckpointNotFound, id)
		}
		return fmt.Errorf("failed to remove checkpoint file: %w", err)
	}

	if err := os.Remove(cm.metaFile(id)); err != nil {
		slog.Debug("failed to remove metadata file", "error", err, "id", id)
	}

	return nil
}

func (cm *CheckpointManager) pruneAuto(ctx context.Context) error {
	checkpoints, err := cm.List(ctx)
	if err != nil {
		return err
	}

	kept := 0
	for _, cp := range checkpoints {
		if !cp.IsAuto {
			continue
		}
		kept++
		if kept > maxAutoCheckpoints {
			if err := cm.Delete(ctx, cp.ID); err != nil {
				slog.Debug("failed to delete old auto-checkpoint", "error", err, "checkpoint", cp.ID)
			}
		}
	}

	return nil
}

func (cm *CheckpointManager) collectRowCounts(ctx context.Context) map[string]int {
	counts := make(map[string]int, len(checkpointTables))
	for _, table := range checkpointTables {
		var n int
		// table names come from the fixed list above
		if err := cm.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			n = 0
		}
		counts[table] = n
	}
	return counts
}

func (cm *CheckpointManager) exists(id string) bool {
	_, err := os.Stat(cm.dbFile(id))
	return err == nil
}

func (cm *CheckpointManager) dbFile(id string) string {
	return filepath.Join(cm.checkpointsDir, id+".db")
}

func (cm *CheckpointManager) metaFile(id string) string {
	return filepath.Join(cm.checkpointsDir, id+".meta.json")
}

func (cm *CheckpointManager) saveMetadata(info *CheckpointInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}

	path := cm.metaFile(info.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (cm *CheckpointManager) loadMetadata(id string) (*CheckpointInfo, error) {
	data, err := os.ReadFile(cm.metaFile(id))
	if err != nil {
		return nil, err
	}

	var info CheckpointInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

var checkpointIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// validateCheckpointID keeps ids usable as bare file names.
func validateCheckpointID(id string) error {
	if !checkpointIDPattern.MatchString(id) {
		return ErrInvalidCheckpointID
	}
	return nil
}

func verifyIntegrity(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var result string
	if err := db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return err
	}
	if result != "ok" {
		return fmt.Errorf("integrity check: %s", result)
	}
	return nil
}

// copyFile writes through a temporary file and renames it into place.
func copyFile(src, dst string) error {
	source, err := os.Open(src) // #nosec G304 -- paths come from the ledger config
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	tmp := dst + ".tmp"
	destination, err := os.Create(tmp) // #nosec G304
	if err != nil {
		return err
	}

	if _, err := io.Copy(destination, source); err != nil {
		_ = destination.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := destination.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, dst)
}
