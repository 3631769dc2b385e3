package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/unimedia/agencysite/internal/domain/entities"
	"github.com/unimedia/agencysite/internal/infrastructure/logger"
	"github.com/unimedia/agencysite/internal/ports"
)

// RecordRepositoryImpl implements the RecordRepository interface on top of
// one JSON array file per entity type.
type RecordRepositoryImpl struct {
	dataDir string
	logger  *logger.Logger
	now     func() time.Time

	mu    sync.Mutex
	locks map[entities.EntityType]*sync.RWMutex
}

// NewRecordRepository creates a new record repository rooted at dataDir
func NewRecordRepository(dataDir string, appLogger *logger.Logger) *RecordRepositoryImpl {
	return &RecordRepositoryImpl{
		dataDir: dataDir,
		logger:  appLogger.WithComponent("record_repository"),
		now:     time.Now,
		locks:   make(map[entities.EntityType]*sync.RWMutex),
	}
}

var _ ports.RecordRepository = (*RecordRepositoryImpl)(nil)

// Path returns the backing file of an entity type
func (r *RecordRepositoryImpl) Path(entityType entities.EntityType) string {
	return filepath.Join(r.dataDir, string(entityType), dataFileName)
}

// Writable checks that the data directory accepts new files
func (r *RecordRepositoryImpl) Writable() error {
	if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(r.dataDir, ".writecheck-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func (r *RecordRepositoryImpl) lock(entityType entities.EntityType) *sync.RWMutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[entityType]
	if !ok {
		l = &sync.RWMutex{}
		r.locks[entityType] = l
	}
	return l
}

func (r *RecordRepositoryImpl) List(ctx context.Context, entityType entities.EntityType) ([]entities.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !entityType.IsValid() {
		return nil, entities.ErrInvalidEntityType
	}

	l := r.lock(entityType)
	l.RLock()
	defer l.RUnlock()

	return r.load(entityType), nil
}

func (r *RecordRepositoryImpl) Create(ctx context.Context, entityType entities.EntityType, record entities.Record) (entities.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !entityType.IsValid() {
		return nil, entities.ErrInvalidEntityType
	}
	if record == nil {
		return nil, entities.ErrInvalidItem
	}

	l := r.lock(entityType)
	l.Lock()
	defer l.Unlock()

	records := r.load(entityType)

	item := record.Clone()
	if _, ok := item.ID(); !ok {
		item["id"] = r.nextID(records)
	}

	records = append(records, item)
	if err := r.save(entityType, records); err != nil {
		return nil, fmt.Errorf("create %s item: %w", entityType, err)
	}

	return item, nil
}

// Update shallow-merges patch into the first record matching id. When check is
// not nil it runs on the merged record while the collection is still locked, and
// an error from it aborts the write.
func (r *RecordRepositoryImpl) Update(ctx context.Context, entityType entities.EntityType, id string, patch entities.Record, check func(entities.Record) error) (entities.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !entityType.IsValid() {
		return nil, entities.ErrInvalidEntityType
	}

	l := r.lock(entityType)
	l.Lock()
	defer l.Unlock()

	records := r.load(entityType)

	index := -1
	for i, existing := range records {
		if existing != nil && entities.IDEquals(existing["id"], id) {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, entities.ErrItemNotFound
	}

	merged := records[index].Merge(patch)
	if check != nil {
		if err := check(merged); err != nil {
			return nil, err
		}
	}

	records[index] = merged
	if err := r.save(entityType, records); err != nil {
		return nil, fmt.Errorf("update %s item %s: %w", entityType, id, err)
	}

	return records[index], nil
}

func (r *RecordRepositoryImpl) Delete(ctx context.Context, entityType entities.EntityType, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !entityType.IsValid() {
		return entities.ErrInvalidEntityType
	}

	l := r.lock(entityType)
	l.Lock()
	defer l.Unlock()

	records := r.load(entityType)

	kept := make([]entities.Record, 0, len(records))
	for _, existing := range records {
		if existing != nil && entities.IDEquals(existing["id"], id) {
			continue
		}
		kept = append(kept, existing)
	}
	if len(kept) == len(records) {
		return entities.ErrItemNotFound
	}

	if err := r.save(entityType, kept); err != nil {
		return fmt.Errorf("delete %s item %s: %w", entityType, id, err)
	}

	return nil
}

func (r *RecordRepositoryImpl) Replace(ctx context.Context, entityType entities.EntityType, records []entities.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !entityType.IsValid() {
		return entities.ErrInvalidEntityType
	}
	if records == nil {
		records = []entities.Record{}
	}

	l := r.lock(entityType)
	l.Lock()
	defer l.Unlock()

	if err := r.save(entityType, records); err != nil {
		return fmt.Errorf("replace %s items: %w", entityType, err)
	}

	return nil
}

// load reads the collection. Read and decode failures are logged and yield an empty collection.
func (r *RecordRepositoryImpl) load(entityType entities.EntityType) []entities.Record {
	path := r.Path(entityType)
	start := time.Now()

	var records []entities.Record
	found, err := readJSONFile(path, &records)
	r.logger.LogStorageOperation("read", path, elapsedMillis(start), err)
	if err != nil || !found || records == nil {
		return []entities.Record{}
	}

	return records
}

func (r *RecordRepositoryImpl) save(entityType entities.EntityType, records []entities.Record) error {
	path := r.Path(entityType)
	start := time.Now()

	err := writeJSONFile(path, records)
	r.logger.LogStorageOperation("write", path, elapsedMillis(start), err)

	return err
}

// nextID derives an id from the current time in milliseconds, stepping past ids already taken.
func (r *RecordRepositoryImpl) nextID(records []entities.Record) json.Number {
	candidate := r.now().UnixMilli()
	for {
		s := strconv.FormatInt(candidate, 10)
		taken := false
		for _, existing := range records {
			if existing != nil && entities.IDEquals(existing["id"], s) {
				taken = true
				break
			}
		}
		if !taken {
			return json.Number(s)
		}
		candidate++
	}
}

func elapsedMillis(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / 1000000
}
