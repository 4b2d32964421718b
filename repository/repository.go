// Package repository is the backend's persistence layer over gorm. It
// serves the same four collections the client consumes, on sqlite for the
// local single-box deployment or postgres for the shared one.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fundicaobk/equipcheck/config"
	"github.com/fundicaobk/equipcheck/models"
	"github.com/fundicaobk/equipcheck/seed"
)

// PostgreSQL error codes the handlers branch on.
const (
	PgErrForeignKeyViolation = "23503" // foreign_key_violation
	PgErrUniqueViolation     = "23505" // unique_violation
	PgErrNotNullViolation    = "23502" // not_null_violation
	PgErrConnectionFailure   = "08006" // connection_failure
)

// Stable repository error codes.
const (
	CodeDuplicateKey   = "DUPLICATE_KEY"
	CodeEntityNotFound = "ENTITY_NOT_FOUND"
	CodeValidation     = "VALIDATION_ERROR"
	CodeDatabase       = "DATABASE_ERROR"
	CodeConnection     = "CONNECTION_ERROR"
)

// RepositoryError represents an error in the persistence layer.
type RepositoryError struct {
	Code    string
	Message string
	Detail  string
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
}

// Repository wraps the gorm handle for the checklist schema.
type Repository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewRepository builds an unconnected repository.
func NewRepository(log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{log: log}
}

// ConnectSqlite opens (creating if needed) a sqlite database file.
func (r *Repository) ConnectSqlite(path string) error {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("opening sqlite database %s: %w", path, err)
	}
	r.db = db
	r.log.Info("connected to sqlite", zap.String("path", path))
	return nil
}

// ConnectPostgres dials postgres, retrying while the database container
// comes up.
func (r *Repository) ConnectPostgres(dsn string) error {
	var lastErr error
	for attempt := 1; attempt <= 10; attempt++ {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err == nil {
			r.db = db
			r.log.Info("connected to postgres", zap.Int("attempt", attempt))
			return nil
		}
		lastErr = err
		r.log.Warn("postgres connection attempt failed", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	return fmt.Errorf("connecting to postgres: %w", lastErr)
}

// Migrate creates or updates the schema.
func (r *Repository) Migrate() error {
	err := r.db.AutoMigrate(
		&models.Equipment{},
		&models.Operator{},
		&models.Sector{},
		&models.Checklist{},
		&models.ChecklistHistory{},
	)
	if err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	r.log.Info("database migration completed")
	return nil
}

// Seed populates the master tables from the built-in lists when empty, so a
// fresh local backend serves the same data the offline tiers do.
func (r *Repository) Seed() {
	var equipmentCount int64
	r.db.Model(&models.Equipment{}).Count(&equipmentCount)
	if equipmentCount > 0 {
		r.log.Info("seed data already present, skipping")
		return
	}

	for _, equipment := range seed.Equipments() {
		if err := r.db.Create(&equipment).Error; err != nil {
			r.log.Error("seeding equipment", zap.String("id", equipment.ID), zap.Error(err))
		}
	}
	for _, operator := range seed.Operators() {
		if err := r.db.Create(&operator).Error; err != nil {
			r.log.Error("seeding operator", zap.String("id", operator.ID), zap.Error(err))
		}
	}
	r.log.Info("database seeding completed")
}

// mapError classifies a gorm error into the repository taxonomy.
func mapError(err error, message string) *RepositoryError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		code := CodeDatabase
		if pgErr.Code == PgErrUniqueViolation {
			code = CodeDuplicateKey
		}
		return &RepositoryError{Code: code, Message: pgErr.Message, Detail: pgErr.Detail}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return &RepositoryError{Code: CodeDuplicateKey, Message: message, Detail: err.Error()}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &RepositoryError{Code: CodeEntityNotFound, Message: message, Detail: err.Error()}
	}
	return &RepositoryError{Code: CodeDatabase, Message: message, Detail: err.Error()}
}

// ListEquipments returns the catalog in storage order.
func (r *Repository) ListEquipments() ([]models.Equipment, *RepositoryError) {
	equipments := []models.Equipment{}
	if err := r.db.Find(&equipments).Error; err != nil {
		return nil, mapError(err, "failed to list equipments")
	}
	return equipments, nil
}

// CreateEquipment inserts a catalog entry; a taken id yields DUPLICATE_KEY.
func (r *Repository) CreateEquipment(e *models.Equipment) *RepositoryError {
	if e.ID == "" || e.Name == "" {
		return &RepositoryError{Code: CodeValidation, Message: "id and name are required", Detail: "equipment id and name must be non-empty"}
	}
	if err := r.db.Create(e).Error; err != nil {
		return mapError(err, "failed to create equipment")
	}
	return nil
}

// UpdateEquipment upserts a catalog entry by primary key.
func (r *Repository) UpdateEquipment(e *models.Equipment) *RepositoryError {
	if err := r.db.Save(e).Error; err != nil {
		return mapError(err, "failed to update equipment")
	}
	return nil
}

// DeleteEquipment removes by id; deleting an absent id is not an error.
func (r *Repository) DeleteEquipment(id string) *RepositoryError {
	if err := r.db.Delete(&models.Equipment{}, "equipment_id = ?", id).Error; err != nil {
		return mapError(err, "failed to delete equipment")
	}
	return nil
}

// ListOperators returns the roster in storage order; ordering policy
// belongs to the client.
func (r *Repository) ListOperators() ([]models.Operator, *RepositoryError) {
	operators := []models.Operator{}
	if err := r.db.Find(&operators).Error; err != nil {
		return nil, mapError(err, "failed to list operators")
	}
	return operators, nil
}

// CreateOperator inserts a roster entry.
func (r *Repository) CreateOperator(o *models.Operator) *RepositoryError {
	if o.ID == "" || o.Name == "" {
		return &RepositoryError{Code: CodeValidation, Message: "id and name are required", Detail: "operator id and name must be non-empty"}
	}
	if err := r.db.Create(o).Error; err != nil {
		return mapError(err, "failed to create operator")
	}
	return nil
}

// UpdateOperator upserts a roster entry.
func (r *Repository) UpdateOperator(o *models.Operator) *RepositoryError {
	if err := r.db.Save(o).Error; err != nil {
		return mapError(err, "failed to update operator")
	}
	return nil
}

// DeleteOperator removes by badge id.
func (r *Repository) DeleteOperator(id string) *RepositoryError {
	if err := r.db.Delete(&models.Operator{}, "operator_id = ?", id).Error; err != nil {
		return mapError(err, "failed to delete operator")
	}
	return nil
}

// ListSectors returns every sector.
func (r *Repository) ListSectors() ([]models.Sector, *RepositoryError) {
	sectors := []models.Sector{}
	if err := r.db.Find(&sectors).Error; err != nil {
		return nil, mapError(err, "failed to list sectors")
	}
	return sectors, nil
}

// CreateSector inserts a sector.
func (r *Repository) CreateSector(s *models.Sector) *RepositoryError {
	if s.ID == "" || s.Name == "" {
		return &RepositoryError{Code: CodeValidation, Message: "id and name are required", Detail: "sector id and name must be non-empty"}
	}
	if err := r.db.Create(s).Error; err != nil {
		return mapError(err, "failed to create sector")
	}
	return nil
}

// UpdateSector upserts a sector.
func (r *Repository) UpdateSector(s *models.Sector) *RepositoryError {
	if err := r.db.Save(s).Error; err != nil {
		return mapError(err, "failed to update sector")
	}
	return nil
}

// DeleteSector removes by id. No cascade: sectors are denormalized as free
// text on equipment and operators.
func (r *Repository) DeleteSector(id string) *RepositoryError {
	if err := r.db.Delete(&models.Sector{}, "sector_id = ?", id).Error; err != nil {
		return mapError(err, "failed to delete sector")
	}
	return nil
}

// CreateChecklist stores a submission and its history projection in one
// transaction. The assigned id comes back on the returned record.
func (r *Repository) CreateChecklist(c *models.Checklist) (*models.Checklist, *RepositoryError) {
	if !c.Answered() {
		return nil, &RepositoryError{
			Code:    CodeValidation,
			Message: "checklist has unanswered items",
			Detail:  "every item must carry an answer before submission",
		}
	}
	dbTx := r.db.Begin()
	if err := dbTx.Create(c).Error; err != nil {
		dbTx.Rollback()
		return nil, mapError(err, "failed to create checklist")
	}
	record := models.HistoryFromChecklist(uuid.NewString(), c, time.Now())
	if err := dbTx.Create(&record).Error; err != nil {
		dbTx.Rollback()
		return nil, mapError(err, "failed to project checklist history")
	}
	if err := dbTx.Commit().Error; err != nil {
		return nil, mapError(err, "failed to commit checklist")
	}
	return c, nil
}

// ListHistory returns the submission read model, newest last.
func (r *Repository) ListHistory() ([]models.ChecklistHistory, *RepositoryError) {
	records := []models.ChecklistHistory{}
	if err := r.db.Order("date").Find(&records).Error; err != nil {
		return nil, mapError(err, "failed to list history")
	}
	return records, nil
}

// SyncHistory upserts a bulk of client-buffered records. Clients re-send
// their whole buffer on every sync, so conflicts on id are expected and
// resolved by keeping the first copy.
func (r *Repository) SyncHistory(records []models.ChecklistHistory) *RepositoryError {
	if len(records) == 0 {
		return nil
	}
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&records).Error
	if err != nil {
		return mapError(err, "failed to sync history")
	}
	return nil
}

// TestConnection dials postgres with the advanced parameters the settings
// screen collects and reports whether the database answers.
func (r *Repository) TestConnection(ctx context.Context, db config.Database) *RepositoryError {
	conn, err := gorm.Open(postgres.Open(db.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return &RepositoryError{Code: CodeConnection, Message: "could not open connection", Detail: err.Error()}
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return &RepositoryError{Code: CodeConnection, Message: "could not access connection pool", Detail: err.Error()}
	}
	defer sqlDB.Close()
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return &RepositoryError{Code: CodeConnection, Message: "database did not answer", Detail: err.Error()}
	}
	return nil
}
