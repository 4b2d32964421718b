// Package datasource is the uniform read/write surface over the backends.
// It resolves the active backend per call, degrades reads through the
// fallback tiers (backend, then built-in seed data), and keeps every
// caller ignorant of which tier actually served the data.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/fundicaobk/equipcheck/client"
	"github.com/fundicaobk/equipcheck/config"
	"github.com/fundicaobk/equipcheck/history"
	"github.com/fundicaobk/equipcheck/models"
	"github.com/fundicaobk/equipcheck/seed"
	"github.com/fundicaobk/equipcheck/store"
)

// ErrUnansweredItems rejects a submission while any question is still open.
var ErrUnansweredItems = errors.New("datasource: checklist has unanswered items")

// DataSource routes entity operations to the embedded store or the remote
// client. It owns no state; the mode is re-resolved at the start of every
// public operation.
type DataSource struct {
	cfg     config.Loader
	store   *store.Store
	client  *client.Client
	history *history.Service
	log     *zap.Logger
	coll    *collate.Collator
}

// New builds the orchestrator. The store may come from a failed Open (nil);
// embedded reads then degrade to the seed tier.
func New(cfg config.Loader, st *store.Store, cl *client.Client, hist *history.Service, log *zap.Logger) *DataSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &DataSource{
		cfg:     cfg,
		store:   st,
		client:  cl,
		history: hist,
		log:     log,
		coll:    collate.New(language.BrazilianPortuguese),
	}
}

// mode resolves the backend for this one call. A broken settings file is
// itself degraded: the built-in defaults apply.
func (d *DataSource) mode() config.Mode {
	settings, err := d.cfg()
	if err != nil {
		d.log.Warn("settings unreadable, using defaults", zap.Error(err))
		settings = &config.Settings{}
	}
	return settings.BackendMode()
}

// listWithFallback runs the primary read and degrades to the static tier
// on any failure. Read callers never observe an error, only a possibly
// smaller result set.
func listWithFallback[T any](d *DataSource, entity string, primary func() ([]T, error), fallback func() []T) []T {
	records, err := primary()
	if err != nil {
		d.log.Warn("read degraded to fallback tier",
			zap.String("entity", entity),
			zap.Error(err))
		return fallback()
	}
	return records
}

// ListEquipments returns the equipment catalog in backend order. A fixed
// catalog order is what operators who know assets by number expect, so no
// sort is imposed.
func (d *DataSource) ListEquipments(ctx context.Context) []models.Equipment {
	if d.mode().EmbeddedStore {
		return listWithFallback(d, "equipments", func() ([]models.Equipment, error) {
			return store.GetAll[models.Equipment](d.store, store.CollectionEquipments)
		}, seed.Equipments)
	}
	return listWithFallback(d, "equipments", func() ([]models.Equipment, error) {
		return d.client.ListEquipments(ctx)
	}, seed.Equipments)
}

// ListOperators returns the roster sorted by name, locale-aware, whichever
// backend served it. The selection screen depends on stable alphabetical
// order.
func (d *DataSource) ListOperators(ctx context.Context) []models.Operator {
	var operators []models.Operator
	if d.mode().EmbeddedStore {
		operators = listWithFallback(d, "operators", func() ([]models.Operator, error) {
			return store.GetAll[models.Operator](d.store, store.CollectionOperators)
		}, seed.Operators)
	} else {
		operators = listWithFallback(d, "operators", func() ([]models.Operator, error) {
			return d.client.ListOperators(ctx)
		}, seed.Operators)
	}
	d.sortOperators(operators)
	return operators
}

func (d *DataSource) sortOperators(operators []models.Operator) {
	sort.SliceStable(operators, func(i, j int) bool {
		return d.coll.CompareString(operators[i].Name, operators[j].Name) < 0
	})
}

// SearchOperators filters the roster by a case-insensitive substring over
// name, badge id, sector and role. An empty query returns everyone.
func (d *DataSource) SearchOperators(ctx context.Context, query string) []models.Operator {
	operators := d.ListOperators(ctx)
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return operators
	}
	matched := operators[:0:0]
	for _, o := range operators {
		if strings.Contains(strings.ToLower(o.Name), term) ||
			strings.Contains(strings.ToLower(o.ID), term) ||
			strings.Contains(strings.ToLower(o.Sector), term) ||
			strings.Contains(strings.ToLower(o.Role), term) {
			matched = append(matched, o)
		}
	}
	return matched
}

// GetOperatorByID looks up one operator by badge number.
func (d *DataSource) GetOperatorByID(ctx context.Context, id string) (*models.Operator, bool) {
	for _, o := range d.ListOperators(ctx) {
		if o.ID == id {
			return &o, true
		}
	}
	return nil, false
}

// ListSectors returns the sector list, or an empty list when every tier
// failed; there is no meaningful static default for report recipients.
func (d *DataSource) ListSectors(ctx context.Context) []models.Sector {
	if d.mode().EmbeddedStore {
		return listWithFallback(d, "sectors", func() ([]models.Sector, error) {
			return store.GetAll[models.Sector](d.store, store.CollectionSectors)
		}, seed.Sectors)
	}
	return listWithFallback(d, "sectors", func() ([]models.Sector, error) {
		return d.client.ListSectors(ctx)
	}, seed.Sectors)
}

// ListHistory returns the submission read model. In networked mode a
// failing backend degrades to the locally buffered records, never to seed
// data.
func (d *DataSource) ListHistory(ctx context.Context) []models.ChecklistHistory {
	localBuffer := func() []models.ChecklistHistory {
		records, err := d.history.Records()
		if err != nil {
			d.log.Warn("local history buffer unreadable", zap.Error(err))
			return []models.ChecklistHistory{}
		}
		return records
	}
	if d.mode().EmbeddedStore {
		return localBuffer()
	}
	return listWithFallback(d, "history", func() ([]models.ChecklistHistory, error) {
		return d.client.ListSubmissionHistory(ctx)
	}, localBuffer)
}

// SaveChecklist persists one completed inspection. Unlike reads, a failed
// write surfaces: in networked mode the record is first buffered locally as
// the durability backstop, then the transport error is returned so the
// caller can tell the operator what happened.
func (d *DataSource) SaveChecklist(ctx context.Context, c *models.Checklist) (*models.Checklist, error) {
	if !c.Answered() {
		return nil, ErrUnansweredItems
	}
	if d.mode().EmbeddedStore {
		if _, err := d.history.RecordLocally(c); err != nil {
			return nil, err
		}
		return c, nil
	}
	created, err := d.client.CreateSubmission(ctx, c)
	if err != nil {
		if _, recErr := d.history.RecordLocally(c); recErr != nil {
			return nil, errors.Join(err, recErr)
		}
		return nil, fmt.Errorf("submission stored in local buffer only: %w", err)
	}
	return created, nil
}

// SaveEquipment adds or updates a catalog entry. Admin writes have no
// fallback tier; a failure is reported, not masked.
func (d *DataSource) SaveEquipment(ctx context.Context, e models.Equipment, isNew bool) error {
	if d.mode().EmbeddedStore {
		if isNew {
			return store.Add(d.store, store.CollectionEquipments, e.ID, e)
		}
		return store.Put(d.store, store.CollectionEquipments, e.ID, e)
	}
	if isNew {
		return d.client.AddEquipment(ctx, e)
	}
	return d.client.UpdateEquipment(ctx, e)
}

// DeleteEquipment removes a catalog entry.
func (d *DataSource) DeleteEquipment(ctx context.Context, id string) error {
	if d.mode().EmbeddedStore {
		return d.store.Delete(store.CollectionEquipments, id)
	}
	return d.client.DeleteEquipment(ctx, id)
}

// SaveOperator adds or updates a roster entry.
func (d *DataSource) SaveOperator(ctx context.Context, o models.Operator, isNew bool) error {
	if d.mode().EmbeddedStore {
		if isNew {
			return store.Add(d.store, store.CollectionOperators, o.ID, o)
		}
		return store.Put(d.store, store.CollectionOperators, o.ID, o)
	}
	if isNew {
		return d.client.AddOperator(ctx, o)
	}
	return d.client.UpdateOperator(ctx, o)
}

// DeleteOperator removes a roster entry.
func (d *DataSource) DeleteOperator(ctx context.Context, id string) error {
	if d.mode().EmbeddedStore {
		return d.store.Delete(store.CollectionOperators, id)
	}
	return d.client.DeleteOperator(ctx, id)
}

// SaveSector adds or updates a sector.
func (d *DataSource) SaveSector(ctx context.Context, s models.Sector, isNew bool) error {
	if d.mode().EmbeddedStore {
		if isNew {
			return store.Add(d.store, store.CollectionSectors, s.ID, s)
		}
		return store.Put(d.store, store.CollectionSectors, s.ID, s)
	}
	if isNew {
		return d.client.AddSector(ctx, s)
	}
	return d.client.UpdateSector(ctx, s)
}

// DeleteSector removes a sector.
func (d *DataSource) DeleteSector(ctx context.Context, id string) error {
	if d.mode().EmbeddedStore {
		return d.store.Delete(store.CollectionSectors, id)
	}
	return d.client.DeleteSector(ctx, id)
}
