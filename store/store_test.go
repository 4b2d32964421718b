package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fundicaobk/equipcheck/models"
	"github.com/fundicaobk/equipcheck/seed"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeedOnFirstRead(t *testing.T) {
	s := newTestStore(t)

	equipments, err := GetAll[models.Equipment](s, CollectionEquipments)
	require.NoError(t, err)
	require.Len(t, equipments, len(seed.Equipments()))

	operators, err := GetAll[models.Operator](s, CollectionOperators)
	require.NoError(t, err)
	require.Len(t, operators, len(seed.Operators()))

	// A second read serves the persisted records, not a fresh seed.
	again, err := GetAll[models.Operator](s, CollectionOperators)
	require.NoError(t, err)
	require.Equal(t, operators, again)
}

func TestEmptiedCollectionStaysEmpty(t *testing.T) {
	s := newTestStore(t)

	operators, err := GetAll[models.Operator](s, CollectionOperators)
	require.NoError(t, err)
	for _, o := range operators {
		require.NoError(t, s.Delete(CollectionOperators, o.ID))
	}

	operators, err = GetAll[models.Operator](s, CollectionOperators)
	require.NoError(t, err)
	require.Empty(t, operators)
}

func TestSectorsHaveNoSeed(t *testing.T) {
	s := newTestStore(t)

	sectors, err := GetAll[models.Sector](s, CollectionSectors)
	require.NoError(t, err)
	require.NotNil(t, sectors)
	require.Empty(t, sectors)
}

func TestAddRejectsDuplicateKey(t *testing.T) {
	s := newTestStore(t)
	sector := models.Sector{ID: "SET-01", Name: "Fundição"}

	require.NoError(t, Add(s, CollectionSectors, sector.ID, sector))
	err := Add(s, CollectionSectors, sector.ID, sector)
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestPutUpserts(t *testing.T) {
	s := newTestStore(t)
	sector := models.Sector{ID: "SET-01", Name: "Fundição"}

	require.NoError(t, Put(s, CollectionSectors, sector.ID, sector))
	sector.Name = "Usinagem"
	require.NoError(t, Put(s, CollectionSectors, sector.ID, sector))

	sectors, err := GetAll[models.Sector](s, CollectionSectors)
	require.NoError(t, err)
	require.Len(t, sectors, 1)
	require.Equal(t, "Usinagem", sectors[0].Name)
}

func TestDeleteAbsentKey(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Delete(CollectionSectors, "missing"))
}

func TestAppendChecklistKeepsInsertionOrder(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		record := models.ChecklistHistory{
			ID:          fmt.Sprintf("rec-%d", i),
			EquipmentID: fmt.Sprintf("PR-%02d", i),
			Date:        time.Now().UTC().Format(time.RFC3339),
		}
		require.NoError(t, s.AppendChecklist(record))
	}

	records, err := GetAll[models.ChecklistHistory](s, CollectionChecklists)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, record := range records {
		require.Equal(t, fmt.Sprintf("rec-%d", i), record.ID)
	}
}

func TestClearChecklists(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AppendChecklist(models.ChecklistHistory{ID: "a"}))
	require.NoError(t, s.AppendChecklist(models.ChecklistHistory{ID: "b"}))
	require.NoError(t, s.ClearChecklists())

	records, err := GetAll[models.ChecklistHistory](s, CollectionChecklists)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestNilStoreIsUnavailable(t *testing.T) {
	var s *Store

	_, err := GetAll[models.Equipment](s, CollectionEquipments)
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.ErrorIs(t, Add(s, CollectionSectors, "x", models.Sector{}), ErrStoreUnavailable)
	require.ErrorIs(t, s.AppendChecklist(models.ChecklistHistory{}), ErrStoreUnavailable)
	require.NoError(t, s.Close())
}
