package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fundicaobk/equipcheck/models"
	"github.com/fundicaobk/equipcheck/seed"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	r := NewRepository(nil)
	require.NoError(t, r.ConnectSqlite(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, r.Migrate())
	return r
}

func answeredChecklist() *models.Checklist {
	c := &models.Checklist{
		EquipmentNumber: "PR-01",
		OperatorName:    "VALDAIR LAURENTINO",
		OperatorID:      "1260",
		Equipment:       "Ponte Rolante 01",
		Sector:          "MACHARIA",
		Items:           models.NewChecklistItems(),
	}
	answer := models.AnswerYes
	for i := range c.Items {
		c.Items[i].Answer = &answer
	}
	return c
}

func TestSeedIsIdempotent(t *testing.T) {
	r := newTestRepository(t)

	r.Seed()
	equipments, repoErr := r.ListEquipments()
	require.Nil(t, repoErr)
	require.Len(t, equipments, len(seed.Equipments()))

	r.Seed()
	equipments, repoErr = r.ListEquipments()
	require.Nil(t, repoErr)
	require.Len(t, equipments, len(seed.Equipments()))

	operators, repoErr := r.ListOperators()
	require.Nil(t, repoErr)
	require.Len(t, operators, len(seed.Operators()))
}

func TestEquipmentCRUD(t *testing.T) {
	r := newTestRepository(t)

	e := &models.Equipment{ID: "EM-02", Name: "Empilhadeira 02", Type: "Empilhadeira", Capacity: "2.5t"}
	require.Nil(t, r.CreateEquipment(e))

	repoErr := r.CreateEquipment(&models.Equipment{ID: "EM-02", Name: "Outro"})
	require.NotNil(t, repoErr)
	require.Equal(t, CodeDuplicateKey, repoErr.Code)

	e.Name = "Empilhadeira 02 (revisada)"
	require.Nil(t, r.UpdateEquipment(e))

	equipments, repoErr := r.ListEquipments()
	require.Nil(t, repoErr)
	require.Len(t, equipments, 1)
	require.Equal(t, "Empilhadeira 02 (revisada)", equipments[0].Name)

	require.Nil(t, r.DeleteEquipment("EM-02"))
	require.Nil(t, r.DeleteEquipment("EM-02")) // absent id is fine

	equipments, repoErr = r.ListEquipments()
	require.Nil(t, repoErr)
	require.Empty(t, equipments)
}

func TestCreateValidation(t *testing.T) {
	r := newTestRepository(t)

	tests := []struct {
		name   string
		create func() *RepositoryError
	}{
		{"equipment without id", func() *RepositoryError {
			return r.CreateEquipment(&models.Equipment{Name: "x"})
		}},
		{"operator without name", func() *RepositoryError {
			return r.CreateOperator(&models.Operator{ID: "1"})
		}},
		{"sector without id", func() *RepositoryError {
			return r.CreateSector(&models.Sector{Name: "x"})
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repoErr := tc.create()
			require.NotNil(t, repoErr)
			require.Equal(t, CodeValidation, repoErr.Code)
		})
	}
}

func TestOperatorCRUD(t *testing.T) {
	r := newTestRepository(t)

	o := &models.Operator{ID: "9001", Name: "TESTE OPERADOR", Role: "OPERADOR", Sector: "FUSAO"}
	require.Nil(t, r.CreateOperator(o))

	repoErr := r.CreateOperator(&models.Operator{ID: "9001", Name: "OUTRO"})
	require.NotNil(t, repoErr)
	require.Equal(t, CodeDuplicateKey, repoErr.Code)

	o.Sector = "SOLDA"
	require.Nil(t, r.UpdateOperator(o))

	operators, repoErr := r.ListOperators()
	require.Nil(t, repoErr)
	require.Len(t, operators, 1)
	require.Equal(t, "SOLDA", operators[0].Sector)

	require.Nil(t, r.DeleteOperator("9001"))
	operators, repoErr = r.ListOperators()
	require.Nil(t, repoErr)
	require.Empty(t, operators)
}

func TestSectorCRUD(t *testing.T) {
	r := newTestRepository(t)

	s := &models.Sector{ID: "SET-01", Name: "Fundição", Email: "fundicao@example.com"}
	require.Nil(t, r.CreateSector(s))

	s.Email = "qualidade@example.com"
	require.Nil(t, r.UpdateSector(s))

	sectors, repoErr := r.ListSectors()
	require.Nil(t, repoErr)
	require.Len(t, sectors, 1)
	require.Equal(t, "qualidade@example.com", sectors[0].Email)

	require.Nil(t, r.DeleteSector("SET-01"))
	sectors, repoErr = r.ListSectors()
	require.Nil(t, repoErr)
	require.Empty(t, sectors)
}

func TestCreateChecklistRejectsUnanswered(t *testing.T) {
	r := newTestRepository(t)

	c := &models.Checklist{
		EquipmentNumber: "PR-01",
		OperatorName:    "VALDAIR LAURENTINO",
		Items:           models.NewChecklistItems(),
	}
	_, repoErr := r.CreateChecklist(c)
	require.NotNil(t, repoErr)
	require.Equal(t, CodeValidation, repoErr.Code)

	records, repoErr := r.ListHistory()
	require.Nil(t, repoErr)
	require.Empty(t, records)
}

func TestCreateChecklistProjectsHistory(t *testing.T) {
	r := newTestRepository(t)

	created, repoErr := r.CreateChecklist(answeredChecklist())
	require.Nil(t, repoErr)
	require.NotZero(t, created.ID)

	records, repoErr := r.ListHistory()
	require.Nil(t, repoErr)
	require.Len(t, records, 1)
	require.NotEmpty(t, records[0].ID)
	require.Equal(t, "PR-01", records[0].EquipmentID)
	require.Equal(t, "Ponte Rolante 01", records[0].EquipmentName)
	require.Equal(t, "VALDAIR LAURENTINO", records[0].OperatorName)
	require.Len(t, records[0].Items, len(models.NewChecklistItems()))
}

func TestSyncHistoryTwiceIsIdempotent(t *testing.T) {
	r := newTestRepository(t)

	records := []models.ChecklistHistory{
		{ID: "a1", EquipmentID: "PR-01", Date: "2026-08-29T10:00:00Z"},
		{ID: "b2", EquipmentID: "GU-01", Date: "2026-08-29T11:00:00Z"},
	}
	require.Nil(t, r.SyncHistory(records))
	// Clients re-send their whole buffer; the second push must not fail or
	// duplicate anything.
	require.Nil(t, r.SyncHistory(records))

	stored, repoErr := r.ListHistory()
	require.Nil(t, repoErr)
	require.Len(t, stored, 2)
	require.Equal(t, "a1", stored[0].ID)
	require.Equal(t, "b2", stored[1].ID)
}

func TestSyncHistoryEmptyBatch(t *testing.T) {
	r := newTestRepository(t)
	require.Nil(t, r.SyncHistory(nil))
}
