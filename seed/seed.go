// Package seed holds the built-in fallback datasets. They are the last tier
// of every read path: when neither a backend nor the embedded store can
// serve a roster, these lists keep the selection screens usable.
package seed

import "github.com/fundicaobk/equipcheck/models"

var equipments = []models.Equipment{
	{ID: "1", Name: "Ponte 01", Type: "Ponte Rolante", Capacity: "10t", Sector: "ACABAMENTO DE PEÇAS"},
	{ID: "2", Name: "Ponte 02", Type: "Ponte Rolante", Capacity: "5t", Sector: "FUSAO"},
	{ID: "3", Name: "Guindaste 01", Type: "Guindaste", Capacity: "15t", Sector: "EXPEDIÇÃO"},
	{ID: "4", Name: "Empilhadeira 01", Type: "Empilhadeira", Capacity: "2.5t", Sector: "ALMOXARIFADO"},
}

// Roster extracted from the plant's employee spreadsheet. Only a
// representative slice; the live backend carries the full list.
var operators = []models.Operator{
	{ID: "1260", Name: "VALDAIR LAURENTINO", Role: "OPER. PRODUÇÃO MACHARIA III", Sector: "MACHARIA"},
	{ID: "1325", Name: "GILMAR OTEMBRAIT", Role: "INSPETOR QUALIDADE II", Sector: "CONTROLE DE QUALIDADE"},
	{ID: "1329", Name: "GEISON CRISTIANO SCHEL", Role: "OPER MAQ MOLD FECH II", Sector: "LINHA DE MOLDAGEM E FECHAMENTO"},
	{ID: "1363", Name: "FELIPE DALLABONA", Role: "ANALISTA DE PPCP II", Sector: "PROGRAMÇAO PROD."},
	{ID: "1372", Name: "ADEMAR GESSER", Role: "OP. REBARBAÇÃO (OP. ACAB.)III", Sector: "REBOLO PENDULAR"},
	{ID: "1377", Name: "CELSO DA SILVA PEREIRA", Role: "TÉCNICO EM SEGURANÇA DO TRABALHO II", Sector: "SEG. MEDICINA TRABA."},
	{ID: "1382", Name: "SILVERIO BISATTO", Role: "SOLDADOR II", Sector: "SOLDA"},
	{ID: "1413", Name: "FABRICIO DALLABONA", Role: "ENCAR. DE PROD. ACABAMENTO II", Sector: "ACABAMENTO DE PEÇAS (I)"},
	{ID: "1422", Name: "JOSE MARINO REICHERT", Role: "OP. REBARBAÇÃO (OP. ACAB.)III", Sector: "REBOLO PENDULAR"},
	{ID: "1423", Name: "JOSE PEREIRA", Role: "INSPETOR QUALIDADE IV", Sector: "CONTROLE DE QUALIDADE"},
	{ID: "1429", Name: "EDILSON NEVES MOTTA", Role: "INSPETOR QUALIDADE II", Sector: "CONTROLE DE QUALIDADE"},
	{ID: "1430", Name: "REGINALDO VALERIANO DOS SANTOS", Role: "OP. COR. CANAL (MAÇARIQ.) III", Sector: "CORTE DE CANAL MAÇARICO"},
	{ID: "1437", Name: "ANDERSON LUIS ONEDA", Role: "MODELADOR III", Sector: "MODELARIA"},
	{ID: "1446", Name: "JOAO CARLOS VANELLI", Role: "OP. COR. CANAL (MAÇARIQ.) III", Sector: "CORTE DE CANAL MAÇARICO"},
	{ID: "1463", Name: "RAFAEL CLEMENTE ESPIG", Role: "OPER. PRODUÇÃO MACHARIA III", Sector: "MACHARIA"},
	{ID: "1475", Name: "MARCELO RAMOS", Role: "MECÂNICO MANUTENÇÃO III", Sector: "MANUTENÇAO MECANICA"},
	{ID: "1478", Name: "ADENOR REICHELT", Role: "OPER. DE FORNO A INDUÇÃO III", Sector: "FUSAO"},
	{ID: "1479", Name: "ADELSIO REICHELT", Role: "REFRATARISTA II", Sector: "FUSAO"},
	{ID: "1488", Name: "EDIVAN VELOZO", Role: "INSPETOR QUALIDADE II", Sector: "CONTROLE DE QUALIDADE"},
	{ID: "1493", Name: "ROBERTO CARLOS PEREIRA", Role: "OPER. PRODUÇÃO MACHARIA III", Sector: "MACHARIA"},
	{ID: "1501", Name: "EDELBERTO CARLOS GESSER", Role: "OPERADOR PONTE ROLANTE II", Sector: "ACABAMENTO DE PEÇAS"},
	{ID: "1508", Name: "OSNI REICHERT", Role: "INSPETOR QUALIDADE II", Sector: "CONTROLE DE QUALIDADE"},
	{ID: "1514", Name: "MAURICIO MELCHIORETTO", Role: "ANALISTA DE PROCESSOS TÉCNICO I", Sector: "DEP. TÉCNICO"},
	{ID: "1200", Name: "MABEL KRISTINE BRAMORSKI LONGEN", Role: "MEDICO(A) TRABALHO", Sector: "SEG. MEDICINA TRABA."},
	{ID: "1536", Name: "VALDEMIRO LEPINSKI", Role: "MECÂNICO MANUTENÇÃO II", Sector: "MANUTENÇAO MECANICA"},
	{ID: "1543", Name: "GUILHERME LEMKE", Role: "SUPERVISOR DE USINAGEM", Sector: "USINAGEM (I)"},
	{ID: "1546", Name: "EDERSON SCABURRI", Role: "LIDER DA ELETROMECANICA", Sector: "MANUTENÇAO ELETRICA"},
	{ID: "1549", Name: "SAMUEL FELIPE KREHNKE", Role: "MECÂNICO MANUTENÇÃO II", Sector: "MANUTENÇAO MECANICA"},
	{ID: "1552", Name: "JAIME LEPINSKI", Role: "TORNEIRO MEC. (OPER. USI.)I", Sector: "USINAGEM"},
	{ID: "1567", Name: "ALANO COSTA BATISTA", Role: "OPERADOR DE FORNO A INDUÇÃO II", Sector: "FUSAO"},
	{ID: "1575", Name: "FABIANO SIGNORELLI", Role: "OPER.TRATAMENTO TÉRMICO I", Sector: "TRATAMENTO TÉRMICO"},
	{ID: "1592", Name: "ANDERSON DA CUNHA", Role: "SOLDADOR II", Sector: "SOLDA"},
	{ID: "1607", Name: "JOCEMAR ROSA DOS SANTOS", Role: "OPER. PRODUÇÃO MACHARIA III", Sector: "MOLDAGEM COLDBOX"},
	{ID: "1618", Name: "ROSALVO MACHADO", Role: "SOLDADOR III", Sector: "SOLDA"},
	{ID: "1638", Name: "LEONARDO SCHUTZ SCHAUSS", Role: "OP. DE ESCARFAGEM (OP. ACB)II", Sector: "ESCARFAGEM"},
	{ID: "1694", Name: "LUIS ANTONIO PEREIRA DO NASCIMENTO", Role: "ALMOXARIFE DE MODELOS I", Sector: "PROGRAMÇAO PROD."},
	{ID: "1739", Name: "EDJALMA RICARDO MARIANO", Role: "OPER. PRODUÇÃO MACHARIA III", Sector: "MACHARIA"},
	{ID: "1757", Name: "WALLACE ALVES DE JESUS", Role: "OPER PROD MOLD FECH III", Sector: "LINHA DE MOLDAGEM E FECHAMENTO"},
	{ID: "1760", Name: "ELOIR RAMALHO", Role: "INSP. QUALIDADE DIMENSIONAL II", Sector: "CONTROLE DE QUALIDADE DIMENSIONAL"},
	{ID: "1776", Name: "JOAO CARLOS RODRIGUES", Role: "OPER. DE JATO (OPER. ACAB.)II", Sector: "ROTOJATO"},
	{ID: "1782", Name: "ALTOIR FERNANDES DA SILVA", Role: "OPER. PRODUÇÃO MACHARIA III", Sector: "MOLDAGEM COLDBOX"},
}

// Equipments returns a fresh copy of the static equipment catalog.
func Equipments() []models.Equipment {
	out := make([]models.Equipment, len(equipments))
	copy(out, equipments)
	return out
}

// Operators returns a fresh copy of the static operator roster, in
// spreadsheet order. Callers impose their own ordering.
func Operators() []models.Operator {
	out := make([]models.Operator, len(operators))
	copy(out, operators)
	return out
}

// Sectors returns an empty list. There is no meaningful static default for
// report recipients, so sector reads degrade to empty rather than stale.
func Sectors() []models.Sector {
	return []models.Sector{}
}
