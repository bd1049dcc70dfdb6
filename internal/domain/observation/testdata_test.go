package observation

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayusovnc/fhir-demo/internal/domain/terminology"
)

const testPanels = `"ParentId","ParentLoinc","ParentName","ID","SEQUENCE","Loinc"
"1","P","Panel P","2","1","A"
"1","P","Panel P","3","2","B"
"1","P","Panel P","4","3","C"
"9","BOTH","Shared as panel","10","1","A"
`

const testLocals = `ID,LOINC,SEQ,GROUP_IDENTIFIER,NAME,X,Y,Z
1,C,1,L,Local L,x,y,z
2,D,2,L,Local L,x,y,z
3,B,1,BOTH,Shared as local,x,y,z
`

const testLocalSystem = "urn:test:lab-group"

func testDirectory(t *testing.T) *terminology.Directory {
	t.Helper()
	panel, _, err := terminology.ParseGroups(strings.NewReader(testPanels), terminology.PanelLayout)
	if err != nil {
		t.Fatalf("parse panels: %v", err)
	}
	local, _, err := terminology.ParseGroups(strings.NewReader(testLocals), terminology.LocalLayout)
	if err != nil {
		t.Fatalf("parse locals: %v", err)
	}
	return terminology.NewDirectory(panel, local, testLocalSystem)
}

func testMapper(t *testing.T) *Mapper {
	return NewMapper(testDirectory(t), InterpretationAlways, zerolog.Nop())
}

var (
	day1 = time.Date(2021, 3, 4, 9, 30, 0, 0, time.UTC)
	day2 = time.Date(2021, 5, 6, 14, 0, 0, 0, time.UTC)
)

func ptr[T any](v T) *T { return &v }

func labResult(id int, code string, at time.Time) *LabResult {
	return &LabResult{
		ID:              id,
		PersonID:        42,
		LOINCCode:       code,
		Quantity:        ptr("5.4"),
		Unit:            ptr("mmol/L"),
		Interpretation:  ptr("N"),
		PerformedOn:     ptr(at),
		GroupIdentifier: ptr("Chemistry"),
		ComponentName:   ptr("Analyte " + code),
	}
}
