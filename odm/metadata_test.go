package odm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestStudyProjectType(t *testing.T) {
	s := NewStudy("Mediflex")
	require.Contains(t, Render(s), `<Study OID="Mediflex" mdsol:ProjectType="Project" />`)

	require.NoError(t, s.SetProjectType(ProjectTypeGlobalLibrary))
	require.Contains(t, Render(s), `mdsol:ProjectType="GlobalLibrary Volume"`)

	err := s.SetProjectType("Library")
	require.ErrorIs(t, err, ErrInvalidConfiguration)
	require.Contains(t, Render(s), `mdsol:ProjectType="GlobalLibrary Volume"`)
}

func TestStudySingleChildren(t *testing.T) {
	s := NewStudy("Mediflex")

	require.NoError(t, s.Attach(NewGlobalVariables("Mediflex")))
	require.ErrorIs(t, s.Attach(NewGlobalVariables("Other")), ErrInvalidConfiguration)

	require.NoError(t, s.Attach(NewBasicDefinitions()))
	require.ErrorIs(t, s.Attach(NewBasicDefinitions()), ErrInvalidConfiguration)

	require.NoError(t, s.Attach(NewMetaDataVersion("1", "Draft1")))
	require.ErrorIs(t, s.Attach(NewMetaDataVersion("2", "Draft2")), ErrInvalidConfiguration)

	require.ErrorIs(t, s.Attach(42), ErrTypeMismatch)
}

func TestStudyChildOrder(t *testing.T) {
	s := NewStudy("Mediflex")
	require.NoError(t, s.Attach(NewMetaDataVersion("1", "Draft1")))
	require.NoError(t, s.Attach(NewBasicDefinitions()))
	require.NoError(t, s.Attach(NewGlobalVariables("Mediflex")))

	doc := Render(s)
	globals := strings.Index(doc, "<GlobalVariables>")
	basics := strings.Index(doc, "<BasicDefinitions")
	metadata := strings.Index(doc, "<MetaDataVersion ")
	require.Greater(t, basics, globals)
	require.Greater(t, metadata, basics)
}

func TestGlobalVariablesBuild(t *testing.T) {
	g := NewGlobalVariables("Mediflex")
	g.Description = "Mediflex studies diabetes"

	doc := Render(g)
	require.Contains(t, doc, "<StudyName>Mediflex</StudyName>")
	require.Contains(t, doc, "<StudyDescription>Mediflex studies diabetes</StudyDescription>")
	require.Contains(t, doc, "<ProtocolName>Mediflex</ProtocolName>")
}

func TestMeasurementUnitBuild(t *testing.T) {
	m := NewMeasurementUnit("KG", "Kilograms")
	m.UnitDictionaryName = "UNITS"
	m.ConstantC = 0.5
	m.StandardUnit = true

	symbol := NewSymbol()
	require.NoError(t, symbol.Attach(&TranslatedText{Lang: "en", Text: "kg"}))
	require.NoError(t, m.Attach(symbol))

	doc := Render(m)
	require.Contains(t, doc, `<MeasurementUnit OID="KG" Name="Kilograms" mdsol:UnitDictionaryName="UNITS" mdsol:ConstantA="1" mdsol:ConstantB="1" mdsol:ConstantC="0.5" mdsol:ConstantK="0" mdsol:StandardUnit="Yes">`)
	require.Contains(t, doc, `<TranslatedText xml:lang="en">kg</TranslatedText>`)
}

func TestBasicDefinitionsBuild(t *testing.T) {
	d := NewBasicDefinitions()
	require.NoError(t, d.Attach(NewMeasurementUnit("KG", "Kilograms")))
	require.NoError(t, d.Attach(NewMeasurementUnit("CM", "Centimeters")))
	require.ErrorIs(t, d.Attach(NewSymbol()), ErrTypeMismatch)

	doc := Render(d)
	kg := strings.Index(doc, `OID="KG"`)
	cm := strings.Index(doc, `OID="CM"`)
	require.Greater(t, cm, kg)
}

func TestProtocolBuild(t *testing.T) {
	p := NewProtocol()
	require.NoError(t, p.Attach(&StudyEventRef{StudyEventOID: "SCREENING", OrderNumber: 1, Mandatory: true}))
	require.NoError(t, p.Attach(&StudyEventRef{StudyEventOID: "TREATMENT", OrderNumber: 2, Mandatory: false}))

	doc := Render(p)
	require.Contains(t, doc, `<StudyEventRef StudyEventOID="SCREENING" OrderNumber="1" Mandatory="Yes" />`)
	require.Contains(t, doc, `<StudyEventRef StudyEventOID="TREATMENT" OrderNumber="2" Mandatory="No" />`)
}

func TestNewStudyEventDef(t *testing.T) {
	_, err := NewStudyEventDef("SCREENING", "Screening", false, StudyEventType("Adhoc"))
	require.ErrorIs(t, err, ErrTypeMismatch)

	d, err := NewStudyEventDef("SCREENING", "Screening", true, EventScheduled)
	require.NoError(t, err)
	require.Contains(t, Render(d), `<StudyEventDef OID="SCREENING" Name="Screening" Repeating="Yes" Type="Scheduled" />`)
}

func TestStudyEventDefVendorDays(t *testing.T) {
	d, err := NewStudyEventDef("SCREENING", "Screening", false, EventCommon)
	require.NoError(t, err)
	d.Category = "Baseline"
	d.AccessDays = intPtr(5)
	d.TargetDays = intPtr(7)
	d.CloseDays = intPtr(10)
	require.NoError(t, d.Attach(&FormRef{FormOID: "VITALS", OrderNumber: 1, Mandatory: true}))

	doc := Render(d)
	require.Contains(t, doc, `Category="Baseline"`)
	require.Contains(t, doc, `mdsol:AccessDays="5"`)
	require.Contains(t, doc, `mdsol:TargetDays="7"`)
	require.Contains(t, doc, `mdsol:CloseDays="10"`)
	require.NotContains(t, doc, "mdsol:StartWinDays=")
	require.NotContains(t, doc, "mdsol:EndWinDays=")
	require.NotContains(t, doc, "mdsol:OverDueDays=")
	require.Contains(t, doc, `<FormRef FormOID="VITALS" OrderNumber="1" Mandatory="Yes" />`)
}

func TestMetaDataVersionBuild(t *testing.T) {
	m := NewMetaDataVersion("1", "Draft1")
	m.Description = "first draft"
	m.SignaturePrompt = "I agree"
	m.PrimaryFormOID = "VITALS"
	m.DefaultMatrixOID = "DEFAULT"

	doc := Render(m)
	require.Contains(t, doc, `<MetaDataVersion OID="1" Name="Draft1" Description="first draft" mdsol:SignaturePrompt="I agree" mdsol:PrimaryFormOID="VITALS" mdsol:DefaultMatrixOID="DEFAULT" mdsol:DeleteExisting="No" />`)
}

func TestMetaDataVersionDeleteExistingAlwaysEmitted(t *testing.T) {
	m := NewMetaDataVersion("1", "Draft1")
	require.Contains(t, Render(m), `mdsol:DeleteExisting="No"`)

	m.DeleteExisting = true
	require.Contains(t, Render(m), `mdsol:DeleteExisting="Yes"`)
}

func TestMetaDataVersionSingleProtocol(t *testing.T) {
	m := NewMetaDataVersion("1", "Draft1")

	require.NoError(t, m.Attach(NewProtocol()))
	require.ErrorIs(t, m.Attach(NewProtocol()), ErrInvalidConfiguration)

	d, err := NewStudyEventDef("SCREENING", "Screening", false, EventScheduled)
	require.NoError(t, err)
	require.NoError(t, m.Attach(d))

	doc := Render(m)
	protocol := strings.Index(doc, "<Protocol")
	event := strings.Index(doc, "<StudyEventDef ")
	require.Greater(t, event, protocol)
}
