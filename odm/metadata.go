package odm

import (
	"fmt"
	"strconv"
)

// Project types accepted for a Study.
const (
	ProjectTypeProject       = "Project"
	ProjectTypeGlobalLibrary = "GlobalLibrary Volume"
)

// Study is the ODM study metadata element.
type Study struct {
	OID string

	projectType      string
	globalVariables  *GlobalVariables
	basicDefinitions *BasicDefinitions
	metaDataVersion  *MetaDataVersion
}

// NewStudy creates a Study with the default Project project type.
func NewStudy(oid string) *Study {
	return &Study{OID: oid, projectType: ProjectTypeProject}
}

// SetProjectType validates against the accepted project types.
func (s *Study) SetProjectType(projectType string) error {
	if projectType != ProjectTypeProject && projectType != ProjectTypeGlobalLibrary {
		return fmt.Errorf("%w: project type %q not valid, expected %q or %q",
			ErrInvalidConfiguration, projectType, ProjectTypeProject, ProjectTypeGlobalLibrary)
	}
	s.projectType = projectType
	return nil
}

// Attach adds a metadata child. Each kind may be attached once.
func (s *Study) Attach(child any) error {
	switch v := child.(type) {
	case *GlobalVariables:
		if s.globalVariables != nil {
			return fmt.Errorf("%w: GlobalVariables is already set", ErrInvalidConfiguration)
		}
		s.globalVariables = v
	case *BasicDefinitions:
		if s.basicDefinitions != nil {
			return fmt.Errorf("%w: BasicDefinitions is already set", ErrInvalidConfiguration)
		}
		s.basicDefinitions = v
	case *MetaDataVersion:
		if s.metaDataVersion != nil {
			return fmt.Errorf("%w: a MetaDataVersion is already set and RWS only allows one", ErrInvalidConfiguration)
		}
		s.metaDataVersion = v
	default:
		return fmt.Errorf("%w: Study can only receive GlobalVariables, BasicDefinitions or MetaDataVersion, got %T",
			ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the Study element into b.
func (s *Study) Build(b *Builder) {
	b.Start("Study",
		Attr{"OID", s.OID},
		Attr{"mdsol:ProjectType", s.projectType},
	)
	if s.globalVariables != nil {
		s.globalVariables.Build(b)
	}
	if s.basicDefinitions != nil {
		s.basicDefinitions.Build(b)
	}
	if s.metaDataVersion != nil {
		s.metaDataVersion.Build(b)
	}
	b.End()
}

// GlobalVariables names the study. The protocol name maps to the RWS
// project name; Name defaults to the protocol name.
type GlobalVariables struct {
	ProtocolName string
	Name         string
	Description  string
}

func NewGlobalVariables(protocolName string) *GlobalVariables {
	return &GlobalVariables{ProtocolName: protocolName, Name: protocolName}
}

// Build renders the GlobalVariables element into b.
func (g *GlobalVariables) Build(b *Builder) {
	b.Start("GlobalVariables")
	textElement(b, "StudyName", g.Name)
	textElement(b, "StudyDescription", g.Description)
	textElement(b, "ProtocolName", g.ProtocolName)
	b.End()
}

// TranslatedText is a language-tagged text value.
type TranslatedText struct {
	Lang string
	Text string
}

// Build renders the TranslatedText element into b.
func (t *TranslatedText) Build(b *Builder) {
	b.Start("TranslatedText", Attr{"xml:lang", t.Lang})
	b.Data(t.Text)
	b.End()
}

// Symbol holds the translated representations of a measurement unit.
type Symbol struct {
	translations []*TranslatedText
}

func NewSymbol() *Symbol {
	return &Symbol{}
}

// Attach adds a TranslatedText child.
func (s *Symbol) Attach(child any) error {
	switch v := child.(type) {
	case *TranslatedText:
		s.translations = append(s.translations, v)
	default:
		return fmt.Errorf("%w: Symbol can only receive TranslatedText, got %T", ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the Symbol element into b.
func (s *Symbol) Build(b *Builder) {
	b.Start("Symbol")
	for _, t := range s.translations {
		t.Build(b)
	}
	b.End()
}

// MeasurementUnit defines a unit with its conversion constants.
type MeasurementUnit struct {
	OID                string
	Name               string
	UnitDictionaryName string
	ConstantA          float64
	ConstantB          float64
	ConstantC          float64
	ConstantK          float64
	StandardUnit       bool

	symbols []*Symbol
}

// NewMeasurementUnit creates a unit with identity conversion
// constants (A=1, B=1, C=0, K=0).
func NewMeasurementUnit(oid, name string) *MeasurementUnit {
	return &MeasurementUnit{OID: oid, Name: name, ConstantA: 1, ConstantB: 1}
}

// Attach adds a Symbol child.
func (m *MeasurementUnit) Attach(child any) error {
	switch v := child.(type) {
	case *Symbol:
		m.symbols = append(m.symbols, v)
	default:
		return fmt.Errorf("%w: MeasurementUnit can only receive Symbol, got %T", ErrTypeMismatch, child)
	}
	return nil
}

func formatConstant(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Build renders the MeasurementUnit element into b.
func (m *MeasurementUnit) Build(b *Builder) {
	attrs := []Attr{
		{"OID", m.OID},
		{"Name", m.Name},
	}
	if m.UnitDictionaryName != "" {
		attrs = append(attrs, Attr{"mdsol:UnitDictionaryName", m.UnitDictionaryName})
	}
	attrs = append(attrs,
		Attr{"mdsol:ConstantA", formatConstant(m.ConstantA)},
		Attr{"mdsol:ConstantB", formatConstant(m.ConstantB)},
		Attr{"mdsol:ConstantC", formatConstant(m.ConstantC)},
		Attr{"mdsol:ConstantK", formatConstant(m.ConstantK)},
	)
	if m.StandardUnit {
		attrs = append(attrs, Attr{"mdsol:StandardUnit", "Yes"})
	}
	b.Start("MeasurementUnit", attrs...)
	for _, s := range m.symbols {
		s.Build(b)
	}
	b.End()
}

// BasicDefinitions is the container for measurement units.
type BasicDefinitions struct {
	measurementUnits []*MeasurementUnit
}

func NewBasicDefinitions() *BasicDefinitions {
	return &BasicDefinitions{}
}

// Attach adds a MeasurementUnit child.
func (d *BasicDefinitions) Attach(child any) error {
	switch v := child.(type) {
	case *MeasurementUnit:
		d.measurementUnits = append(d.measurementUnits, v)
	default:
		return fmt.Errorf("%w: BasicDefinitions can only receive MeasurementUnit, got %T", ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the BasicDefinitions element into b.
func (d *BasicDefinitions) Build(b *Builder) {
	b.Start("BasicDefinitions")
	for _, m := range d.measurementUnits {
		m.Build(b)
	}
	b.End()
}

// StudyEventRef references a StudyEventDef from the protocol.
type StudyEventRef struct {
	StudyEventOID string
	OrderNumber   int
	Mandatory     bool
}

// Build renders the StudyEventRef element into b.
func (r *StudyEventRef) Build(b *Builder) {
	b.Start("StudyEventRef",
		Attr{"StudyEventOID", r.StudyEventOID},
		Attr{"OrderNumber", strconv.Itoa(r.OrderNumber)},
		Attr{"Mandatory", boolToYesNo(r.Mandatory)},
	)
	b.End()
}

// Protocol holds the ordered study event references.
type Protocol struct {
	studyEventRefs []*StudyEventRef
}

func NewProtocol() *Protocol {
	return &Protocol{}
}

// Attach adds a StudyEventRef child.
func (p *Protocol) Attach(child any) error {
	switch v := child.(type) {
	case *StudyEventRef:
		p.studyEventRefs = append(p.studyEventRefs, v)
	default:
		return fmt.Errorf("%w: Protocol can only receive StudyEventRef, got %T", ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the Protocol element into b.
func (p *Protocol) Build(b *Builder) {
	b.Start("Protocol")
	for _, r := range p.studyEventRefs {
		r.Build(b)
	}
	b.End()
}

// FormRef references a form definition from a study event.
type FormRef struct {
	FormOID     string
	OrderNumber int
	Mandatory   bool
}

// Build renders the FormRef element into b.
func (r *FormRef) Build(b *Builder) {
	b.Start("FormRef",
		Attr{"FormOID", r.FormOID},
		Attr{"OrderNumber", strconv.Itoa(r.OrderNumber)},
		Attr{"Mandatory", boolToYesNo(r.Mandatory)},
	)
	b.End()
}

// StudyEventDef defines a study event with its scheduling windows.
// The day fields are vendor extensions, emitted only when set.
type StudyEventDef struct {
	OID       string
	Name      string
	Repeating bool
	Category  string

	AccessDays   *int
	StartWinDays *int
	TargetDays   *int
	EndWinDays   *int
	OverDueDays  *int
	CloseDays    *int

	eventType StudyEventType
	formRefs  []*FormRef
}

// NewStudyEventDef creates a StudyEventDef, validating the event type.
func NewStudyEventDef(oid, name string, repeating bool, eventType StudyEventType) (*StudyEventDef, error) {
	if !eventType.valid() {
		return nil, fmt.Errorf("%w: %q is not a StudyEventType", ErrTypeMismatch, eventType)
	}
	return &StudyEventDef{OID: oid, Name: name, Repeating: repeating, eventType: eventType}, nil
}

// Attach adds a FormRef child.
func (d *StudyEventDef) Attach(child any) error {
	switch v := child.(type) {
	case *FormRef:
		d.formRefs = append(d.formRefs, v)
	default:
		return fmt.Errorf("%w: StudyEventDef can only receive FormRef, got %T", ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the StudyEventDef element into b.
func (d *StudyEventDef) Build(b *Builder) {
	attrs := []Attr{
		{"OID", d.OID},
		{"Name", d.Name},
		{"Repeating", boolToYesNo(d.Repeating)},
		{"Type", string(d.eventType)},
	}
	if d.Category != "" {
		attrs = append(attrs, Attr{"Category", d.Category})
	}
	days := []struct {
		name  string
		value *int
	}{
		{"mdsol:AccessDays", d.AccessDays},
		{"mdsol:StartWinDays", d.StartWinDays},
		{"mdsol:TargetDays", d.TargetDays},
		{"mdsol:EndWinDays", d.EndWinDays},
		{"mdsol:OverDueDays", d.OverDueDays},
		{"mdsol:CloseDays", d.CloseDays},
	}
	for _, day := range days {
		if day.value != nil {
			attrs = append(attrs, Attr{day.name, strconv.Itoa(*day.value)})
		}
	}
	b.Start("StudyEventDef", attrs...)
	for _, r := range d.formRefs {
		r.Build(b)
	}
	b.End()
}

// MetaDataVersion is the metadata container inside a Study.
type MetaDataVersion struct {
	OID              string
	Name             string
	Description      string
	PrimaryFormOID   string
	DefaultMatrixOID string
	DeleteExisting   bool
	SignaturePrompt  string

	protocol       *Protocol
	studyEventDefs []*StudyEventDef
}

func NewMetaDataVersion(oid, name string) *MetaDataVersion {
	return &MetaDataVersion{OID: oid, Name: name}
}

// Attach adds a Protocol (at most one) or a StudyEventDef child.
func (m *MetaDataVersion) Attach(child any) error {
	switch v := child.(type) {
	case *Protocol:
		if m.protocol != nil {
			return fmt.Errorf("%w: MetaDataVersion already contains a Protocol", ErrInvalidConfiguration)
		}
		m.protocol = v
	case *StudyEventDef:
		m.studyEventDefs = append(m.studyEventDefs, v)
	default:
		return fmt.Errorf("%w: MetaDataVersion can only receive Protocol or StudyEventDef, got %T",
			ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the MetaDataVersion element into b.
func (m *MetaDataVersion) Build(b *Builder) {
	attrs := []Attr{
		{"OID", m.OID},
		{"Name", m.Name},
	}
	if m.Description != "" {
		attrs = append(attrs, Attr{"Description", m.Description})
	}
	if m.SignaturePrompt != "" {
		attrs = append(attrs, Attr{"mdsol:SignaturePrompt", m.SignaturePrompt})
	}
	if m.PrimaryFormOID != "" {
		attrs = append(attrs, Attr{"mdsol:PrimaryFormOID", m.PrimaryFormOID})
	}
	if m.DefaultMatrixOID != "" {
		attrs = append(attrs, Attr{"mdsol:DefaultMatrixOID", m.DefaultMatrixOID})
	}
	attrs = append(attrs, Attr{"mdsol:DeleteExisting", boolToYesNo(m.DeleteExisting)})
	b.Start("MetaDataVersion", attrs...)
	if m.protocol != nil {
		m.protocol.Build(b)
	}
	for _, d := range m.studyEventDefs {
		d.Build(b)
	}
	b.End()
}
