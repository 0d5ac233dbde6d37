package odm

import (
	"fmt"
	"strconv"
	"time"
)

// Subject key types accepted by RWS.
const (
	SubjectKeyTypeName = "SubjectName"
	SubjectKeyTypeUUID = "SubjectUUID"
)

// defaultMilestoneCodeList is the code list milestones are flagged
// against unless the caller picks another.
const defaultMilestoneCodeList = "MILESTONES"

// ClinicalData groups subject data for one study and metadata version.
// The StudyOID attribute renders as "Project(Environment)".
type ClinicalData struct {
	ProjectName        string
	Environment        string
	MetaDataVersionOID string

	subjectData    *SubjectData
	lastUpdateTime time.Time
}

// NewClinicalData creates a ClinicalData section for the given project
// and environment, defaulting to metadata version "1".
func NewClinicalData(projectName, environment string) *ClinicalData {
	return &ClinicalData{
		ProjectName:        projectName,
		Environment:        environment,
		MetaDataVersionOID: "1",
	}
}

// StudyOID renders the RWS study naming convention, the project name
// with the environment in parentheses.
func (c *ClinicalData) StudyOID() string {
	if c.Environment == "" {
		return c.ProjectName
	}
	return fmt.Sprintf("%s(%s)", c.ProjectName, c.Environment)
}

// SetLastUpdateTime records the vendor mdsol:LastUpdateTime attribute.
func (c *ClinicalData) SetLastUpdateTime(t time.Time) {
	c.lastUpdateTime = t
}

// Attach adds a child; ClinicalData holds a single SubjectData.
func (c *ClinicalData) Attach(child any) error {
	switch v := child.(type) {
	case *SubjectData:
		if c.subjectData != nil {
			return fmt.Errorf("%w: ClinicalData already contains a SubjectData", ErrInvalidConfiguration)
		}
		c.subjectData = v
	default:
		return fmt.Errorf("%w: ClinicalData can only receive SubjectData, got %T", ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the ClinicalData element into b.
func (c *ClinicalData) Build(b *Builder) {
	attrs := []Attr{
		{"MetaDataVersionOID", c.MetaDataVersionOID},
		{"StudyOID", c.StudyOID()},
	}
	if !c.lastUpdateTime.IsZero() {
		attrs = append(attrs, Attr{"mdsol:LastUpdateTime", c.lastUpdateTime.Format(iso8601)})
	}
	b.Start("ClinicalData", attrs...)
	if c.subjectData != nil {
		c.subjectData.Build(b)
	}
	b.End()
}

var subjectDataTransactions = []TransactionType{TransactionInsert, TransactionUpdate, TransactionUpsert}

// SubjectData carries data for a single subject, anchored to a site
// through a SiteRef child.
type SubjectData struct {
	SiteLocationOID string
	SubjectKey      string
	SubjectKeyType  string

	transactionType TransactionType
	studyEvents     []*StudyEventData
	milestones      []string
	lastUpdateTime  time.Time
}

// NewSubjectData creates a SubjectData for subjectKey at the given
// site. The key type defaults to SubjectName and the transaction type
// to Update.
func NewSubjectData(siteLocationOID, subjectKey string) *SubjectData {
	return &SubjectData{
		SiteLocationOID: siteLocationOID,
		SubjectKey:      subjectKey,
		SubjectKeyType:  SubjectKeyTypeName,
		transactionType: TransactionUpdate,
	}
}

// SetTransactionType validates against the element's allowed subset.
func (s *SubjectData) SetTransactionType(t TransactionType) error {
	if err := checkTransaction("SubjectData", subjectDataTransactions, t); err != nil {
		return err
	}
	s.transactionType = t
	return nil
}

// AddMilestone records a milestone, rendered as an Annotation flag
// against the default milestone code list. Duplicates are ignored.
func (s *SubjectData) AddMilestone(milestone string) {
	for _, m := range s.milestones {
		if m == milestone {
			return
		}
	}
	s.milestones = append(s.milestones, milestone)
}

// SetLastUpdateTime records the vendor mdsol:LastUpdateTime attribute.
func (s *SubjectData) SetLastUpdateTime(t time.Time) {
	s.lastUpdateTime = t
}

// Attach adds a StudyEventData child, preserving attachment order.
func (s *SubjectData) Attach(child any) error {
	switch v := child.(type) {
	case *StudyEventData:
		s.studyEvents = append(s.studyEvents, v)
	default:
		return fmt.Errorf("%w: SubjectData can only receive StudyEventData, got %T", ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the SubjectData element into b.
func (s *SubjectData) Build(b *Builder) {
	attrs := []Attr{
		{"SubjectKey", s.SubjectKey},
		{"mdsol:SubjectKeyType", s.SubjectKeyType},
	}
	if s.transactionType != "" {
		attrs = append(attrs, Attr{"TransactionType", string(s.transactionType)})
	}
	if !s.lastUpdateTime.IsZero() {
		attrs = append(attrs, Attr{"mdsol:LastUpdateTime", s.lastUpdateTime.Format(iso8601)})
	}
	b.Start("SubjectData", attrs...)
	b.Start("SiteRef", Attr{"LocationOID", s.SiteLocationOID})
	b.End()
	buildMilestones(b, s.milestones)
	for _, e := range s.studyEvents {
		e.Build(b)
	}
	b.End()
}

// buildMilestones renders milestones as a single Annotation holding a
// Flag per milestone.
func buildMilestones(b *Builder, milestones []string) {
	if len(milestones) == 0 {
		return
	}
	b.Start("Annotation")
	for _, m := range milestones {
		b.Start("Flag")
		b.Start("FlagValue", Attr{"CodeListOID", defaultMilestoneCodeList})
		b.Data(m)
		b.End()
		b.End()
	}
	b.End()
}

var studyEventTransactions = []TransactionType{
	TransactionInsert, TransactionUpdate, TransactionRemove, TransactionContext,
}

// StudyEventData is a visit or event instance for a subject.
type StudyEventData struct {
	StudyEventOID       string
	StudyEventRepeatKey string

	transactionType TransactionType
	forms           []*FormData
	milestones      []string
	lastUpdateTime  time.Time
}

// NewStudyEventData creates a StudyEventData with transaction type
// Update.
func NewStudyEventData(studyEventOID string) *StudyEventData {
	return &StudyEventData{
		StudyEventOID:   studyEventOID,
		transactionType: TransactionUpdate,
	}
}

// SetTransactionType validates against the element's allowed subset.
func (s *StudyEventData) SetTransactionType(t TransactionType) error {
	if err := checkTransaction("StudyEventData", studyEventTransactions, t); err != nil {
		return err
	}
	s.transactionType = t
	return nil
}

// AddMilestone records a milestone annotation. Duplicates are ignored.
func (s *StudyEventData) AddMilestone(milestone string) {
	for _, m := range s.milestones {
		if m == milestone {
			return
		}
	}
	s.milestones = append(s.milestones, milestone)
}

// SetLastUpdateTime records the vendor mdsol:LastUpdateTime attribute.
func (s *StudyEventData) SetLastUpdateTime(t time.Time) {
	s.lastUpdateTime = t
}

// Attach adds a FormData child, preserving attachment order.
func (s *StudyEventData) Attach(child any) error {
	switch v := child.(type) {
	case *FormData:
		s.forms = append(s.forms, v)
	default:
		return fmt.Errorf("%w: StudyEventData can only receive FormData, got %T", ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the StudyEventData element into b.
func (s *StudyEventData) Build(b *Builder) {
	attrs := []Attr{{"StudyEventOID", s.StudyEventOID}}
	if s.transactionType != "" {
		attrs = append(attrs, Attr{"TransactionType", string(s.transactionType)})
	}
	if s.StudyEventRepeatKey != "" {
		attrs = append(attrs, Attr{"StudyEventRepeatKey", s.StudyEventRepeatKey})
	}
	if !s.lastUpdateTime.IsZero() {
		attrs = append(attrs, Attr{"mdsol:LastUpdateTime", s.lastUpdateTime.Format(iso8601)})
	}
	b.Start("StudyEventData", attrs...)
	buildMilestones(b, s.milestones)
	for _, f := range s.forms {
		f.Build(b)
	}
	b.End()
}

var formDataTransactions = []TransactionType{TransactionInsert, TransactionUpdate}

// FormData is one form instance inside a study event.
type FormData struct {
	FormOID       string
	FormRepeatKey string

	transactionType TransactionType
	itemGroups      []*ItemGroupData
}

// NewFormData creates a FormData with no transaction type set.
func NewFormData(formOID string) *FormData {
	return &FormData{FormOID: formOID}
}

// SetTransactionType validates against the element's allowed subset.
func (f *FormData) SetTransactionType(t TransactionType) error {
	if err := checkTransaction("FormData", formDataTransactions, t); err != nil {
		return err
	}
	f.transactionType = t
	return nil
}

// Attach adds an ItemGroupData child, preserving attachment order.
func (f *FormData) Attach(child any) error {
	switch v := child.(type) {
	case *ItemGroupData:
		f.itemGroups = append(f.itemGroups, v)
	default:
		return fmt.Errorf("%w: FormData can only receive ItemGroupData, got %T", ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the FormData element into b. Item groups take their
// ItemGroupOID from the form.
func (f *FormData) Build(b *Builder) {
	attrs := []Attr{{"FormOID", f.FormOID}}
	if f.transactionType != "" {
		attrs = append(attrs, Attr{"TransactionType", string(f.transactionType)})
	}
	if f.FormRepeatKey != "" {
		attrs = append(attrs, Attr{"FormRepeatKey", f.FormRepeatKey})
	}
	b.Start("FormData", attrs...)
	for _, g := range f.itemGroups {
		g.Build(b, f.FormOID)
	}
	b.End()
}

var itemGroupTransactions = []TransactionType{
	TransactionInsert, TransactionUpdate, TransactionUpsert, TransactionContext,
}

// ItemGroupData groups item values inside a form. No OID of its own is
// required; it inherits the owning form's OID at render time.
type ItemGroupData struct {
	ItemGroupRepeatKey string
	WholeItemGroup     bool

	transactionType TransactionType
	items           []*ItemData
}

func NewItemGroupData() *ItemGroupData {
	return &ItemGroupData{}
}

// SetTransactionType validates against the element's allowed subset.
func (g *ItemGroupData) SetTransactionType(t TransactionType) error {
	if err := checkTransaction("ItemGroupData", itemGroupTransactions, t); err != nil {
		return err
	}
	g.transactionType = t
	return nil
}

// Attach adds an ItemData child. A second item with the same ItemOID
// is rejected.
func (g *ItemGroupData) Attach(child any) error {
	switch v := child.(type) {
	case *ItemData:
		for _, it := range g.items {
			if it.ItemOID == v.ItemOID {
				return fmt.Errorf("%w: ItemGroupData already contains ItemData for %q",
					ErrInvalidConfiguration, v.ItemOID)
			}
		}
		g.items = append(g.items, v)
	default:
		return fmt.Errorf("%w: ItemGroupData can only receive ItemData, got %T", ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the ItemGroupData element into b under the given OID.
func (g *ItemGroupData) Build(b *Builder, itemGroupOID string) {
	attrs := []Attr{{"ItemGroupOID", itemGroupOID}}
	if g.transactionType != "" {
		attrs = append(attrs, Attr{"TransactionType", string(g.transactionType)})
	}
	if g.ItemGroupRepeatKey != "" {
		attrs = append(attrs, Attr{"ItemGroupRepeatKey", g.ItemGroupRepeatKey})
	}
	submission := "SpecifiedItemsOnly"
	if g.WholeItemGroup {
		submission = "WholeItemGroup"
	}
	attrs = append(attrs, Attr{"mdsol:Submission", submission})
	b.Start("ItemGroupData", attrs...)
	for _, it := range g.items {
		it.Build(b)
	}
	b.End()
}

var itemDataTransactions = []TransactionType{
	TransactionInsert, TransactionUpdate, TransactionUpsert, TransactionContext, TransactionRemove,
}

// ItemData is a single data point. An empty value renders IsNull="Yes"
// instead of a Value attribute.
type ItemData struct {
	ItemOID      string
	Value        string
	SpecifyValue string
	Lock         *bool
	Freeze       *bool
	Verify       *bool

	transactionType TransactionType
	queries         []*Query
}

func NewItemData(itemOID, value string) *ItemData {
	return &ItemData{ItemOID: itemOID, Value: value}
}

// SetTransactionType validates against the element's allowed subset.
func (i *ItemData) SetTransactionType(t TransactionType) error {
	if err := checkTransaction("ItemData", itemDataTransactions, t); err != nil {
		return err
	}
	i.transactionType = t
	return nil
}

// Attach adds a vendor Query child.
func (i *ItemData) Attach(child any) error {
	switch v := child.(type) {
	case *Query:
		i.queries = append(i.queries, v)
	default:
		return fmt.Errorf("%w: ItemData can only receive Query, got %T", ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the ItemData element into b.
func (i *ItemData) Build(b *Builder) {
	attrs := []Attr{{"ItemOID", i.ItemOID}}
	if i.transactionType != "" {
		attrs = append(attrs, Attr{"TransactionType", string(i.transactionType)})
	}
	if i.Value == "" {
		attrs = append(attrs, Attr{"IsNull", "Yes"})
	} else {
		attrs = append(attrs, Attr{"Value", i.Value})
	}
	if i.SpecifyValue != "" {
		attrs = append(attrs, Attr{"mdsol:SpecifyValue", i.SpecifyValue})
	}
	if i.Lock != nil {
		attrs = append(attrs, Attr{"mdsol:Lock", boolToYesNo(*i.Lock)})
	}
	if i.Freeze != nil {
		attrs = append(attrs, Attr{"mdsol:Freeze", boolToYesNo(*i.Freeze)})
	}
	if i.Verify != nil {
		attrs = append(attrs, Attr{"mdsol:Verify", boolToYesNo(*i.Verify)})
	}
	b.Start("ItemData", attrs...)
	for _, q := range i.queries {
		q.Build(b)
	}
	b.End()
}

// Query is the vendor query extension element attached to an ItemData.
type Query struct {
	Value            string
	QueryRepeatKey   int
	Recipient        string
	Response         string
	RequiresResponse *bool

	status QueryStatusType
}

func NewQuery() *Query {
	return &Query{}
}

// SetStatus validates against the QueryStatusType set.
func (q *Query) SetStatus(s QueryStatusType) error {
	if !s.valid() {
		return fmt.Errorf("%w: %q is not a QueryStatusType", ErrTypeMismatch, s)
	}
	q.status = s
	return nil
}

// Build renders the mdsol:Query element into b.
func (q *Query) Build(b *Builder) {
	var attrs []Attr
	if q.Value != "" {
		attrs = append(attrs, Attr{"Value", q.Value})
	}
	if q.QueryRepeatKey != 0 {
		attrs = append(attrs, Attr{"QueryRepeatKey", strconv.Itoa(q.QueryRepeatKey)})
	}
	if q.Recipient != "" {
		attrs = append(attrs, Attr{"Recipient", q.Recipient})
	}
	if q.status != "" {
		attrs = append(attrs, Attr{"Status", string(q.status)})
	}
	if q.RequiresResponse != nil {
		attrs = append(attrs, Attr{"RequiresResponse", boolToYesNo(*q.RequiresResponse)})
	}
	if q.Response != "" {
		attrs = append(attrs, Attr{"Response", q.Response})
	}
	b.Start("mdsol:Query", attrs...)
	b.End()
}
