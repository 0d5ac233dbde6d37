package odm

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Namespace URIs are fixed by the ODM 1.3 schema and the vendor
// metadata extension; receiving tools match on them exactly.
const (
	odmNamespace   = "http://www.cdisc.org/ns/odm/v1.3"
	mdsolNamespace = "http://www.mdsol.com/ns/odm/metadata"
)

// supportedODMVersions is the allow-list for the ODMVersion attribute.
var supportedODMVersions = []string{"1.2", "1.2.1", "1.3", "1.3.1", "1.3.2"}

// ODM is the document root. It owns at most one Study, at most one
// AdminData and any number of ClinicalData sections, and renders its
// children in schema order (Study, ClinicalData, AdminData) regardless
// of attachment order.
type ODM struct {
	originator          string
	description         string
	creationDateTime    string
	sourceSystem        string
	sourceSystemVersion string
	fileOID             string
	fileType            FileType
	odmVersion          string
	granularity         GranularityType
	asOf                DateTime

	study        *Study
	adminData    *AdminData
	clinicalData []*ClinicalData
}

// Option configures an ODM root at construction time.
type Option func(*ODM) error

// WithDescription sets the Description attribute, recorded to help the
// receiver interpret the document.
func WithDescription(description string) Option {
	return func(o *ODM) error {
		o.description = description
		return nil
	}
}

// WithCreationDateTime overrides the default creation timestamp.
func WithCreationDateTime(t time.Time) Option {
	return func(o *ODM) error {
		o.creationDateTime = t.Format(iso8601)
		return nil
	}
}

// WithFileOID sets an explicit file identifier instead of the
// generated UUID.
func WithFileOID(oid string) Option {
	return func(o *ODM) error {
		o.fileOID = oid
		return nil
	}
}

// WithFileType selects Transactional or Snapshot.
func WithFileType(ft FileType) Option {
	return func(o *ODM) error {
		return o.SetFileType(ft)
	}
}

// WithODMVersion sets the schema version, validated against the
// supported allow-list.
func WithODMVersion(version string) Option {
	return func(o *ODM) error {
		return o.SetODMVersion(version)
	}
}

// WithGranularity sets the Granularity attribute.
func WithGranularity(g GranularityType) Option {
	return func(o *ODM) error {
		return o.SetGranularity(g)
	}
}

// WithSourceSystem names the system that generated the file.
func WithSourceSystem(name string) Option {
	return func(o *ODM) error {
		o.sourceSystem = name
		return nil
	}
}

// WithSourceSystemVersion records the generating system's version.
func WithSourceSystemVersion(version string) Option {
	return func(o *ODM) error {
		o.sourceSystemVersion = version
		return nil
	}
}

// WithAsOfDateTime sets the data's effective snapshot time.
func WithAsOfDateTime(dt DateTime) Option {
	return func(o *ODM) error {
		return o.SetAsOfDateTime(dt)
	}
}

// New creates a document root for the given originator. FileOID
// defaults to a fresh UUID, CreationDateTime to the current UTC time,
// FileType to Transactional and ODMVersion to "1.3".
func New(originator string, opts ...Option) (*ODM, error) {
	o := &ODM{
		originator:       originator,
		creationDateTime: nowISO8601(),
		fileOID:          uuid.New().String(),
		fileType:         FileTypeTransactional,
		odmVersion:       "1.3",
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// SetODMVersion validates version against the supported allow-list
// before mutating.
func (o *ODM) SetODMVersion(version string) error {
	if !slices.Contains(supportedODMVersions, version) {
		return fmt.Errorf("%w: no such supported ODMVersion %q", ErrInvalidConfiguration, version)
	}
	o.odmVersion = version
	return nil
}

// SetFileType rejects anything outside the two schema values.
func (o *ODM) SetFileType(ft FileType) error {
	if !ft.valid() {
		return fmt.Errorf("%w: FileType must be %q or %q, got %q",
			ErrInvalidConfiguration, FileTypeTransactional, FileTypeSnapshot, ft)
	}
	o.fileType = ft
	return nil
}

// SetGranularity rejects values outside the GranularityType set.
func (o *ODM) SetGranularity(g GranularityType) error {
	if !g.valid() {
		return fmt.Errorf("%w: %q is not a GranularityType", ErrTypeMismatch, g)
	}
	o.granularity = g
	return nil
}

// SetAsOfDateTime stores dt, rendered later in its canonical ISO-8601
// form. The zero DateTime is rejected so the attribute can never be
// set from a value that was not built from a date or date-time.
func (o *ODM) SetAsOfDateTime(dt DateTime) error {
	if !dt.valid {
		return fmt.Errorf("%w: AsOfDateTime requires a date or date-time value", ErrInvalidConfiguration)
	}
	o.asOf = dt
	return nil
}

// FileOID returns the document's unique file identifier, fixed at
// construction.
func (o *ODM) FileOID() string { return o.fileOID }

// ODMVersion returns the current schema version.
func (o *ODM) ODMVersion() string { return o.odmVersion }

// FileType returns the document's file type.
func (o *ODM) FileType() FileType { return o.fileType }

// Granularity returns the granularity classification, empty if unset.
func (o *ODM) Granularity() GranularityType { return o.granularity }

// AsOfDateTime returns the canonical text form of the as-of timestamp,
// empty if unset.
func (o *ODM) AsOfDateTime() string { return o.asOf.ISO8601() }

// CreationDateTime returns the creation timestamp text.
func (o *ODM) CreationDateTime() string { return o.creationDateTime }

// Attach adds a child to the document root. ClinicalData may be
// attached any number of times and renders in attachment order; Study
// and AdminData may each be attached once, and a second attachment is
// rejected rather than silently replacing the first.
func (o *ODM) Attach(child any) error {
	switch c := child.(type) {
	case *ClinicalData:
		o.clinicalData = append(o.clinicalData, c)
	case *Study:
		if o.study != nil {
			return fmt.Errorf("%w: ODM already contains a Study", ErrInvalidConfiguration)
		}
		o.study = c
	case *AdminData:
		if o.adminData != nil {
			return fmt.Errorf("%w: ODM already contains an AdminData", ErrInvalidConfiguration)
		}
		o.adminData = c
	default:
		return fmt.Errorf("%w: ODM can only receive ClinicalData, Study or AdminData, got %T",
			ErrTypeMismatch, child)
	}
	return nil
}

// Build renders the root element and its children into b.
func (o *ODM) Build(b *Builder) {
	attrs := []Attr{
		{"ODMVersion", o.odmVersion},
		{"FileType", string(o.fileType)},
		{"CreationDateTime", o.creationDateTime},
		{"Originator", o.originator},
		{"FileOID", o.fileOID},
		{"xmlns", odmNamespace},
	}
	if o.granularity != "" {
		attrs = append(attrs, Attr{"Granularity", string(o.granularity)})
	}
	if o.sourceSystem != "" {
		attrs = append(attrs, Attr{"SourceSystem", o.sourceSystem})
	}
	if o.sourceSystemVersion != "" {
		attrs = append(attrs, Attr{"SourceSystemVersion", o.sourceSystemVersion})
	}
	attrs = append(attrs, Attr{"xmlns:mdsol", mdsolNamespace})
	if o.description != "" {
		attrs = append(attrs, Attr{"Description", o.description})
	}
	if o.asOf.valid {
		attrs = append(attrs, Attr{"AsOfDateTime", o.asOf.ISO8601()})
	}

	b.Start("ODM", attrs...)
	if o.study != nil {
		o.study.Build(b)
	}
	for _, cd := range o.clinicalData {
		cd.Build(b)
	}
	if o.adminData != nil {
		o.adminData.Build(b)
	}
	b.End()
}

// String renders the whole document as indented XML with the
// declaration header. Rendering is side-effect free and byte-stable
// across calls.
func (o *ODM) String() string {
	return Render(o)
}
