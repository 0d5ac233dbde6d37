// Package rws is a client for the Medidata Rave Web Services API. It
// sends typed requests over HTTP and returns the raw response bodies;
// ODM documents to post are built with the odm package.
package rws

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Request describes a single RWS call: the HTTP method, the URL path
// below the RaveWebServices root, and whether basic auth is required.
type Request interface {
	Method() string
	URLPath() string
	RequiresAuth() bool
}

// BodyProvider is implemented by requests that send a document.
type BodyProvider interface {
	Body() (contentType string, body []byte)
}

// makeURL joins already-escaped path parts, appending the querystring
// when present. url.Values encodes keys in sorted order, which keeps
// generated URLs stable.
func makeURL(parts []string, query url.Values) string {
	path := strings.Join(parts, "/")
	if len(query) > 0 {
		return path + "?" + query.Encode()
	}
	return path
}

// studyNameAndEnvironment renders the "Project(Env)" study naming
// convention, guarding against an environment already folded into the
// project name.
func studyNameAndEnvironment(projectName, environment string) (string, error) {
	if strings.Contains(projectName, "(") {
		return "", fmt.Errorf("environment included in study name, ( detected in %q", projectName)
	}
	if strings.ContainsAny(environment, "()") {
		return "", fmt.Errorf("environment should not include parenthesis, e.g. %q not %q", "Dev", "(Dev)")
	}
	if environment == "" {
		return projectName, nil
	}
	return fmt.Sprintf("%s(%s)", projectName, environment), nil
}

// VersionRequest returns the RWS version string. It is the only
// request that needs no credentials.
type VersionRequest struct{}

func (VersionRequest) Method() string     { return http.MethodGet }
func (VersionRequest) URLPath() string    { return "version" }
func (VersionRequest) RequiresAuth() bool { return false }

// ClinicalStudiesRequest lists the studies the account can see.
type ClinicalStudiesRequest struct{}

func (ClinicalStudiesRequest) Method() string     { return http.MethodGet }
func (ClinicalStudiesRequest) URLPath() string    { return "studies" }
func (ClinicalStudiesRequest) RequiresAuth() bool { return true }

// StudyDraftsRequest lists metadata drafts for a project.
type StudyDraftsRequest struct {
	ProjectName string
}

func (r StudyDraftsRequest) Method() string { return http.MethodGet }
func (r StudyDraftsRequest) URLPath() string {
	return makeURL([]string{"metadata", "studies", url.PathEscape(r.ProjectName), "drafts"}, nil)
}
func (r StudyDraftsRequest) RequiresAuth() bool { return true }

// StudyVersionsRequest lists metadata versions for a project.
type StudyVersionsRequest struct {
	ProjectName string
}

func (r StudyVersionsRequest) Method() string { return http.MethodGet }
func (r StudyVersionsRequest) URLPath() string {
	return makeURL([]string{"metadata", "studies", url.PathEscape(r.ProjectName), "versions"}, nil)
}
func (r StudyVersionsRequest) RequiresAuth() bool { return true }

// StudyVersionRequest fetches the ODM text of one metadata version.
type StudyVersionRequest struct {
	ProjectName string
	OID         string
}

func (r StudyVersionRequest) Method() string { return http.MethodGet }
func (r StudyVersionRequest) URLPath() string {
	return makeURL([]string{"metadata", "studies", url.PathEscape(r.ProjectName), "versions", url.PathEscape(r.OID)}, nil)
}
func (r StudyVersionRequest) RequiresAuth() bool { return true }

var validIncludes = []string{"inactive", "deleted", "inactiveAndDeleted"}

// StudySubjectsRequest lists the subjects of a study.
type StudySubjectsRequest struct {
	studyName      string
	subjectKeyType string
	status         bool
	include        string
	links          bool
}

// SubjectsOption configures a StudySubjectsRequest.
type SubjectsOption func(*StudySubjectsRequest) error

// WithSubjectKeyType selects SubjectName or SubjectUUID keys.
func WithSubjectKeyType(keyType string) SubjectsOption {
	return func(r *StudySubjectsRequest) error {
		if keyType != "SubjectName" && keyType != "SubjectUUID" {
			return fmt.Errorf("SubjectKeyType %s is not a valid value", keyType)
		}
		r.subjectKeyType = keyType
		return nil
	}
}

// WithStatus asks RWS to include subject status in the listing.
func WithStatus() SubjectsOption {
	return func(r *StudySubjectsRequest) error {
		r.status = true
		return nil
	}
}

// WithInclude extends the listing to inactive and/or deleted subjects.
func WithInclude(include string) SubjectsOption {
	return func(r *StudySubjectsRequest) error {
		for _, v := range validIncludes {
			if include == v {
				r.include = include
				return nil
			}
		}
		return fmt.Errorf("if provided, include must be one of %s", strings.Join(validIncludes, ","))
	}
}

// WithLinks asks RWS to include subject deep links.
func WithLinks() SubjectsOption {
	return func(r *StudySubjectsRequest) error {
		r.links = true
		return nil
	}
}

// NewStudySubjectsRequest creates a subject listing request for the
// project and environment, defaulting to SubjectName keys.
func NewStudySubjectsRequest(projectName, environment string, opts ...SubjectsOption) (*StudySubjectsRequest, error) {
	studyName, err := studyNameAndEnvironment(projectName, environment)
	if err != nil {
		return nil, err
	}
	r := &StudySubjectsRequest{studyName: studyName, subjectKeyType: "SubjectName"}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *StudySubjectsRequest) Method() string { return http.MethodGet }

func (r *StudySubjectsRequest) URLPath() string {
	query := url.Values{}
	if r.status {
		query.Set("status", "all")
	}
	if r.include != "" {
		query.Set("include", r.include)
	}
	if r.links {
		query.Set("links", "all")
	}
	if r.subjectKeyType != "SubjectName" {
		query.Set("subjectKeyType", r.subjectKeyType)
	}
	return makeURL([]string{"studies", url.PathEscape(r.studyName), "subjects"}, query)
}

func (r *StudySubjectsRequest) RequiresAuth() bool { return true }

// DatasetType selects the regular or raw view of a dataset.
type DatasetType string

const (
	DatasetRegular DatasetType = "regular"
	DatasetRaw     DatasetType = "raw"
)

// StudyDatasetsRequest fetches the full datasets listing of a study as
// ODM text.
type StudyDatasetsRequest struct {
	studyName   string
	datasetType DatasetType
	formOID     string
	rawSuffix   string
}

// DatasetsOption configures a StudyDatasetsRequest.
type DatasetsOption func(*StudyDatasetsRequest)

// WithFormOID restricts the dataset to a single form.
func WithFormOID(formOID string) DatasetsOption {
	return func(r *StudyDatasetsRequest) {
		r.formOID = formOID
	}
}

// WithRawSuffix asks RWS to suffix raw field names.
func WithRawSuffix(suffix string) DatasetsOption {
	return func(r *StudyDatasetsRequest) {
		r.rawSuffix = suffix
	}
}

// NewStudyDatasetsRequest creates a dataset request for the project
// and environment.
func NewStudyDatasetsRequest(projectName, environment string, datasetType DatasetType, opts ...DatasetsOption) (*StudyDatasetsRequest, error) {
	if datasetType != DatasetRegular && datasetType != DatasetRaw {
		return nil, fmt.Errorf("dataset type not regular or raw: %q", datasetType)
	}
	studyName, err := studyNameAndEnvironment(projectName, environment)
	if err != nil {
		return nil, err
	}
	r := &StudyDatasetsRequest{studyName: studyName, datasetType: datasetType}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *StudyDatasetsRequest) Method() string { return http.MethodGet }

func (r *StudyDatasetsRequest) URLPath() string {
	parts := []string{"studies", url.PathEscape(r.studyName), "datasets", string(r.datasetType)}
	if r.formOID != "" {
		parts = append(parts, url.PathEscape(r.formOID))
	}
	query := url.Values{}
	if r.rawSuffix != "" {
		query.Set("rawsuffix", r.rawSuffix)
	}
	return makeURL(parts, query)
}

func (r *StudyDatasetsRequest) RequiresAuth() bool { return true }

// PostDataRequest posts a rendered ODM clinical data document.
type PostDataRequest struct {
	Document string
}

func NewPostDataRequest(document string) *PostDataRequest {
	return &PostDataRequest{Document: document}
}

func (r *PostDataRequest) Method() string     { return http.MethodPost }
func (r *PostDataRequest) URLPath() string    { return "webservice.aspx?PostODMClinicalData" }
func (r *PostDataRequest) RequiresAuth() bool { return true }

// Body returns the ODM document payload.
func (r *PostDataRequest) Body() (string, []byte) {
	return "text/xml", []byte(r.Document)
}
