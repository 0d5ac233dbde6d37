package rws

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ODM Adapter dataset requests. These page through study audit and
// configuration datasets exposed as ODM documents.

// AuditRecordsRequest pages through the clinical audit records
// dataset.
type AuditRecordsRequest struct {
	StartID int
	PerPage int

	studyName string
}

// NewAuditRecordsRequest creates an audit records request starting at
// record 1 with 100 records per page.
func NewAuditRecordsRequest(projectName, environment string) (*AuditRecordsRequest, error) {
	studyName, err := studyNameAndEnvironment(projectName, environment)
	if err != nil {
		return nil, err
	}
	return &AuditRecordsRequest{studyName: studyName, StartID: 1, PerPage: 100}, nil
}

func (r *AuditRecordsRequest) Method() string { return http.MethodGet }

func (r *AuditRecordsRequest) URLPath() string {
	query := url.Values{}
	query.Set("studyoid", r.studyName)
	query.Set("startid", strconv.Itoa(r.StartID))
	query.Set("per_page", strconv.Itoa(r.PerPage))
	return makeURL([]string{"datasets", "ClinicalAuditRecords.odm"}, query)
}

func (r *AuditRecordsRequest) RequiresAuth() bool { return true }

// VersionFoldersRequest identifies all folders in use in a study.
type VersionFoldersRequest struct {
	studyName string
}

func NewVersionFoldersRequest(projectName, environment string) (*VersionFoldersRequest, error) {
	studyName, err := studyNameAndEnvironment(projectName, environment)
	if err != nil {
		return nil, err
	}
	return &VersionFoldersRequest{studyName: studyName}, nil
}

func (r *VersionFoldersRequest) Method() string { return http.MethodGet }

func (r *VersionFoldersRequest) URLPath() string {
	query := url.Values{}
	query.Set("studyoid", r.studyName)
	return makeURL([]string{"datasets", "VersionFolders.odm"}, query)
}

func (r *VersionFoldersRequest) RequiresAuth() bool { return true }

// SitesMetadataRequest lists all sites along with their study
// versions, optionally filtered to one study. Project and environment
// must be given together or not at all.
type SitesMetadataRequest struct {
	studyName string
}

func NewSitesMetadataRequest(projectName, environment string) (*SitesMetadataRequest, error) {
	if projectName != "" && environment == "" {
		return nil, fmt.Errorf("environment cannot be empty if project name is set")
	}
	if environment != "" && projectName == "" {
		return nil, fmt.Errorf("project name cannot be empty if environment is set")
	}
	if projectName == "" {
		return &SitesMetadataRequest{}, nil
	}
	studyName, err := studyNameAndEnvironment(projectName, environment)
	if err != nil {
		return nil, err
	}
	return &SitesMetadataRequest{studyName: studyName}, nil
}

func (r *SitesMetadataRequest) Method() string { return http.MethodGet }

func (r *SitesMetadataRequest) URLPath() string {
	query := url.Values{}
	if r.studyName != "" {
		query.Set("studyoid", r.studyName)
	}
	return makeURL([]string{"datasets", "Sites.odm"}, query)
}

func (r *SitesMetadataRequest) RequiresAuth() bool { return true }

// UsersRequest lists the users of a study, optionally filtered by
// location.
type UsersRequest struct {
	LocationOID string

	studyName string
}

func NewUsersRequest(projectName, environment string) (*UsersRequest, error) {
	studyName, err := studyNameAndEnvironment(projectName, environment)
	if err != nil {
		return nil, err
	}
	return &UsersRequest{studyName: studyName}, nil
}

func (r *UsersRequest) Method() string { return http.MethodGet }

func (r *UsersRequest) URLPath() string {
	query := url.Values{}
	query.Set("studyoid", r.studyName)
	if r.LocationOID != "" {
		query.Set("locationoid", r.LocationOID)
	}
	return makeURL([]string{"datasets", "Users.odm"}, query)
}

func (r *UsersRequest) RequiresAuth() bool { return true }

// SignatureDefinitionsRequest returns signature definitions for all
// versions of a study. The dataset is keyed by project, not by
// study-and-environment.
type SignatureDefinitionsRequest struct {
	ProjectName string
}

func (r SignatureDefinitionsRequest) Method() string { return http.MethodGet }

func (r SignatureDefinitionsRequest) URLPath() string {
	query := url.Values{}
	query.Set("studyid", r.ProjectName)
	return makeURL([]string{"datasets", "Signatures.odm"}, query)
}

func (r SignatureDefinitionsRequest) RequiresAuth() bool { return true }
