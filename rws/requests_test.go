package rws

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionRequest(t *testing.T) {
	r := VersionRequest{}
	require.Equal(t, http.MethodGet, r.Method())
	require.Equal(t, "version", r.URLPath())
	require.False(t, r.RequiresAuth())
}

func TestClinicalStudiesRequest(t *testing.T) {
	r := ClinicalStudiesRequest{}
	require.Equal(t, "studies", r.URLPath())
	require.True(t, r.RequiresAuth())
}

func TestMetadataRequests(t *testing.T) {
	tests := []struct {
		name     string
		request  Request
		expected string
	}{
		{
			name:     "study drafts",
			request:  StudyDraftsRequest{ProjectName: "Mediflex"},
			expected: "metadata/studies/Mediflex/drafts",
		},
		{
			name:     "study versions",
			request:  StudyVersionsRequest{ProjectName: "Mediflex"},
			expected: "metadata/studies/Mediflex/versions",
		},
		{
			name:     "single version",
			request:  StudyVersionRequest{ProjectName: "Mediflex", OID: "1001"},
			expected: "metadata/studies/Mediflex/versions/1001",
		},
		{
			name:     "project name escaped",
			request:  StudyDraftsRequest{ProjectName: "Medi flex"},
			expected: "metadata/studies/Medi%20flex/drafts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, http.MethodGet, tt.request.Method())
			require.Equal(t, tt.expected, tt.request.URLPath())
			require.True(t, tt.request.RequiresAuth())
		})
	}
}

func TestStudyNameAndEnvironment(t *testing.T) {
	tests := []struct {
		name        string
		project     string
		environment string
		expected    string
		wantErr     bool
	}{
		{name: "project and environment", project: "Mediflex", environment: "Dev", expected: "Mediflex(Dev)"},
		{name: "empty environment", project: "Mediflex", environment: "", expected: "Mediflex"},
		{name: "environment folded into project", project: "Mediflex(Dev)", environment: "", wantErr: true},
		{name: "parenthesised environment", project: "Mediflex", environment: "(Dev)", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := studyNameAndEnvironment(tt.project, tt.environment)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestStudySubjectsRequest(t *testing.T) {
	tests := []struct {
		name     string
		opts     []SubjectsOption
		expected string
	}{
		{
			name:     "defaults",
			opts:     nil,
			expected: "studies/Mediflex(Dev)/subjects",
		},
		{
			name:     "with status",
			opts:     []SubjectsOption{WithStatus()},
			expected: "studies/Mediflex(Dev)/subjects?status=all",
		},
		{
			name:     "with links",
			opts:     []SubjectsOption{WithLinks()},
			expected: "studies/Mediflex(Dev)/subjects?links=all",
		},
		{
			name:     "with include",
			opts:     []SubjectsOption{WithInclude("inactiveAndDeleted")},
			expected: "studies/Mediflex(Dev)/subjects?include=inactiveAndDeleted",
		},
		{
			name:     "uuid key type adds the query param",
			opts:     []SubjectsOption{WithSubjectKeyType("SubjectUUID")},
			expected: "studies/Mediflex(Dev)/subjects?subjectKeyType=SubjectUUID",
		},
		{
			name:     "name key type stays implicit",
			opts:     []SubjectsOption{WithSubjectKeyType("SubjectName")},
			expected: "studies/Mediflex(Dev)/subjects",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewStudySubjectsRequest("Mediflex", "Dev", tt.opts...)
			require.NoError(t, err)
			require.Equal(t, tt.expected, r.URLPath())
		})
	}
}

func TestStudySubjectsRequestValidation(t *testing.T) {
	_, err := NewStudySubjectsRequest("Mediflex", "Dev", WithSubjectKeyType("AnotherType"))
	require.EqualError(t, err, "SubjectKeyType AnotherType is not a valid value")

	_, err = NewStudySubjectsRequest("Mediflex", "Dev", WithInclude("everyone"))
	require.EqualError(t, err, "if provided, include must be one of inactive,deleted,inactiveAndDeleted")

	_, err = NewStudySubjectsRequest("Mediflex(Dev)", "")
	require.Error(t, err)
}

func TestStudyDatasetsRequest(t *testing.T) {
	tests := []struct {
		name        string
		datasetType DatasetType
		opts        []DatasetsOption
		expected    string
	}{
		{
			name:        "regular",
			datasetType: DatasetRegular,
			expected:    "studies/Mediflex(Dev)/datasets/regular",
		},
		{
			name:        "raw",
			datasetType: DatasetRaw,
			expected:    "studies/Mediflex(Dev)/datasets/raw",
		},
		{
			name:        "form scoped",
			datasetType: DatasetRegular,
			opts:        []DatasetsOption{WithFormOID("VITALS")},
			expected:    "studies/Mediflex(Dev)/datasets/regular/VITALS",
		},
		{
			name:        "raw suffix",
			datasetType: DatasetRaw,
			opts:        []DatasetsOption{WithRawSuffix(".RAW")},
			expected:    "studies/Mediflex(Dev)/datasets/raw?rawsuffix=.RAW",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewStudyDatasetsRequest("Mediflex", "Dev", tt.datasetType, tt.opts...)
			require.NoError(t, err)
			require.Equal(t, tt.expected, r.URLPath())
		})
	}
}

func TestStudyDatasetsRequestValidation(t *testing.T) {
	_, err := NewStudyDatasetsRequest("Mediflex", "Dev", DatasetType("both"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "not regular or raw")
}

func TestPostDataRequest(t *testing.T) {
	r := NewPostDataRequest("<ODM />")
	require.Equal(t, http.MethodPost, r.Method())
	require.Equal(t, "webservice.aspx?PostODMClinicalData", r.URLPath())
	require.True(t, r.RequiresAuth())

	contentType, body := r.Body()
	require.Equal(t, "text/xml", contentType)
	require.Equal(t, []byte("<ODM />"), body)
}
