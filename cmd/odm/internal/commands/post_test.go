package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPostConfigYAML(t *testing.T) {
	path := writeConfig(t, "submit.yaml", `
originator: test system
project: Mediflex
environment: Dev
site: MDSOL
subject: SUBJECT001
event: SCREENING
form: VITALS
items:
  - oid: VITALS.WEIGHT
    value: "82"
  - oid: VITALS.HEIGHT
    value: "175"
`)

	config, err := loadPostConfig(path)
	require.NoError(t, err)
	require.Equal(t, "Mediflex", config.Project)
	require.Equal(t, "SUBJECT001", config.Subject)
	require.Len(t, config.Items, 2)
	require.Equal(t, "VITALS.WEIGHT", config.Items[0].OID)
	require.Equal(t, "82", config.Items[0].Value)
}

func TestLoadPostConfigJSON(t *testing.T) {
	path := writeConfig(t, "submit.json", `{
  "originator": "test system",
  "project": "Mediflex",
  "environment": "Dev",
  "site": "MDSOL",
  "subject": "SUBJECT001"
}`)

	config, err := loadPostConfig(path)
	require.NoError(t, err)
	require.Equal(t, "test system", config.Originator)
	require.Equal(t, "MDSOL", config.Site)
}

func TestLoadPostConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing string
	}{
		{
			name:    "missing originator",
			content: "project: Mediflex\nsubject: SUBJECT001\n",
			missing: "originator",
		},
		{
			name:    "missing project",
			content: "originator: test system\nsubject: SUBJECT001\n",
			missing: "project",
		},
		{
			name:    "missing subject",
			content: "originator: test system\nproject: Mediflex\n",
			missing: "subject",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "submit.yaml", tt.content)
			_, err := loadPostConfig(path)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestBuildDocument(t *testing.T) {
	config := &PostConfig{
		Originator:  "test system",
		Project:     "Mediflex",
		Environment: "Dev",
		Site:        "MDSOL",
		Subject:     "SUBJECT001",
		Event:       "SCREENING",
		Form:        "VITALS",
		Items: []PostItem{
			{OID: "VITALS.WEIGHT", Value: "82"},
		},
	}

	doc, err := buildDocument(config)
	require.NoError(t, err)
	require.Contains(t, doc, `<?xml version="1.0" encoding="utf-8" ?>`)
	require.Contains(t, doc, `StudyOID="Mediflex(Dev)"`)
	require.Contains(t, doc, `SubjectKey="SUBJECT001"`)
	require.Contains(t, doc, `<SiteRef LocationOID="MDSOL" />`)
	require.Contains(t, doc, `StudyEventOID="SCREENING"`)
	require.Contains(t, doc, `FormOID="VITALS"`)
	require.Contains(t, doc, `<ItemData ItemOID="VITALS.WEIGHT" Value="82" />`)
}
