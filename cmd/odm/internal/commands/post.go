package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/clinkit/rwsgo/odm"
	"github.com/clinkit/rwsgo/rws"
)

// PostConfig describes a clinical data submission loaded from a
// YAML or JSON file.
type PostConfig struct {
	Originator  string     `json:"originator" yaml:"originator"`
	Project     string     `json:"project" yaml:"project"`
	Environment string     `json:"environment" yaml:"environment"`
	Site        string     `json:"site" yaml:"site"`
	Subject     string     `json:"subject" yaml:"subject"`
	Event       string     `json:"event" yaml:"event"`
	Form        string     `json:"form" yaml:"form"`
	Items       []PostItem `json:"items" yaml:"items"`
}

// PostItem is a single field value in a submission.
type PostItem struct {
	OID   string `json:"oid" yaml:"oid"`
	Value string `json:"value" yaml:"value"`
}

type PostCmd struct {
	connectionFlags

	Config string `arg:"" help:"Path to a YAML or JSON submission config" type:"existingfile"`
	Gzip   bool   `help:"Compress the request body"`
	Print  bool   `help:"Print the document instead of sending it"`
}

func (p *PostCmd) Run(ctx context.Context, globals *Globals) error {
	config, err := loadPostConfig(p.Config)
	if err != nil {
		return err
	}

	doc, err := buildDocument(config)
	if err != nil {
		return fmt.Errorf("failed to build document: %w", err)
	}

	if p.Print {
		fmt.Print(doc)
		return nil
	}

	var extra []rws.Option
	if p.Gzip {
		extra = append(extra, rws.WithGzipRequests())
	}
	conn := p.connection(globals, extra...)

	resp, err := conn.SendRequest(ctx, rws.NewPostDataRequest(doc))
	if err != nil {
		return fmt.Errorf("failed to post clinical data: %w", err)
	}

	fmt.Println(resp.Body)
	return nil
}

func loadPostConfig(path string) (*PostConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config PostConfig

	// Determine file format by extension
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	switch {
	case config.Originator == "":
		return nil, fmt.Errorf("config is missing originator")
	case config.Project == "":
		return nil, fmt.Errorf("config is missing project")
	case config.Subject == "":
		return nil, fmt.Errorf("config is missing subject")
	}

	return &config, nil
}

func buildDocument(config *PostConfig) (string, error) {
	doc, err := odm.New(config.Originator)
	if err != nil {
		return "", err
	}

	clinical := odm.NewClinicalData(config.Project, config.Environment)
	subject := odm.NewSubjectData(config.Site, config.Subject)

	if config.Event != "" {
		event := odm.NewStudyEventData(config.Event)
		if config.Form != "" {
			form := odm.NewFormData(config.Form)
			group := odm.NewItemGroupData()
			for _, item := range config.Items {
				if err := group.Attach(odm.NewItemData(item.OID, item.Value)); err != nil {
					return "", err
				}
			}
			if err := form.Attach(group); err != nil {
				return "", err
			}
			if err := event.Attach(form); err != nil {
				return "", err
			}
		}
		if err := subject.Attach(event); err != nil {
			return "", err
		}
	}

	if err := clinical.Attach(subject); err != nil {
		return "", err
	}
	if err := doc.Attach(clinical); err != nil {
		return "", err
	}

	return doc.String(), nil
}
