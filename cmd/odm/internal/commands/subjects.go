package commands

import (
	"context"
	"fmt"

	"github.com/clinkit/rwsgo/rws"
)

type SubjectsCmd struct {
	connectionFlags

	Project        string `arg:"" help:"Project name"`
	Environment    string `help:"Study environment" default:"Prod"`
	Status         bool   `help:"Include subject status"`
	Include        string `help:"Include inactive, deleted or inactiveAndDeleted subjects"`
	SubjectKeyType string `help:"Subject key type" default:"SubjectName"`
	Links          bool   `help:"Include subject deep links"`
}

func (s *SubjectsCmd) Run(ctx context.Context, globals *Globals) error {
	conn := s.connection(globals)

	opts := []rws.SubjectsOption{rws.WithSubjectKeyType(s.SubjectKeyType)}
	if s.Status {
		opts = append(opts, rws.WithStatus())
	}
	if s.Include != "" {
		opts = append(opts, rws.WithInclude(s.Include))
	}
	if s.Links {
		opts = append(opts, rws.WithLinks())
	}

	req, err := rws.NewStudySubjectsRequest(s.Project, s.Environment, opts...)
	if err != nil {
		return fmt.Errorf("failed to build subjects request: %w", err)
	}

	resp, err := conn.SendRequest(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to list subjects: %w", err)
	}

	fmt.Println(resp.Body)
	return nil
}
