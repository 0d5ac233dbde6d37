package commands

import (
	"context"
	"fmt"

	"github.com/clinkit/rwsgo/rws"
)

type DatasetsCmd struct {
	connectionFlags

	Project     string `arg:"" help:"Project name"`
	Environment string `help:"Study environment" default:"Prod"`
	Type        string `help:"Dataset type: regular or raw" default:"regular"`
	RawSuffix   string `help:"Suffix for raw field names"`
	FormOID     string `help:"Restrict the dataset to a single form"`
}

func (d *DatasetsCmd) Run(ctx context.Context, globals *Globals) error {
	conn := d.connection(globals)

	var opts []rws.DatasetsOption
	if d.RawSuffix != "" {
		opts = append(opts, rws.WithRawSuffix(d.RawSuffix))
	}
	if d.FormOID != "" {
		opts = append(opts, rws.WithFormOID(d.FormOID))
	}

	req, err := rws.NewStudyDatasetsRequest(d.Project, d.Environment, rws.DatasetType(d.Type), opts...)
	if err != nil {
		return fmt.Errorf("failed to build datasets request: %w", err)
	}

	resp, err := conn.SendRequest(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to fetch datasets: %w", err)
	}

	fmt.Println(resp.Body)
	return nil
}
