package commands

import (
	"context"
	"fmt"

	"github.com/clinkit/rwsgo/rws"
)

type StudiesCmd struct {
	connectionFlags
}

func (s *StudiesCmd) Run(ctx context.Context, globals *Globals) error {
	conn := s.connection(globals)

	resp, err := conn.SendRequest(ctx, rws.ClinicalStudiesRequest{})
	if err != nil {
		return fmt.Errorf("failed to list studies: %w", err)
	}

	fmt.Println(resp.Body)
	return nil
}
