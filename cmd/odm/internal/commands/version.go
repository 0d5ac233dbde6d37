package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinkit/rwsgo/rws"
)

type VersionCmd struct {
	connectionFlags
}

func (v *VersionCmd) Run(ctx context.Context, globals *Globals) error {
	conn := v.connection(globals)

	resp, err := conn.SendRequest(ctx, rws.VersionRequest{})
	if err != nil {
		return fmt.Errorf("failed to fetch version: %w", err)
	}

	fmt.Println(strings.TrimSpace(resp.Body))
	return nil
}
