package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/clinkit/rwsgo/cmd/odm/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Version  commands.VersionCmd  `cmd:"" help:"Show the RWS version"`
		Studies  commands.StudiesCmd  `cmd:"" help:"List clinical studies"`
		Subjects commands.SubjectsCmd `cmd:"" help:"List subjects for a study"`
		Datasets commands.DatasetsCmd `cmd:"" help:"Fetch a study dataset"`
		Post     commands.PostCmd     `cmd:"" help:"Build an ODM document and post it"`
		Debug    bool                 `help:"Enable debug mode."`
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
