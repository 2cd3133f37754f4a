package cmd

import (
	"bytes"

	"github.com/df07/go-scanline-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the built-in scenes followed by the scene files found in --dir.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	response, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	logger.Noticef("available scenes\n%s", sceneTable(response))
	return nil
}

func sceneTable(response scene.ScenesResponse) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Group", "Description"})
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			table.Append([]string{info.ID, info.DisplayName, group.Name, info.Description})
		}
	}

	table.Render()
	return buf.String()
}
