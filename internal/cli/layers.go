package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tburrows/impasto/internal/palette"
)

// LayerInfo is the output form of one catalogue entry.
type LayerInfo struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// NewLayersCommand creates the layers command.
func NewLayersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layers",
		Short: "List the built-in layer catalogue",
		Long: `List the built-in layer catalogue in index order.

SEQUENCE-style cells apply their member layers in this order, regardless
of draw order.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := palette.Default()
			infos := make([]LayerInfo, 0, cat.Len())
			for _, l := range cat.Layers() {
				infos = append(infos, LayerInfo{Index: l.Index, Name: l.Name})
			}

			if rootOpts.Format == "json" {
				formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return formatter.Success(infos)
			}

			w := cmd.OutOrStdout()
			for _, info := range infos {
				fmt.Fprintf(w, "%2d  %s\n", info.Index, info.Name)
			}
			return nil
		},
	}
	return cmd
}
