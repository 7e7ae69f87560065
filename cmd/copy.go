package cmd

import (
	"github.com/grovetools/file-preview/logging"
	"github.com/grovetools/file-preview/pkg/clipboard"
	"github.com/spf13/cobra"
)

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "Copy the latest file's path to the clipboard",
		Long: `Hands the latest file's path to the clipboard command. Does nothing when there
is no current notification or the file no longer exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			copied, err := newReader(a.cfg).Copy(cmd.Context(), clipboard.New(a.cfg.ClipboardCommand))
			if err != nil {
				return err
			}
			logging.NewLogger("copy").WithField("copied", copied).Debug("Copy finished")
			return nil
		},
	}
}
