package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/bookctl/internal/library"
	"github.com/blackwell-systems/bookctl/internal/tui"
	"github.com/spf13/cobra"
)

func newRecentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recents",
		Short: "List recently-read books",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				return runTUI("recents")
			}
			if err := requireLogin(); err != nil {
				return err
			}
			books, err := gw.Recents(cmd.Context())
			if err != nil {
				return err
			}
			if len(books) == 0 {
				fmt.Println("Nothing read recently.")
				return nil
			}
			printBookTable(books)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the recently-read list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			message, err := gw.ClearAllRecents(cmd.Context())
			if errors.Is(err, library.ErrAborted) {
				warn("Aborted")
				return nil
			}
			if err != nil {
				return err
			}
			ok("%s", message)
			return nil
		},
	})
	return cmd
}

func newScanCmd() *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Rescan the server's book folder for new files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			message, err := gw.Scan(cmd.Context(), folder)
			if err != nil {
				return err
			}
			if message == "" {
				message = "Scan complete"
			}
			ok("%s", message)
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Folder to scan (default: the server's configured folder)")
	return cmd
}
