package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/bookctl/internal/library"
	"github.com/blackwell-systems/bookctl/internal/tui"
	"github.com/spf13/cobra"
)

func newFavouritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favourites",
		Aliases: []string{"fav"},
		Short:   "List and manage favourite books",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				return runTUI("favourites")
			}
			if err := requireLogin(); err != nil {
				return err
			}
			books, err := gw.Favourites(cmd.Context())
			if err != nil {
				return err
			}
			if len(books) == 0 {
				fmt.Println("No favourites yet.")
				return nil
			}
			printBookTable(books)
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <book-id>",
			Short: "Add a book to favourites",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireLogin(); err != nil {
					return err
				}
				id, err := parseBookID(args[0])
				if err != nil {
					return err
				}
				if _, err := gw.ToggleFavourite(cmd.Context(), id, false); err != nil {
					return err
				}
				ok("Added to favourites")
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <book-id>",
			Short: "Remove a book from favourites",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireLogin(); err != nil {
					return err
				}
				id, err := parseBookID(args[0])
				if err != nil {
					return err
				}
				if _, err := gw.ToggleFavourite(cmd.Context(), id, true); err != nil {
					return err
				}
				ok("Removed from favourites")
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all favourites",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireLogin(); err != nil {
					return err
				}
				message, err := gw.ClearAllFavourites(cmd.Context())
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
		},
	)
	return cmd
}
