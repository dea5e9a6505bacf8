package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Read, write, or delete a book's note",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <book-id>",
			Short: "Print the note for a book",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireLogin(); err != nil {
					return err
				}
				id, err := parseBookID(args[0])
				if err != nil {
					return err
				}
				note, err := gw.Note(cmd.Context(), id)
				if err != nil {
					return err
				}
				if note == "" {
					fmt.Println("No note.")
					return nil
				}
				fmt.Println(note)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <book-id> <text>",
			Short: "Write the note for a book, replacing any existing one",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireLogin(); err != nil {
					return err
				}
				id, err := parseBookID(args[0])
				if err != nil {
					return err
				}
				text := strings.Join(args[1:], " ")
				if _, err := gw.UpsertNote(cmd.Context(), id, text); err != nil {
					return err
				}
				ok("Note saved")
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <book-id>",
			Short: "Delete the note for a book",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireLogin(); err != nil {
					return err
				}
				id, err := parseBookID(args[0])
				if err != nil {
					return err
				}
				if err := gw.DeleteNote(cmd.Context(), id); err != nil {
					return err
				}
				ok("Note deleted")
				return nil
			},
		},
	)
	return cmd
}

func parseBookID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid book ID %q", arg)
	}
	return id, nil
}
