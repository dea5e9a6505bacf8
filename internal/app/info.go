package app

import (
	"fmt"

	"github.com/blackwell-systems/bookctl/internal/metadata"
	"github.com/blackwell-systems/bookctl/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <title>",
		Short: "Show a book's details, favourite status, and summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			book, err := findBook(cmd, args[0])
			if err != nil {
				return err
			}

			header("%s", bookLabel(book))
			if book.Year > 0 {
				fmt.Printf("Year:      %d\n", book.Year)
			}
			fmt.Printf("ID:        %d\n", book.ID)
			if book.BookLink != "" {
				fmt.Printf("File:      %s\n", gw.ReadLink(book))
			}

			// Sections degrade independently, same as the detail view.
			if fav, err := gw.IsFavourite(cmd.Context(), book.ID); err == nil {
				if fav {
					fmt.Printf("Favourite: %s\n", color.GreenString("yes"))
				} else {
					fmt.Println("Favourite: no")
				}
			}

			resolver := metadata.NewResolver(gw, metadata.NewVolumesClient(), nil)
			defer resolver.Close()
			fmt.Println()
			fmt.Println(resolver.Resolve(cmd.Context(), book.ID, book.Title))

			if book.Author != "" {
				if others, err := gw.ByAuthor(cmd.Context(), book.Author); err == nil {
					rest := make([]string, 0, len(others))
					for _, o := range others {
						if o.ID != book.ID {
							rest = append(rest, o.Title)
						}
					}
					if len(rest) > 0 {
						fmt.Println()
						header("More by %s", book.Author)
						for _, t := range rest {
							fmt.Println("  " + t)
						}
					}
				}
			}
			return nil
		},
	}
}

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <title>",
		Short: "Open a book in the browser and record the read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			book, err := findBook(cmd, args[0])
			if err != nil {
				return err
			}
			link := gw.ReadLink(book)
			if link == "" {
				return fmt.Errorf("no file linked for %q", book.Title)
			}

			// Best-effort; opening proceeds even if the server misses it.
			if err := gw.AddRecent(cmd.Context(), book.ID); err != nil {
				warn("could not record the read: %v", err)
			}

			if err := util.OpenInBrowser(link); err != nil {
				return err
			}
			ok("Opened %s", bookLabel(book))
			return nil
		},
	}
}
