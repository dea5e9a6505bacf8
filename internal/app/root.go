package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/bookctl/internal/api"
	"github.com/blackwell-systems/bookctl/internal/config"
	"github.com/blackwell-systems/bookctl/internal/library"
	"github.com/blackwell-systems/bookctl/internal/session"
	"github.com/blackwell-systems/bookctl/internal/tui"
	"github.com/blackwell-systems/bookctl/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	sess   *session.Session
	client *api.Client
	gw     *library.Gateway

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
)

var rootCmd = &cobra.Command{
	Use:   "bookctl",
	Short: "Browse and manage a self-hosted book library",
	Long: `bookctl is a terminal client for a self-hosted book-library server.

It searches the library, shows book details with notes and favourites,
and opens books in your reader. Run 'bookctl' with no arguments to
launch the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tui.ShouldUseTUI(cmd) {
			return runTUI("hub")
		}
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/bookctl/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		if flagConfig != "" {
			cfg, err = config.LoadFrom(flagConfig)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		sess, err = session.Load()
		if err != nil {
			return fmt.Errorf("loading session: %w", err)
		}

		client = api.New(cfg.Server.URL, sess.Token, cfg.Server.Timeout())
		gw = library.NewGateway(client)
		gw.Confirm = util.ConfirmStdin
		return nil
	}

	rootCmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newRegisterCmd(),
		newWhoamiCmd(),
		newAccountCmd(),
		newSearchCmd(),
		newBrowseCmd(),
		newInfoCmd(),
		newNoteCmd(),
		newOpenCmd(),
		newFavouritesCmd(),
		newRecentsCmd(),
		newScanCmd(),
		newVersionCmd(),
	)
}

// requireLogin stops commands that need a session before the server
// would answer 401 with a clearer message.
func requireLogin() error {
	if !sess.LoggedIn() {
		return fmt.Errorf("not signed in — run 'bookctl login' first")
	}
	return nil
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
