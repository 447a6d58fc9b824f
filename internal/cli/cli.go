// Package cli defines the command-line surface of ib.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ib/internal/app"
	"ib/internal/config"
	"ib/internal/ui"
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var assignee, template string

	cmd := &cobra.Command{
		Use:   "ib",
		Short: "Select an assigned GitHub issue and create a branch for it",
		Long: `ib lists your assigned open GitHub issues, lets you pick one with
fuzzy search, and creates (or switches to) a branch named after it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if template == "" {
				template = cfg.BranchTemplate
			}
			return runWorkflow(app.Options{
				Assignee:  assignee,
				Template:  template,
				MaxIssues: cfg.MaxIssues,
			})
		},
	}

	cmd.Flags().StringVarP(&assignee, "assignee", "a", "@me", "Issue assignee")
	cmd.Flags().StringVarP(&template, "template", "t", "", `Branch name template (e.g. "fix/{number}-{title}")`)

	cmd.AddCommand(initCmd())

	return cmd
}

// runWorkflow drives the interactive program and prints the terminal
// message once the final screen has been torn down.
func runWorkflow(opts app.Options) error {
	model := app.New(app.NewCLIBackend(), opts)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(app.Model)
	if !ok {
		return nil
	}

	switch m.Phase() {
	case app.PhaseDone:
		branchName, alreadyExisted := m.Result()
		fmt.Println(ui.RenderSuccess(branchName, alreadyExisted))
	case app.PhaseError:
		fmt.Fprintln(os.Stderr, ui.RenderError(m.ErrMessage()))
		os.Exit(1)
	default:
		// User canceled; exit silently.
	}
	return nil
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, path, err := config.Init()
			if err != nil {
				return err
			}
			if created {
				fmt.Printf("%s Created config: %s\n", ui.SymbolSuccess, path)
			} else {
				fmt.Printf("Config already exists: %s\n", path)
			}
			return nil
		},
	}
}
