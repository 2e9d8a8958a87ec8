package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nurfaiz0909/kaggle-skill/internal/ui"
)

var competitionsGroup string

// competitionsCmd browses the competition listing through the kaggle CLI.
var competitionsCmd = &cobra.Command{
	Use:   "competitions",
	Short: "Browse Kaggle competitions",
}

var competitionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List competitions",
	RunE:  runCompetitionsList,
}

var competitionsDetailsCmd = &cobra.Command{
	Use:   "details [slug]",
	Short: "Show one competition's listing entry and file manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompetitionsDetails,
}

func init() {
	competitionsListCmd.Flags().StringVar(&competitionsGroup, "group", "", `Category filter, e.g. "gettingStarted"`)
	competitionsCmd.AddCommand(competitionsListCmd)
	competitionsCmd.AddCommand(competitionsDetailsCmd)
}

func runCompetitionsList(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	comps, err := a.cli.ListCompetitions(cmd.Context(), competitionsGroup)
	if err != nil {
		return err
	}
	if len(comps) == 0 {
		fmt.Println("No competitions found.")
		return nil
	}

	t := ui.NewTable("Competitions", "Slug", "Category", "Deadline", "Teams", "Entered", "State")
	for _, c := range comps {
		deadline := "none"
		if !c.Deadline.IsZero() {
			deadline = c.Deadline.Format("2006-01-02")
		}
		state := "closed"
		if c.Active {
			state = "active"
		}
		entered := ""
		if c.Entered {
			entered = "yes"
		}
		t.AddRow(c.Slug, c.Category, deadline, strconv.Itoa(c.TeamCount), entered, state)
	}
	fmt.Print(t.View(a.styles))
	return nil
}

func runCompetitionsDetails(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	details, err := a.cli.CompetitionDetails(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	c := details.Competition
	fmt.Printf("Competition: %s\n", c.Slug)
	if c.Category != "" {
		fmt.Printf("Category:    %s\n", c.Category)
	}
	if !c.Deadline.IsZero() {
		fmt.Printf("Deadline:    %s\n", c.Deadline.Format("2006-01-02 15:04"))
	}
	if c.Reward != "" {
		fmt.Printf("Reward:      %s\n", c.Reward)
	}
	fmt.Println()

	if len(details.Files) == 0 {
		fmt.Println("No files visible; you may need to accept the rules first.")
		return nil
	}
	t := ui.NewTable("Files", "Name", "Size")
	for _, f := range details.Files {
		t.AddRow(f.Name, f.Size)
	}
	fmt.Print(t.View(a.styles))
	return nil
}
