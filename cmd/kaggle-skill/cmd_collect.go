package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nurfaiz0909/kaggle-skill/internal/kaggle"
	"github.com/nurfaiz0909/kaggle-skill/internal/orchestrator"
	"github.com/nurfaiz0909/kaggle-skill/internal/phases"
	"github.com/nurfaiz0909/kaggle-skill/internal/ui"
)

var (
	collectPhase  string
	collectDryRun bool
	collectResume bool
)

// collectCmd runs the badge-earning phases.
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Attempt every automatable badge that is not yet earned",
	Long: `Runs the badge-earning units phase by phase.

Badges already earned, currently in flight, or skipped are left alone, so
collect is safe to re-run; it only picks up pending and failed work. A badge
that fails to land is recorded and retried on the next run. Failed badges do
not make the command exit non-zero; only invalid input or missing
credentials do.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectPhase, "phase", "all", `Phase to run (1-5 or "all")`)
	collectCmd.Flags().BoolVar(&collectDryRun, "dry-run", false, "Show what would be attempted without doing anything")
	collectCmd.Flags().BoolVar(&collectResume, "resume", true, "Resume from the ledger (kept for compatibility; always on)")
}

func runCollect(cmd *cobra.Command, args []string) error {
	phaseList, err := orchestrator.ResolvePhases(collectPhase)
	if err != nil {
		return err
	}

	a, err := buildApp()
	if err != nil {
		return err
	}

	env := a.phaseEnv()
	runner := phases.NewRunner(a.reg, a.tracker, env, logger)
	orch := orchestrator.New(runner, a.tracker, a.creds.Complete, logger)

	if collectDryRun {
		return printPlan(orch, phaseList)
	}

	if !a.creds.Complete() {
		return orchestrator.ErrNoCredentials
	}
	// The CLI reads kaggle.json; make sure it exists when credentials came
	// from the environment.
	if a.creds.Username != "" && a.creds.Key != "" {
		if err := kaggle.EnsureConfigFile(a.creds, logger); err != nil {
			logger.Warn("could not write kaggle.json", zap.Error(err))
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Warn("shutdown signal received, finishing current unit")
		cancel()
	}()

	all, err := orch.Collect(ctx, phaseList)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(ui.PhaseSummaryTable(a.tracker, a.styles))
	fmt.Print(ui.SummaryLine(a.tracker))

	totals := orchestrator.Totals(all)
	if totals.Failed > 0 {
		fmt.Printf("%d badge(s) failed this run; re-run collect to retry them.\n", totals.Failed)
	}
	return nil
}

func printPlan(orch *orchestrator.Orchestrator, phaseList []int) error {
	plan := orch.Plan(phaseList)
	if len(plan) == 0 {
		fmt.Println("Nothing to do: every automatable badge in scope is settled.")
		return nil
	}
	fmt.Printf("Would attempt %d unit(s):\n", len(plan))
	for _, p := range plan {
		fmt.Printf("  phase %d  %-28s -> %s\n", p.Phase, p.Name, strings.Join(p.BadgeIDs, ", "))
	}
	return nil
}
