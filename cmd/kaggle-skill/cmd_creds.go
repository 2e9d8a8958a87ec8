package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nurfaiz0909/kaggle-skill/internal/kaggle"
	"github.com/nurfaiz0909/kaggle-skill/internal/ui"
)

var credsJSON bool

// credsCmd reports what the credential chain found and where.
var credsCmd = &cobra.Command{
	Use:   "creds",
	Short: "Show which Kaggle credentials were found and where",
	Long: `Walks the credential discovery chain and reports each value's source:
process environment, a .env file in the working directory, or
~/.kaggle/kaggle.json. Secrets are masked to their last four characters.

Exits non-zero when no usable credentials were found.`,
	RunE: runCreds,
}

func init() {
	credsCmd.Flags().BoolVar(&credsJSON, "json", false, "Emit the report as JSON")
}

func runCreds(cmd *cobra.Command, args []string) error {
	creds := kaggle.ResolveCredentials(logger)

	if credsJSON {
		report := struct {
			kaggle.Credentials
			Complete bool `json:"complete"`
		}{creds, creds.Complete()}
		report.Key = kaggle.Mask(report.Key)
		report.APIToken = kaggle.Mask(report.APIToken)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		t := ui.NewTable("Credentials", "Field", "Value", "Source")
		t.AddRow("username", creds.Username, creds.UsernameSource)
		t.AddRow("key", kaggle.Mask(creds.Key), creds.KeySource)
		t.AddRow("api token", kaggle.Mask(creds.APIToken), creds.TokenSource)
		fmt.Print(t.View(ui.DefaultStyles()))

		if creds.Complete() {
			fmt.Println("Credentials are usable.")
		}
	}

	if !creds.Complete() {
		return fmt.Errorf("no usable credentials: set KAGGLE_USERNAME and KAGGLE_KEY, " +
			"KAGGLE_API_TOKEN, or create ~/.kaggle/kaggle.json")
	}
	return nil
}
