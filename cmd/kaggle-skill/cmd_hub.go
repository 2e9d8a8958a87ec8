package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nurfaiz0909/kaggle-skill/internal/config"
	"github.com/nurfaiz0909/kaggle-skill/internal/templates"
)

var (
	hubKind       string
	hubOutputDir  string
	hubPublishMsg string
)

// hubCmd moves resources between the local machine and Kaggle without going
// through the badge flow.
var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Download or publish notebooks and datasets directly",
}

var hubDownloadCmd = &cobra.Command{
	Use:   "download [ref]",
	Short: "Download a notebook or dataset by its owner/slug ref",
	Args:  cobra.ExactArgs(1),
	RunE:  runHubDownload,
}

var hubPublishCmd = &cobra.Command{
	Use:   "publish [dir]",
	Short: "Publish a prepared directory as a notebook or dataset",
	Long: `Publishes a local directory. For notebooks the directory must hold the
code file and a kernel-metadata.json; for datasets the data files and a
dataset-metadata.json. Missing dataset metadata is generated from the
directory name.`,
	Args: cobra.ExactArgs(1),
	RunE: runHubPublish,
}

func init() {
	hubDownloadCmd.Flags().StringVar(&hubKind, "type", "notebook", `What the ref points at: "notebook" or "dataset"`)
	hubDownloadCmd.Flags().StringVarP(&hubOutputDir, "output", "o", ".", "Directory to download into")
	hubPublishCmd.Flags().StringVar(&hubKind, "type", "notebook", `What to publish: "notebook" or "dataset"`)
	hubPublishCmd.Flags().StringVarP(&hubPublishMsg, "message", "m", "update", "Version notes for an existing resource")
	hubCmd.AddCommand(hubDownloadCmd)
	hubCmd.AddCommand(hubPublishCmd)
}

func runHubDownload(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	ref := args[0]

	switch hubKind {
	case "notebook":
		_, err = a.cli.Run(cmd.Context(), "kernels", "pull", ref, "-p", hubOutputDir, "-m")
	case "dataset":
		_, err = a.cli.Run(cmd.Context(), "datasets", "download", ref, "-p", hubOutputDir, "--unzip")
	default:
		return fmt.Errorf("unknown --type %q: want notebook or dataset", hubKind)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Downloaded %s %s to %s\n", hubKind, ref, hubOutputDir)
	return nil
}

func runHubPublish(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	dir := args[0]
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	switch hubKind {
	case "notebook":
		if _, err := os.Stat(dir + "/kernel-metadata.json"); err != nil {
			return fmt.Errorf("%s has no kernel-metadata.json", dir)
		}
		if _, err := a.cli.Run(cmd.Context(), "kernels", "push", "-p", dir); err != nil {
			return err
		}
	case "dataset":
		if _, err := os.Stat(dir + "/dataset-metadata.json"); err != nil {
			// First publish of a bare directory: generate metadata.
			slug := templates.UniqueSlug(config.ResourcePrefix, "hub")
			meta := templates.NewDatasetMetadata(a.creds.Username, slug, templates.TitleFromSlug(slug))
			if _, err := templates.WriteMetadata(dir, "dataset-metadata.json", meta); err != nil {
				return err
			}
			if _, err := a.cli.Run(cmd.Context(), "datasets", "create", "-p", dir, "-u"); err != nil {
				return err
			}
		} else {
			if _, err := a.cli.Run(cmd.Context(), "datasets", "version", "-p", dir, "-m", hubPublishMsg); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown --type %q: want notebook or dataset", hubKind)
	}
	fmt.Printf("Published %s from %s\n", hubKind, dir)
	return nil
}
