package phases

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nurfaiz0909/kaggle-skill/internal/config"
	"github.com/nurfaiz0909/kaggle-skill/internal/templates"
)

// phase3Units covers the pipeline badges: resources built from the output
// of an executed notebook rather than from local files.
func phase3Units() []Unit {
	return []Unit{
		{
			Name:     "dataset-from-notebook-output",
			BadgeIDs: []string{"dataset_pipeline_creator"},
			Run: func(ctx context.Context, env *Env) (string, error) {
				return pipelineResource(ctx, env, "dataset")
			},
		},
		{
			Name:     "model-from-notebook-output",
			BadgeIDs: []string{"model_pipeline_creator"},
			Run: func(ctx context.Context, env *Env) (string, error) {
				return pipelineResource(ctx, env, "model")
			},
		},
		{
			Name:     "push-r-script",
			BadgeIDs: []string{"r_markdown_coder"},
			Run: func(ctx context.Context, env *Env) (string, error) {
				return pushKernel(ctx, env, kernelSpec{
					kind:     "r-script",
					file:     "analysis.R",
					content:  templates.RScript,
					language: templates.LanguageR,
					ktype:    templates.KernelScript,
				})
			},
		},
	}
}

// producerNotebook writes a CSV artifact when executed remotely.
const producerNotebook = `{
  "cells": [
    {
      "cell_type": "code",
      "execution_count": null,
      "metadata": {},
      "outputs": [],
      "source": [
        "import csv\n",
        "rows = [(i, i * i) for i in range(1, 51)]\n",
        "with open(\"results.csv\", \"w\", newline=\"\") as f:\n",
        "    w = csv.writer(f)\n",
        "    w.writerow([\"n\", \"square\"])\n",
        "    w.writerows(rows)\n",
        "print(\"wrote\", len(rows), \"rows\")"
      ]
    }
  ],
  "metadata": {
    "kernelspec": {"display_name": "Python 3", "language": "python", "name": "python3"},
    "language_info": {"name": "python", "version": "3.10.12"}
  },
  "nbformat": 4,
  "nbformat_minor": 4
}
`

// pipelineResource pushes a producer notebook, waits for it to finish,
// downloads its output, and publishes the output as a new resource.
func pipelineResource(ctx context.Context, env *Env, kind string) (string, error) {
	ref, err := runProducerNotebook(ctx, env, kind)
	if err != nil {
		return "", err
	}

	outDir, err := env.Cfg.StagingDir("-" + kind + "-output")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(outDir)

	if _, err := env.CLI.Run(ctx, "kernels", "output", ref, "-p", outDir); err != nil {
		return "", fmt.Errorf("download output of %s: %w", ref, err)
	}
	artifact := filepath.Join(outDir, "results.csv")
	if _, err := os.Stat(artifact); err != nil {
		return "", fmt.Errorf("kernel %s produced no results.csv", ref)
	}

	switch kind {
	case "dataset":
		return publishOutputDataset(ctx, env, artifact, ref)
	case "model":
		return publishOutputModel(ctx, env, artifact, ref)
	default:
		return "", fmt.Errorf("unknown pipeline kind %q", kind)
	}
}

// runProducerNotebook pushes the producer and blocks until it completes.
func runProducerNotebook(ctx context.Context, env *Env, kind string) (string, error) {
	dir, err := env.Cfg.StagingDir("-" + kind + "-producer")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	if _, err := templates.WriteFile(dir, "producer.ipynb", producerNotebook); err != nil {
		return "", err
	}
	slug := templates.UniqueSlug(config.ResourcePrefix, kind+"-producer")
	meta := templates.NewKernelMetadata(env.Username, slug, templates.TitleFromSlug(slug),
		"producer.ipynb", templates.LanguagePython, templates.KernelNotebook)
	if _, err := templates.WriteMetadata(dir, "kernel-metadata.json", meta); err != nil {
		return "", err
	}
	if _, err := env.CLI.Run(ctx, "kernels", "push", "-p", dir); err != nil {
		return "", fmt.Errorf("push producer %s: %w", slug, err)
	}

	outcome, err := env.WaitForKernel(ctx, meta.ID)
	if err != nil {
		return "", err
	}
	if outcome != KernelComplete {
		return "", fmt.Errorf("producer %s finished with outcome %s", meta.ID, outcome)
	}
	return meta.ID, nil
}

func publishOutputDataset(ctx context.Context, env *Env, artifact, sourceRef string) (string, error) {
	dir, err := env.Cfg.StagingDir("-pipeline-dataset")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	data, err := os.ReadFile(artifact)
	if err != nil {
		return "", err
	}
	if _, err := templates.WriteFile(dir, "results.csv", string(data)); err != nil {
		return "", err
	}
	slug := templates.UniqueSlug(config.ResourcePrefix, "pipeline-dataset")
	meta := templates.NewDatasetMetadata(env.Username, slug, templates.TitleFromSlug(slug),
		templates.DatasetResource{Path: "results.csv", Description: "generated by " + sourceRef})
	if _, err := templates.WriteMetadata(dir, "dataset-metadata.json", meta); err != nil {
		return "", err
	}
	if _, err := env.CLI.Run(ctx, "datasets", "create", "-p", dir, "-u"); err != nil {
		return "", fmt.Errorf("create pipeline dataset %s: %w", slug, err)
	}
	return "dataset=" + meta.ID + " source=" + sourceRef, nil
}

func publishOutputModel(ctx context.Context, env *Env, artifact, sourceRef string) (string, error) {
	modelDir, err := env.Cfg.StagingDir("-pipeline-model")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(modelDir)

	slug := templates.UniqueSlug(config.ResourcePrefix, "pipeline-model")
	meta := templates.NewModelMetadata(env.Username, slug, templates.TitleFromSlug(slug))
	if _, err := templates.WriteMetadata(modelDir, "model-metadata.json", meta); err != nil {
		return "", err
	}
	if _, err := env.CLI.Run(ctx, "models", "create", "-p", modelDir); err != nil {
		return "", fmt.Errorf("create pipeline model %s: %w", slug, err)
	}

	instDir, err := env.Cfg.StagingDir("-pipeline-instance")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(instDir)

	data, err := os.ReadFile(artifact)
	if err != nil {
		return "", err
	}
	if _, err := templates.WriteFile(instDir, "results.csv", string(data)); err != nil {
		return "", err
	}
	instMeta := templates.NewModelInstanceMetadata(env.Username, slug, "default", "other")
	if _, err := templates.WriteMetadata(instDir, "model-instance-metadata.json", instMeta); err != nil {
		return "", err
	}
	if _, err := env.CLI.Run(ctx, "models", "instances", "create", "-p", instDir); err != nil {
		return "", fmt.Errorf("create pipeline model instance: %w", err)
	}
	return "model=" + env.Username + "/" + slug + " source=" + sourceRef, nil
}
