package phases

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nurfaiz0909/kaggle-skill/internal/config"
	"github.com/nurfaiz0909/kaggle-skill/internal/templates"
)

// phase1Units covers the creator badges: notebooks, scripts, datasets, and
// models, all through the CLI.
func phase1Units() []Unit {
	return []Unit{
		{
			Name:     "push-python-notebook",
			BadgeIDs: []string{"python_coder", "api_notebook_creator", "code_uploader", "code_tagger"},
			Run: func(ctx context.Context, env *Env) (string, error) {
				return pushKernel(ctx, env, kernelSpec{
					kind:     "notebook",
					file:     "notebook.ipynb",
					content:  templates.PythonNotebook,
					language: templates.LanguagePython,
					ktype:    templates.KernelNotebook,
					keywords: []string{"beginner", "tutorial"},
				})
			},
		},
		{
			Name:     "push-r-notebook",
			BadgeIDs: []string{"r_coder"},
			Run: func(ctx context.Context, env *Env) (string, error) {
				return pushKernel(ctx, env, kernelSpec{
					kind:     "r-notebook",
					file:     "notebook.ipynb",
					content:  templates.RNotebook,
					language: templates.LanguageR,
					ktype:    templates.KernelNotebook,
				})
			},
		},
		{
			Name:     "push-utility-script",
			BadgeIDs: []string{"utility_scripter"},
			Run: func(ctx context.Context, env *Env) (string, error) {
				return pushKernel(ctx, env, kernelSpec{
					kind:     "utility",
					file:     "helpers.py",
					content:  templates.UtilityScript,
					language: templates.LanguagePython,
					ktype:    templates.KernelScript,
				})
			},
		},
		{
			Name:     "fork-public-notebook",
			BadgeIDs: []string{"code_forker"},
			Run:      forkNotebook,
		},
		{
			Name:     "create-dataset",
			BadgeIDs: []string{"dataset_creator", "api_dataset_creator", "dataset_tagger", "dataset_documenter"},
			Run:      createDataset,
		},
		{
			Name:     "create-model",
			BadgeIDs: []string{"model_creator", "api_model_creator", "model_tagger", "model_documenter"},
			Run:      createModel,
		},
		{
			Name:     "create-model-variation",
			BadgeIDs: []string{"model_variation_creator"},
			Run:      createModelVariation,
		},
	}
}

type kernelSpec struct {
	kind     string
	file     string
	content  string
	language templates.KernelLanguage
	ktype    templates.KernelType
	keywords []string
}

// pushKernel stages one kernel and pushes it. Returns the pushed ref.
func pushKernel(ctx context.Context, env *Env, spec kernelSpec) (string, error) {
	dir, err := env.Cfg.StagingDir("-" + spec.kind)
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	if _, err := templates.WriteFile(dir, spec.file, spec.content); err != nil {
		return "", err
	}
	slug := templates.UniqueSlug(config.ResourcePrefix, spec.kind)
	meta := templates.NewKernelMetadata(
		env.Username, slug, templates.TitleFromSlug(slug), spec.file, spec.language, spec.ktype)
	if len(spec.keywords) > 0 {
		meta.Keywords = spec.keywords
	}
	if _, err := templates.WriteMetadata(dir, "kernel-metadata.json", meta); err != nil {
		return "", err
	}

	if _, err := env.CLI.Run(ctx, "kernels", "push", "-p", dir); err != nil {
		return "", fmt.Errorf("push kernel %s: %w", slug, err)
	}
	return "kernel=" + meta.ID, nil
}

// forkCandidates are well-known public notebooks to pull and re-push. Tried
// in order; all of them failing means forking is unavailable to this
// account and the badge is skipped rather than failed.
var forkCandidates = []string{
	"alexisbcook/titanic-tutorial",
	"dansbecker/your-first-machine-learning-model",
}

func forkNotebook(ctx context.Context, env *Env) (string, error) {
	dir, err := env.Cfg.StagingDir("-fork")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	var pulled string
	for _, ref := range forkCandidates {
		res, err := env.CLI.TryRun(ctx, "kernels", "pull", ref, "-p", dir, "-m")
		if err != nil {
			return "", err
		}
		if res.ExitCode == 0 {
			pulled = ref
			break
		}
	}
	if pulled == "" {
		return "", Skipf("no public notebook could be pulled")
	}

	slug := templates.UniqueSlug(config.ResourcePrefix, "fork")
	if err := retargetKernelMetadata(dir, env.Username, slug); err != nil {
		return "", err
	}
	if _, err := env.CLI.Run(ctx, "kernels", "push", "-p", dir); err != nil {
		return "", fmt.Errorf("push fork of %s: %w", pulled, err)
	}
	return "forked=" + pulled, nil
}

// retargetKernelMetadata rewrites a pulled kernel's metadata so the push
// creates a new kernel under our account instead of updating the source.
func retargetKernelMetadata(dir, username, slug string) error {
	path := filepath.Join(dir, "kernel-metadata.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read pulled metadata: %w", err)
	}
	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		return fmt.Errorf("parse pulled metadata: %w", err)
	}
	meta["id"] = username + "/" + slug
	meta["title"] = templates.TitleFromSlug(slug)
	meta["is_private"] = false
	out, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), 0o644)
}

func createDataset(ctx context.Context, env *Env) (string, error) {
	dir, err := env.Cfg.StagingDir("-dataset")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	if _, err := templates.WriteScoresCSV(dir); err != nil {
		return "", err
	}
	if _, err := templates.WriteFile(dir, "README.md", templates.DatasetReadme); err != nil {
		return "", err
	}
	slug := templates.UniqueSlug(config.ResourcePrefix, "dataset")
	meta := templates.NewDatasetMetadata(env.Username, slug, templates.TitleFromSlug(slug),
		templates.DatasetResource{Path: "scores.csv", Description: "synthetic exam scores"})
	meta.Keywords = []string{"beginner", "education"}
	if _, err := templates.WriteMetadata(dir, "dataset-metadata.json", meta); err != nil {
		return "", err
	}

	if _, err := env.CLI.Run(ctx, "datasets", "create", "-p", dir, "-u"); err != nil {
		return "", fmt.Errorf("create dataset %s: %w", slug, err)
	}
	return "dataset=" + meta.ID, nil
}

func createModel(ctx context.Context, env *Env) (string, error) {
	dir, err := env.Cfg.StagingDir("-model")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	slug := templates.UniqueSlug(config.ResourcePrefix, "model")
	meta := templates.NewModelMetadata(env.Username, slug, templates.TitleFromSlug(slug))
	if _, err := templates.WriteMetadata(dir, "model-metadata.json", meta); err != nil {
		return "", err
	}
	if _, err := env.CLI.Run(ctx, "models", "create", "-p", dir); err != nil {
		return "", fmt.Errorf("create model %s: %w", slug, err)
	}

	// The model needs at least one instance to be complete.
	if err := pushModelInstance(ctx, env, slug, "default", "other"); err != nil {
		return "", err
	}
	return "model=" + env.Username + "/" + slug, nil
}

// lastModelSlugFile remembers the created model so the variation unit can
// attach a second instance to it within the same run.
const lastModelSlugFile = ".last-model-slug"

func pushModelInstance(ctx context.Context, env *Env, modelSlug, instanceSlug, framework string) error {
	dir, err := env.Cfg.StagingDir("-instance")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	if _, err := templates.WriteModelWeights(dir); err != nil {
		return err
	}
	meta := templates.NewModelInstanceMetadata(env.Username, modelSlug, instanceSlug, framework)
	if _, err := templates.WriteMetadata(dir, "model-instance-metadata.json", meta); err != nil {
		return err
	}
	if _, err := env.CLI.Run(ctx, "models", "instances", "create", "-p", dir); err != nil {
		return fmt.Errorf("create model instance %s/%s: %w", modelSlug, instanceSlug, err)
	}

	markerDir := env.Cfg.TempDir
	if err := os.MkdirAll(markerDir, 0o755); err == nil {
		_ = os.WriteFile(filepath.Join(markerDir, lastModelSlugFile), []byte(modelSlug), 0o644)
	}
	return nil
}

func createModelVariation(ctx context.Context, env *Env) (string, error) {
	data, err := os.ReadFile(filepath.Join(env.Cfg.TempDir, lastModelSlugFile))
	if err != nil {
		return "", Skipf("no model from this run to attach a variation to")
	}
	modelSlug := string(data)
	if err := pushModelInstance(ctx, env, modelSlug, "variant", "jax"); err != nil {
		return "", err
	}
	return "model=" + env.Username + "/" + modelSlug + " instance=variant", nil
}
