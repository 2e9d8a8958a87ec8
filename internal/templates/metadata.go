package templates

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// KernelLanguage selects the notebook runtime.
type KernelLanguage string

const (
	LanguagePython KernelLanguage = "python"
	LanguageR      KernelLanguage = "r"
)

// KernelType distinguishes notebooks from plain scripts.
type KernelType string

const (
	KernelNotebook KernelType = "notebook"
	KernelScript   KernelType = "script"
)

// KernelMetadata mirrors the kernel-metadata.json schema the kaggle CLI
// reads when pushing a notebook or script.
type KernelMetadata struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	CodeFile       string         `json:"code_file"`
	Language       KernelLanguage `json:"language"`
	KernelType     KernelType     `json:"kernel_type"`
	IsPrivate      bool           `json:"is_private"`
	EnableGPU      bool           `json:"enable_gpu"`
	EnableInternet bool           `json:"enable_internet"`
	Keywords       []string       `json:"keywords"`
	DatasetSources []string       `json:"dataset_sources"`
	KernelSources  []string       `json:"kernel_sources"`
	ModelSources   []string       `json:"model_sources"`
	CompetitionSrc []string       `json:"competition_sources"`
}

// NewKernelMetadata fills the schema with the defaults every pushed kernel
// shares: public, no GPU, no extra sources.
func NewKernelMetadata(username, slug, title, codeFile string, lang KernelLanguage, kind KernelType) KernelMetadata {
	return KernelMetadata{
		ID:             username + "/" + slug,
		Title:          title,
		CodeFile:       codeFile,
		Language:       lang,
		KernelType:     kind,
		IsPrivate:      false,
		Keywords:       []string{},
		DatasetSources: []string{},
		KernelSources:  []string{},
		ModelSources:   []string{},
		CompetitionSrc: []string{},
	}
}

// DatasetLicense is the fixed license applied to generated datasets.
const DatasetLicense = "CC0-1.0"

// DatasetMetadata mirrors dataset-metadata.json.
type DatasetMetadata struct {
	Title     string              `json:"title"`
	ID        string              `json:"id"`
	Licenses  []DatasetLicenseRef `json:"licenses"`
	Keywords  []string            `json:"keywords,omitempty"`
	Resources []DatasetResource   `json:"resources,omitempty"`
}

type DatasetLicenseRef struct {
	Name string `json:"name"`
}

type DatasetResource struct {
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

// NewDatasetMetadata builds the metadata for one generated dataset.
func NewDatasetMetadata(username, slug, title string, files ...DatasetResource) DatasetMetadata {
	return DatasetMetadata{
		Title:     title,
		ID:        username + "/" + slug,
		Licenses:  []DatasetLicenseRef{{Name: DatasetLicense}},
		Resources: files,
	}
}

// ModelMetadata mirrors model-metadata.json.
type ModelMetadata struct {
	OwnerSlug   string `json:"ownerSlug"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Subtitle    string `json:"subtitle"`
	IsPrivate   bool   `json:"isPrivate"`
	Description string `json:"description"`
}

// ModelInstanceMetadata mirrors model-instance-metadata.json for one
// framework variation of a model.
type ModelInstanceMetadata struct {
	OwnerSlug    string   `json:"ownerSlug"`
	ModelSlug    string   `json:"modelSlug"`
	InstanceSlug string   `json:"instanceSlug"`
	Framework    string   `json:"framework"`
	Overview     string   `json:"overview"`
	Usage        string   `json:"usage"`
	LicenseName  string   `json:"licenseName"`
	TrainingData []string `json:"trainingData"`
}

// NewModelMetadata builds the metadata for one generated model.
func NewModelMetadata(username, slug, title string) ModelMetadata {
	return ModelMetadata{
		OwnerSlug:   username,
		Title:       title,
		Slug:        slug,
		Subtitle:    "A tiny demonstration model",
		IsPrivate:   false,
		Description: "Synthetic model published to exercise the models API. " + DatasetReadmeIntro,
	}
}

// DatasetReadmeIntro is the first line of the dataset readme, reused as the
// shared provenance note on generated resources.
const DatasetReadmeIntro = "The content is generated synthetically and carries a CC0 license."

// NewModelInstanceMetadata builds the metadata for one model variation.
func NewModelInstanceMetadata(username, modelSlug, instanceSlug, framework string) ModelInstanceMetadata {
	return ModelInstanceMetadata{
		OwnerSlug:    username,
		ModelSlug:    modelSlug,
		InstanceSlug: instanceSlug,
		Framework:    framework,
		Overview:     "Demonstration weights for the " + framework + " runtime.",
		Usage:        "Load the bundled coefficients file and apply it to normalized inputs.",
		LicenseName:  "Apache 2.0",
		TrainingData: []string{"synthetic"},
	}
}

// WriteMetadata marshals any metadata struct into its JSON file inside a
// staging directory.
func WriteMetadata(dir, filename string, meta any) (string, error) {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", filename, err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return path, nil
}
