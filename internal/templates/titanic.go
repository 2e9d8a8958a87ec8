package templates

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Titanic test-set shape. The public test split covers passengers 892
// through 1309, 418 rows.
const (
	TitanicFirstID = 892
	TitanicLastID  = 1309
	TitanicRows    = TitanicLastID - TitanicFirstID + 1
)

// WriteTitanicSubmission generates a valid all-zeros submission file for the
// Titanic competition. The prediction quality is irrelevant; any well-formed
// file scores and counts as a submission.
func WriteTitanicSubmission(dir string) (string, error) {
	path := filepath.Join(dir, "submission.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create submission: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"PassengerId", "Survived"}); err != nil {
		return "", err
	}
	for id := TitanicFirstID; id <= TitanicLastID; id++ {
		if err := w.Write([]string{strconv.Itoa(id), "0"}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write submission rows: %w", err)
	}
	return path, nil
}

// WriteScoresCSV generates the small synthetic dataset published for the
// dataset badges.
func WriteScoresCSV(dir string) (string, error) {
	path := filepath.Join(dir, "scores.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create scores csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "score", "grade"}); err != nil {
		return "", err
	}
	scores := []int{72, 85, 90, 66, 88, 94, 79, 58, 81, 97}
	for i, s := range scores {
		grade := "C"
		switch {
		case s >= 90:
			grade = "A"
		case s >= 80:
			grade = "B"
		}
		if err := w.Write([]string{strconv.Itoa(i + 1), strconv.Itoa(s), grade}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write score rows: %w", err)
	}
	return path, nil
}

// WriteModelWeights generates the placeholder weights file bundled with
// published model instances.
func WriteModelWeights(dir string) (string, error) {
	content := "format: linear-v1\nbias: 0.125\ncoefficients: [0.8, -0.2, 0.45]\n"
	return WriteFile(dir, "weights.yaml", content)
}
