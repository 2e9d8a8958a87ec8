package kaggle

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Competition is one row of the competitions listing.
type Competition struct {
	Ref         string    `json:"ref"`
	Slug        string    `json:"slug"`
	Deadline    time.Time `json:"deadline,omitzero"`
	Category    string    `json:"category"`
	Reward      string    `json:"reward"`
	TeamCount   int       `json:"team_count"`
	Entered     bool      `json:"entered"`
	Active      bool      `json:"active"`
	IsHackathon bool      `json:"is_hackathon"`
}

// CompetitionFile is one downloadable file of a competition.
type CompetitionFile struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// CompetitionDetails bundles the listing row with its file manifest.
type CompetitionDetails struct {
	Competition Competition       `json:"competition"`
	Files       []CompetitionFile `json:"files"`
}

// deadlineFormats covers the timestamp shapes the CLI emits.
var deadlineFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ListCompetitions fetches the competition listing for a category group.
// group may be empty for the default listing or a CLI category such as
// "gettingStarted".
func (r *Runner) ListCompetitions(ctx context.Context, group string) ([]Competition, error) {
	args := []string{"competitions", "list", "--csv"}
	if group != "" {
		args = append(args, "--category", group)
	}
	res, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parseCompetitionsCSV(res.Stdout)
}

// CompetitionDetails fetches the listing row for one competition plus its
// file manifest.
func (r *Runner) CompetitionDetails(ctx context.Context, slug string) (CompetitionDetails, error) {
	comps, err := r.ListCompetitions(ctx, "")
	if err != nil {
		return CompetitionDetails{}, err
	}
	var details CompetitionDetails
	found := false
	for _, c := range comps {
		if c.Slug == slug {
			details.Competition = c
			found = true
			break
		}
	}
	if !found {
		// Not on the first page of the listing; still try the files call,
		// which works for any competition the account can see.
		details.Competition = Competition{Ref: slug, Slug: slug}
	}

	res, err := r.Run(ctx, "competitions", "files", slug, "--csv")
	if err != nil {
		return CompetitionDetails{}, err
	}
	files, err := parseFilesCSV(res.Stdout)
	if err != nil {
		return CompetitionDetails{}, err
	}
	details.Files = files
	return details, nil
}

// parseCompetitionsCSV turns the CLI's CSV listing into rows. Column order is
// resolved from the header so minor CLI reshuffles do not break parsing.
func parseCompetitionsCSV(raw string) ([]Competition, error) {
	records, header, err := readCSV(raw)
	if err != nil {
		return nil, err
	}
	col := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(h, name) {
				return i
			}
		}
		return -1
	}
	refIdx := col("ref")
	if refIdx < 0 {
		return nil, fmt.Errorf("competitions listing has no ref column: %v", header)
	}
	deadlineIdx := col("deadline")
	categoryIdx := col("category")
	rewardIdx := col("reward")
	teamIdx := col("teamCount")
	enteredIdx := col("userHasEntered")

	cell := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	now := time.Now()
	comps := make([]Competition, 0, len(records))
	for _, row := range records {
		c := Competition{
			Ref:      cell(row, refIdx),
			Category: cell(row, categoryIdx),
			Reward:   cell(row, rewardIdx),
		}
		c.Slug = slugFromRef(c.Ref)
		if c.Slug == "" {
			continue
		}
		if v := cell(row, deadlineIdx); v != "" {
			for _, layout := range deadlineFormats {
				if ts, err := time.Parse(layout, v); err == nil {
					c.Deadline = ts
					break
				}
			}
		}
		if v := cell(row, teamIdx); v != "" {
			c.TeamCount, _ = strconv.Atoi(v)
		}
		c.Entered = strings.EqualFold(cell(row, enteredIdx), "true")

		// Hackathons carry no leaderboard deadline semantics; everything
		// else is active while its deadline is in the future.
		c.IsHackathon = strings.EqualFold(c.Category, "hackathon") ||
			strings.Contains(strings.ToLower(c.Slug), "hackathon")
		c.Active = c.Deadline.IsZero() || c.Deadline.After(now)
		comps = append(comps, c)
	}
	return comps, nil
}

func parseFilesCSV(raw string) ([]CompetitionFile, error) {
	records, header, err := readCSV(raw)
	if err != nil {
		return nil, err
	}
	nameIdx, sizeIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(h) {
		case "name":
			nameIdx = i
		case "size", "totalbytes":
			sizeIdx = i
		}
	}
	files := make([]CompetitionFile, 0, len(records))
	for _, row := range records {
		if nameIdx < 0 || nameIdx >= len(row) {
			continue
		}
		f := CompetitionFile{Name: strings.TrimSpace(row[nameIdx])}
		if sizeIdx >= 0 && sizeIdx < len(row) {
			f.Size = strings.TrimSpace(row[sizeIdx])
		}
		if f.Name != "" {
			files = append(files, f)
		}
	}
	return files, nil
}

// readCSV parses CLI output, skipping any warning lines printed before the
// header row.
func readCSV(raw string) (records [][]string, header []string, err error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	start := 0
	for i, line := range lines {
		if strings.Contains(line, ",") {
			start = i
			break
		}
	}
	reader := csv.NewReader(strings.NewReader(strings.Join(lines[start:], "\n")))
	reader.FieldsPerRecord = -1
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv output: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[1:], all[0], nil
}

// slugFromRef strips the URL prefix the CLI sometimes emits in the ref
// column, leaving the bare competition slug.
func slugFromRef(ref string) string {
	ref = strings.TrimSpace(ref)
	ref = strings.TrimSuffix(ref, "/")
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
