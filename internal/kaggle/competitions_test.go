package kaggle

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleListing = `Warning: Looks like you're using an outdated API Version
ref,deadline,category,reward,teamCount,userHasEntered
https://www.kaggle.com/competitions/titanic,2030-01-01 00:00:00,Getting Started,Knowledge,14000,True
https://www.kaggle.com/competitions/old-contest,2015-06-01 00:00:00,Featured,"$25,000",900,False
https://www.kaggle.com/competitions/summer-hackathon,,Hackathon,Swag,120,False
`

func TestParseCompetitionsCSV(t *testing.T) {
	comps, err := parseCompetitionsCSV(sampleListing)
	require.NoError(t, err)
	require.Len(t, comps, 3)

	titanic := comps[0]
	assert.Equal(t, "titanic", titanic.Slug)
	assert.Equal(t, "Getting Started", titanic.Category)
	assert.Equal(t, 14000, titanic.TeamCount)
	assert.True(t, titanic.Entered)
	assert.True(t, titanic.Active)
	assert.False(t, titanic.IsHackathon)
	assert.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), titanic.Deadline)

	old := comps[1]
	assert.False(t, old.Active)
	assert.Equal(t, "$25,000", old.Reward)

	hack := comps[2]
	assert.True(t, hack.IsHackathon)
	// No deadline means the competition never closes.
	assert.True(t, hack.Active)
}

func TestParseCompetitionsCSVMissingRefColumn(t *testing.T) {
	_, err := parseCompetitionsCSV("deadline,category\n2030-01-01 00:00:00,Featured\n")
	assert.Error(t, err)
}

func TestParseFilesCSV(t *testing.T) {
	files, err := parseFilesCSV("name,size,creationDate\ntrain.csv,60KB,2018-04-09\ntest.csv,28KB,2018-04-09\n")
	require.NoError(t, err)
	want := []CompetitionFile{
		{Name: "train.csv", Size: "60KB"},
		{Name: "test.csv", Size: "28KB"},
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("file manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestSlugFromRef(t *testing.T) {
	assert.Equal(t, "titanic", slugFromRef("https://www.kaggle.com/competitions/titanic"))
	assert.Equal(t, "titanic", slugFromRef("titanic"))
	assert.Equal(t, "titanic", slugFromRef("competitions/titanic/"))
	assert.Equal(t, "", slugFromRef(""))
}
