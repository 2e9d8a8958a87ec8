package phases

import (
	"context"
	"fmt"
)

// Well-known public pages used for the community actions. These are stable
// evergreen resources, not accounts we control.
const (
	upvoteNotebookURL = "https://www.kaggle.com/code/alexisbcook/titanic-tutorial"
	upvoteDatasetURL  = "https://www.kaggle.com/datasets/yasserh/titanic-dataset"
	discussionForum   = "https://www.kaggle.com/discussions/getting-started"
	followTopicURL    = "https://www.kaggle.com/discussions/getting-started/308031"
	followUserURL     = "https://www.kaggle.com/alexisbcook"
	profileEditURL    = "https://www.kaggle.com/settings/profile"
)

// phase4Units covers the community badges, which have no API endpoint and
// run through the browser driver. Without a connected, signed-in browser
// every unit here is skipped, not failed.
func phase4Units() []Unit {
	return []Unit{
		{
			Name:     "complete-profile",
			BadgeIDs: []string{"profile_completer"},
			Run: func(ctx context.Context, env *Env) (string, error) {
				if err := browserReady(ctx, env); err != nil {
					return "", err
				}
				err := env.Browser.CompleteProfile(profileEditURL, BrowserProfile{
					Occupation:   "Data enthusiast",
					Organization: "Independent",
					Location:     "Remote",
					Bio:          "Learning the platform one competition at a time.",
				})
				if err != nil {
					return "", err
				}
				return "profile completed", nil
			},
		},
		{
			Name:     "upvote-notebook",
			BadgeIDs: []string{"notebook_upvoter"},
			Run: func(ctx context.Context, env *Env) (string, error) {
				if err := browserReady(ctx, env); err != nil {
					return "", err
				}
				if err := env.Browser.Upvote(upvoteNotebookURL); err != nil {
					return "", err
				}
				return "upvoted=" + upvoteNotebookURL, nil
			},
		},
		{
			Name:     "upvote-dataset",
			BadgeIDs: []string{"dataset_upvoter"},
			Run: func(ctx context.Context, env *Env) (string, error) {
				if err := browserReady(ctx, env); err != nil {
					return "", err
				}
				if err := env.Browser.Upvote(upvoteDatasetURL); err != nil {
					return "", err
				}
				return "upvoted=" + upvoteDatasetURL, nil
			},
		},
		{
			Name:     "post-discussion",
			BadgeIDs: []string{"discussion_poster"},
			Run: func(ctx context.Context, env *Env) (string, error) {
				if err := browserReady(ctx, env); err != nil {
					return "", err
				}
				err := env.Browser.PostDiscussion(discussionForum,
					"Notes from my first week on the platform",
					"Sharing a few things that helped me get started: the Titanic "+
						"competition walkthrough, the public notebook gallery, and the "+
						"dataset documentation guide. What helped you most when you joined?")
				if err != nil {
					return "", err
				}
				return "posted in getting-started", nil
			},
		},
		{
			Name:     "follow-topic",
			BadgeIDs: []string{"topic_follower"},
			Run: func(ctx context.Context, env *Env) (string, error) {
				if err := browserReady(ctx, env); err != nil {
					return "", err
				}
				if err := env.Browser.Follow(followTopicURL); err != nil {
					return "", err
				}
				return "following=" + followTopicURL, nil
			},
		},
		{
			Name:     "follow-user",
			BadgeIDs: []string{"user_follower"},
			Run: func(ctx context.Context, env *Env) (string, error) {
				if err := browserReady(ctx, env); err != nil {
					return "", err
				}
				if err := env.Browser.Follow(followUserURL); err != nil {
					return "", err
				}
				return "following=" + followUserURL, nil
			},
		},
	}
}

// browserReady connects the driver or skips the unit when no browser is
// configured.
func browserReady(ctx context.Context, env *Env) error {
	if env.Browser == nil {
		return Skipf("no browser configured; set browser.debugger_url to a signed-in Chrome")
	}
	if err := env.Browser.Connect(ctx); err != nil {
		return fmt.Errorf("connect browser: %w", err)
	}
	return nil
}
