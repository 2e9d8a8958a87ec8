package registry

// Default returns the compiled-in badge catalog.
//
// Phases order badges by increasing automation difficulty:
//
//	1: instant API calls (kernels/datasets/models pushed via the CLI)
//	2: competition entry (Titanic submission)
//	3: pipeline badges that need a kernel to execute on Kaggle's backend
//	4: browser-driven interactions (upvotes, profile, discussions)
//	5: streak and longevity badges
//
// Non-automatable badges stay in the catalog so the status table shows the
// whole picture, but every actionable-badge query filters them out.
func Default() *Registry {
	return MustNew(defaultCatalog)
}

var defaultCatalog = []BadgeDefinition{
	// Phase 1: instant API
	{ID: "python_coder", Name: "Python Coder", Category: CategoryCoder, Phase: 1, Automatable: true,
		Description: "Publish a Python notebook"},
	{ID: "r_coder", Name: "R Coder", Category: CategoryCoder, Phase: 1, Automatable: true,
		Description: "Publish an R notebook"},
	{ID: "api_notebook_creator", Name: "API Notebook Creator", Category: CategoryCoder, Phase: 1, Automatable: true,
		Description: "Create a notebook through the public API"},
	{ID: "utility_scripter", Name: "Utility Scripter", Category: CategoryCoder, Phase: 1, Automatable: true,
		Description: "Publish a utility script"},
	{ID: "code_uploader", Name: "Code Uploader", Category: CategoryCoder, Phase: 1, Automatable: true,
		Description: "Upload code from your local machine"},
	{ID: "code_forker", Name: "Code Forker", Category: CategoryCoder, Phase: 1, Automatable: true,
		Description: "Fork a public notebook and republish it"},
	{ID: "code_tagger", Name: "Code Tagger", Category: CategoryCoder, Phase: 1, Automatable: true,
		Description: "Publish a notebook with topic tags"},
	{ID: "dataset_creator", Name: "Dataset Creator", Category: CategoryDataset, Phase: 1, Automatable: true,
		Description: "Create a dataset"},
	{ID: "api_dataset_creator", Name: "API Dataset Creator", Category: CategoryDataset, Phase: 1, Automatable: true,
		Description: "Create a dataset through the public API"},
	{ID: "dataset_tagger", Name: "Dataset Tagger", Category: CategoryDataset, Phase: 1, Automatable: true,
		Description: "Publish a dataset with topic tags"},
	{ID: "dataset_documenter", Name: "Dataset Documenter", Category: CategoryDataset, Phase: 1, Automatable: true,
		Description: "Publish a dataset with a 10/10 usability score"},
	{ID: "model_creator", Name: "Model Creator", Category: CategoryModel, Phase: 1, Automatable: true,
		Description: "Create a model"},
	{ID: "api_model_creator", Name: "API Model Creator", Category: CategoryModel, Phase: 1, Automatable: true,
		Description: "Create a model through the public API"},
	{ID: "model_variation_creator", Name: "Model Variation Creator", Category: CategoryModel, Phase: 1, Automatable: true,
		Description: "Add a framework variation to a model"},
	{ID: "model_tagger", Name: "Model Tagger", Category: CategoryModel, Phase: 1, Automatable: true,
		Description: "Publish a model with topic tags"},
	{ID: "model_documenter", Name: "Model Documenter", Category: CategoryModel, Phase: 1, Automatable: true,
		Description: "Publish a model with full documentation"},

	// Phase 2: competition entry
	{ID: "competition_submitter", Name: "Competition Submitter", Category: CategoryCompetition, Phase: 2, Automatable: true,
		Description: "Make a submission to any competition"},
	{ID: "csv_submitter", Name: "CSV Submitter", Category: CategoryCompetition, Phase: 2, Automatable: true,
		Description: "Submit a CSV prediction file"},
	{ID: "api_submitter", Name: "API Submitter", Category: CategoryCompetition, Phase: 2, Automatable: true,
		Description: "Submit to a competition through the public API"},
	{ID: "getting_started_competitor", Name: "Getting Started Competitor", Category: CategoryCompetition, Phase: 2, Automatable: true,
		Description: "Enter a Getting Started competition"},
	{ID: "playground_competitor", Name: "Playground Competitor", Category: CategoryCompetition, Phase: 2, Automatable: false,
		Description: "Enter an active Playground series competition"},
	{ID: "team_player", Name: "Team Player", Category: CategoryCompetition, Phase: 2, Automatable: false,
		Description: "Merge with another user into a competition team"},
	{ID: "leaderboard_climber", Name: "Leaderboard Climber", Category: CategoryCompetition, Phase: 2, Automatable: false,
		Description: "Improve your public leaderboard position"},
	{ID: "competition_medal_bronze", Name: "Competition Bronze", Category: CategoryCompetition, Phase: 2, Automatable: false,
		Description: "Earn a bronze competition medal"},
	{ID: "competition_medal_silver", Name: "Competition Silver", Category: CategoryCompetition, Phase: 2, Automatable: false,
		Description: "Earn a silver competition medal"},
	{ID: "competition_medal_gold", Name: "Competition Gold", Category: CategoryCompetition, Phase: 2, Automatable: false,
		Description: "Earn a gold competition medal"},

	// Phase 3: execution pipelines
	{ID: "dataset_pipeline_creator", Name: "Dataset Pipeline Creator", Category: CategoryDataset, Phase: 3, Automatable: true,
		Description: "Create a dataset from a notebook's output"},
	{ID: "model_pipeline_creator", Name: "Model Pipeline Creator", Category: CategoryModel, Phase: 3, Automatable: true,
		Description: "Create a model from a notebook's output"},
	{ID: "r_markdown_coder", Name: "R Markdown Coder", Category: CategoryCoder, Phase: 3, Automatable: true,
		Description: "Execute R code on the Kaggle kernel backend"},
	{ID: "gpu_user", Name: "GPU User", Category: CategoryCoder, Phase: 3, Automatable: false,
		Description: "Run a notebook with a GPU accelerator"},
	{ID: "scheduled_runner", Name: "Scheduled Runner", Category: CategoryCoder, Phase: 3, Automatable: false,
		Description: "Schedule a notebook to run on a recurring basis"},

	// Phase 4: browser interactions
	{ID: "profile_completer", Name: "Profile Completer", Category: CategoryCommunity, Phase: 4, Automatable: true,
		Description: "Fill in your bio, occupation, and location"},
	{ID: "notebook_upvoter", Name: "Notebook Upvoter", Category: CategoryCommunity, Phase: 4, Automatable: true,
		Description: "Upvote a public notebook"},
	{ID: "dataset_upvoter", Name: "Dataset Upvoter", Category: CategoryCommunity, Phase: 4, Automatable: true,
		Description: "Upvote a public dataset"},
	{ID: "discussion_poster", Name: "Discussion Poster", Category: CategoryCommunity, Phase: 4, Automatable: true,
		Description: "Start a discussion topic"},
	{ID: "topic_follower", Name: "Topic Follower", Category: CategoryCommunity, Phase: 4, Automatable: true,
		Description: "Follow a discussion topic"},
	{ID: "user_follower", Name: "User Follower", Category: CategoryCommunity, Phase: 4, Automatable: true,
		Description: "Follow another Kaggle user"},
	{ID: "notebook_commenter", Name: "Notebook Commenter", Category: CategoryCommunity, Phase: 4, Automatable: false,
		Description: "Leave a substantive comment on a notebook"},
	{ID: "forum_helper", Name: "Forum Helper", Category: CategoryCommunity, Phase: 4, Automatable: false,
		Description: "Have an answer accepted in the forums"},
	{ID: "upvote_magnet", Name: "Upvote Magnet", Category: CategoryCommunity, Phase: 4, Automatable: false,
		Description: "Receive 10 upvotes on your own content"},
	{ID: "follower_ten", Name: "Rising Profile", Category: CategoryCommunity, Phase: 4, Automatable: false,
		Description: "Reach 10 followers"},
	{ID: "discussion_medal_bronze", Name: "Discussion Bronze", Category: CategoryCommunity, Phase: 4, Automatable: false,
		Description: "Earn a bronze discussion medal"},
	{ID: "organization_member", Name: "Organization Member", Category: CategoryCommunity, Phase: 4, Automatable: false,
		Description: "Join a Kaggle organization"},

	// Phase 5: streaks and longevity
	{ID: "daily_contributor", Name: "Daily Contributor", Category: CategoryMilestone, Phase: 5, Automatable: true,
		Description: "Publish a new notebook version today"},
	{ID: "streak_saver", Name: "Streak Saver", Category: CategoryMilestone, Phase: 5, Automatable: true,
		Description: "Register platform activity to keep a streak alive"},
	{ID: "code_streak_week", Name: "Weekly Coder", Category: CategoryMilestone, Phase: 5, Automatable: false,
		Description: "Publish code 7 days in a row"},
	{ID: "code_streak_month", Name: "Monthly Coder", Category: CategoryMilestone, Phase: 5, Automatable: false,
		Description: "Publish code 30 days in a row"},
	{ID: "login_streak_week", Name: "Regular Visitor", Category: CategoryMilestone, Phase: 5, Automatable: false,
		Description: "Sign in 7 days in a row"},
	{ID: "login_streak_month", Name: "Devoted Visitor", Category: CategoryMilestone, Phase: 5, Automatable: false,
		Description: "Sign in 30 days in a row"},
	{ID: "anniversary_one", Name: "One Year on Kaggle", Category: CategoryMilestone, Phase: 5, Automatable: false,
		Description: "Hold an account for one year"},
	{ID: "anniversary_five", Name: "Five Years on Kaggle", Category: CategoryMilestone, Phase: 5, Automatable: false,
		Description: "Hold an account for five years"},
	{ID: "early_bird", Name: "Early Bird", Category: CategoryMilestone, Phase: 5, Automatable: false,
		Description: "Be active before 6am local time"},
	{ID: "night_owl", Name: "Night Owl", Category: CategoryMilestone, Phase: 5, Automatable: false,
		Description: "Be active after midnight local time"},
}
