package phases

import (
	"context"

	"github.com/nurfaiz0909/kaggle-skill/internal/templates"
)

// phase5Units covers the streak badges. Both depend on activity happening
// on distinct days, so one run can only contribute today's activity; the
// badge itself lands after enough consecutive days.
func phase5Units() []Unit {
	return []Unit{
		{
			Name:     "daily-notebook-activity",
			BadgeIDs: []string{"daily_contributor", "streak_saver"},
			Run: func(ctx context.Context, env *Env) (string, error) {
				// Pushing any kernel counts as today's contribution.
				return pushKernel(ctx, env, kernelSpec{
					kind:     "daily",
					file:     "daily.py",
					content:  templates.UtilityScript,
					language: templates.LanguagePython,
					ktype:    templates.KernelScript,
				})
			},
		},
	}
}
