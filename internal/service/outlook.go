package service

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/porygon/mealplanner/internal/coach"
	"github.com/porygon/mealplanner/internal/markdown"
	"github.com/porygon/mealplanner/internal/model"
)

const upcomingMilestones = 3

type OutlookService struct {
	milestones   []*model.Milestone
	statsService *StatsService
}

type milestoneMeta struct {
	Week  int    `yaml:"week"`
	Title string `yaml:"title"`
}

// NewOutlookService renders every *.md file under dir in fsys once.
// Each file needs week and title front matter.
func NewOutlookService(fsys fs.FS, dir string, statsService *StatsService) (*OutlookService, error) {
	parser := markdown.NewParser()

	files, err := fs.Glob(fsys, dir+"/*.md")
	if err != nil {
		return nil, err
	}

	var milestones []*model.Milestone
	for _, file := range files {
		source, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		var meta milestoneMeta
		html, err := parser.Render(source, &meta)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", file, err)
		}
		if meta.Week <= 0 {
			return nil, fmt.Errorf("milestone %s has no week", file)
		}

		milestones = append(milestones, &model.Milestone{
			Week:  meta.Week,
			Title: meta.Title,
			HTML:  string(html),
		})
	}

	sort.Slice(milestones, func(i, j int) bool {
		return milestones[i].Week < milestones[j].Week
	})

	return &OutlookService{milestones: milestones, statsService: statsService}, nil
}

// ForStreak places a streak on the milestone timeline.
func (s *OutlookService) ForStreak(streak int) *model.Outlook {
	week := coach.CurrentWeek(streak)
	out := &model.Outlook{
		CurrentWeek: week,
		Streak:      streak,
		Upcoming:    []*model.Milestone{},
	}
	for _, m := range s.milestones {
		if m.Week <= week {
			out.Current = m
			continue
		}
		if len(out.Upcoming) < upcomingMilestones {
			out.Upcoming = append(out.Upcoming, m)
		}
	}
	return out
}

func (s *OutlookService) Outlook(userID string) (*model.Outlook, error) {
	stats, err := s.statsService.Get(userID)
	if err != nil {
		return nil, err
	}
	return s.ForStreak(stats.Streak), nil
}
