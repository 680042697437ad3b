package stats

import (
	"math"
	"sort"
	"time"

	"github.com/jparra05/habit-tracker/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is the full statistics payload for one user's habit set.
type Report struct {
	HasHabits      bool                      `json:"hasHabits"`
	Message        string                    `json:"message,omitempty"`
	Summary        *Summary                  `json:"summary,omitempty"`
	Categories     map[string]*CategoryGroup `json:"categories,omitempty"`
	ChartData      *ChartData                `json:"chartData,omitempty"`
	HabitsAnalysis *HabitsAnalysis           `json:"habitsAnalysis,omitempty"`
}

// Summary aggregates the whole habit set.
type Summary struct {
	TotalHabits       int     `json:"totalHabits"`
	AverageCompletion int     `json:"averageCompletion"`
	CompletedHabits   int     `json:"completedHabits"`
	StrugglingHabits  int     `json:"strugglingHabits"`
	Streaks           Streaks `json:"streaks"`
}

// Streaks reports the maximum streak across all habits. No historical
// streak-high is stored anywhere, so current and longest are the same value.
type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// CategoryGroup is the per-category breakdown.
type CategoryGroup struct {
	Name              string      `json:"name"`
	Color             string      `json:"color"`
	Count             int         `json:"count"`
	AverageCompletion int         `json:"averageCompletion"`
	Habits            []HabitStat `json:"habits"`
}

// HabitStat is one habit's line inside a category group or the analysis lists.
type HabitStat struct {
	Name           string `json:"name"`
	Category       string `json:"category,omitempty"`
	CompletionRate int    `json:"completionRate"`
	Streak         int    `json:"streak"`
	Frequency      string `json:"frequency"`
}

// ChartData is shaped for Chart.js: parallel label/value/color arrays.
type ChartData struct {
	Labels   []string   `json:"labels"`
	Datasets []ChartSet `json:"datasets"`
}

type ChartSet struct {
	Data            []int    `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
	BorderColor     string   `json:"borderColor"`
	BorderWidth     int      `json:"borderWidth"`
	HoverOffset     int      `json:"hoverOffset"`
}

// HabitsAnalysis lists the strongest and weakest habits. With fewer than six
// habits the two lists overlap; that is accepted, not deduplicated.
type HabitsAnalysis struct {
	BestHabits  []HabitStat `json:"bestHabits"`
	WorstHabits []HabitStat `json:"worstHabits"`
}

// BuildReport recomputes every habit's completion rate from its completed
// entry count and assembles the full report. The cached CompletionRate on the
// habit records is deliberately ignored: it can be stale, and the report
// always trusts its own recomputation.
func BuildReport(habits []models.Habit, completedCounts map[primitive.ObjectID]int, now time.Time) *Report {
	if len(habits) == 0 {
		return &Report{
			HasHabits: false,
			Message:   "No hay hábitos registrados aún",
		}
	}

	type habitWithStats struct {
		habit models.Habit
		rate  int
	}

	withStats := make([]habitWithStats, 0, len(habits))
	rateSum := 0
	completed := 0
	struggling := 0
	maxStreak := 0
	for _, h := range habits {
		expected := ExpectedCompletions(h.Frequency, h.StartDate, now)
		rate := Rate(completedCounts[h.ID], expected)
		withStats = append(withStats, habitWithStats{habit: h, rate: rate})

		rateSum += rate
		if rate >= 80 {
			completed++
		}
		if rate < 50 {
			struggling++
		}
		if h.Streak > maxStreak {
			maxStreak = h.Streak
		}
	}

	summary := &Summary{
		TotalHabits:       len(withStats),
		AverageCompletion: int(math.Round(float64(rateSum) / float64(len(withStats)))),
		CompletedHabits:   completed,
		StrugglingHabits:  struggling,
		Streaks:           Streaks{Current: maxStreak, Longest: maxStreak},
	}

	// Group by category.
	categories := make(map[string]*CategoryGroup)
	totals := make(map[string]int)
	for _, hs := range withStats {
		key := hs.habit.Category
		group, ok := categories[key]
		if !ok {
			info, known := models.AllowedCategories[key]
			if !known {
				info = models.CategoryInfo{Name: key, Color: "#CCCCCC"}
			}
			group = &CategoryGroup{Name: info.Name, Color: info.Color}
			categories[key] = group
		}
		group.Count++
		totals[key] += hs.rate
		group.Habits = append(group.Habits, HabitStat{
			Name:           hs.habit.Name,
			CompletionRate: hs.rate,
			Streak:         hs.habit.Streak,
			Frequency:      hs.habit.Frequency,
		})
	}

	// Name-sorted category order keeps the chart deterministic.
	keys := make([]string, 0, len(categories))
	for key := range categories {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return categories[keys[i]].Name < categories[keys[j]].Name
	})

	chart := &ChartData{
		Datasets: []ChartSet{{
			BorderColor: "#ffffff",
			BorderWidth: 2,
			HoverOffset: 10,
		}},
	}
	for _, key := range keys {
		group := categories[key]
		group.AverageCompletion = int(math.Round(float64(totals[key]) / float64(group.Count)))
		sort.SliceStable(group.Habits, func(i, j int) bool {
			return group.Habits[i].CompletionRate > group.Habits[j].CompletionRate
		})
		chart.Labels = append(chart.Labels, group.Name)
		chart.Datasets[0].Data = append(chart.Datasets[0].Data, group.AverageCompletion)
		chart.Datasets[0].BackgroundColor = append(chart.Datasets[0].BackgroundColor, group.Color)
	}

	// Best and worst habits across the whole set.
	ranked := make([]HabitStat, 0, len(withStats))
	for _, hs := range withStats {
		ranked = append(ranked, HabitStat{
			Name:           hs.habit.Name,
			Category:       hs.habit.Category,
			CompletionRate: hs.rate,
			Streak:         hs.habit.Streak,
			Frequency:      hs.habit.Frequency,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompletionRate > ranked[j].CompletionRate
	})

	best := ranked
	if len(best) > 3 {
		best = best[:3]
	}
	bestHabits := append([]HabitStat(nil), best...)

	worstStart := len(ranked) - 3
	if worstStart < 0 {
		worstStart = 0
	}
	tail := ranked[worstStart:]
	worstHabits := make([]HabitStat, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		worstHabits = append(worstHabits, tail[i])
	}

	return &Report{
		HasHabits:  true,
		Summary:    summary,
		Categories: categories,
		ChartData:  chart,
		HabitsAnalysis: &HabitsAnalysis{
			BestHabits:  bestHabits,
			WorstHabits: worstHabits,
		},
	}
}
