package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/2beens/gymlog/pkg"
)

const (
	DefaultHeatmapWeeks = 12

	LevelNone        = 0
	LevelWorkoutOnly = 2
	LevelCheckInOnly = 3
	LevelFull        = 4
)

// LogPoint is a workout log joined with its exercise targets.
type LogPoint struct {
	UserID       int
	ExerciseID   int
	ExerciseName string
	Category     string
	Date         time.Time
	ActualSets   int
	ActualReps   int
	Weight       float64
	TargetSets   int
	TargetReps   int
	TargetWeight float64
}

func (l LogPoint) Reps() int {
	return l.ActualSets * l.ActualReps
}

func (l LogPoint) Volume() float64 {
	return float64(l.ActualSets*l.ActualReps) * l.Weight
}

// Visit is a gym check-in; open check-ins have no duration yet.
type Visit struct {
	UserID          int
	CheckInTime     time.Time
	DurationMinutes int
}

type Stats struct {
	TotalWorkouts  int `json:"total_workouts"`
	TotalDuration  int `json:"total_duration"`
	AvgDuration    int `json:"avg_duration"`
	TotalExercises int `json:"total_exercises"`
	TotalReps      int `json:"total_reps"`
}

type HeatmapDay struct {
	Date    string `json:"date"`
	Weekday int    `json:"day"`
	Level   int    `json:"level"`
}

type ChartPoint struct {
	Date   string `json:"date"`
	Actual int    `json:"actual"`
	Target int    `json:"target"`
}

type CategoryLog struct {
	Date         string  `json:"date"`
	ExerciseID   int     `json:"exercise_id"`
	ExerciseName string  `json:"exercise_name"`
	ActualSets   int     `json:"actual_sets"`
	ActualReps   int     `json:"actual_reps"`
	Weight       float64 `json:"weight"`
	TargetSets   int     `json:"target_sets"`
	TargetReps   int     `json:"target_reps"`
	TargetWeight float64 `json:"target_weight"`
	Volume       float64 `json:"volume"`
}

type CategoryReport struct {
	Category         string        `json:"category"`
	TotalWorkouts    int           `json:"total_workouts"`
	FirstWorkoutDate string        `json:"first_workout_date"`
	LastWorkoutDate  string        `json:"last_workout_date"`
	AvgVolumeStart   int           `json:"avg_volume_start"`
	AvgVolumeEnd     int           `json:"avg_volume_end"`
	GrowthPercentage int           `json:"growth_percentage"`
	Logs             []CategoryLog `json:"logs"`
}

type GymStats struct {
	TotalUsers    int `json:"total_users"`
	TotalWorkouts int `json:"total_workouts"`
	TotalDuration int `json:"total_duration"`
	TotalReps     int `json:"total_reps"`
	TodayCheckIns int `json:"today_check_ins"`
}

func dayKey(t time.Time) string {
	return t.Format(pkg.DateLayout)
}

// round half up
func round(f float64) int {
	return int(math.Floor(f + 0.5))
}

// Streak counts consecutive days with at least one log, going back from today.
// A day without logs yet today does not break the streak, counting then starts at yesterday.
func Streak(logDays []time.Time, today time.Time) int {
	days := make(map[string]struct{}, len(logDays))
	for _, d := range logDays {
		days[dayKey(d)] = struct{}{}
	}

	streak := 0
	for i := 0; ; i++ {
		if _, ok := days[dayKey(today.AddDate(0, 0, -i))]; ok {
			streak++
			continue
		}
		if i > 0 {
			return streak
		}
	}
}

// Heatmap returns weeks rows of 7 days, oldest first and ending today.
func Heatmap(visits []Visit, logs []LogPoint, today time.Time, weeks int) [][]HeatmapDay {
	if weeks <= 0 {
		weeks = DefaultHeatmapWeeks
	}

	checkInDays := make(map[string]struct{}, len(visits))
	for _, v := range visits {
		checkInDays[dayKey(v.CheckInTime)] = struct{}{}
	}
	workoutDays := make(map[string]struct{}, len(logs))
	for _, l := range logs {
		workoutDays[dayKey(l.Date)] = struct{}{}
	}

	heatmap := make([][]HeatmapDay, 0, weeks)
	for week := 0; week < weeks; week++ {
		row := make([]HeatmapDay, 0, 7)
		for day := 0; day < 7; day++ {
			key := dayKey(today.AddDate(0, 0, -((weeks-1-week)*7 + (6 - day))))
			_, checkedIn := checkInDays[key]
			_, workedOut := workoutDays[key]

			level := LevelNone
			switch {
			case checkedIn && workedOut:
				level = LevelFull
			case checkedIn:
				level = LevelCheckInOnly
			case workedOut:
				level = LevelWorkoutOnly
			}

			row = append(row, HeatmapDay{Date: key, Weekday: day, Level: level})
		}
		heatmap = append(heatmap, row)
	}

	return heatmap
}

// ComputeStats counts every check-in as a workout.
func ComputeStats(visits []Visit, logs []LogPoint) Stats {
	stats := Stats{
		TotalWorkouts:  len(visits),
		TotalExercises: len(logs),
	}
	for _, v := range visits {
		stats.TotalDuration += v.DurationMinutes
	}
	if stats.TotalWorkouts > 0 {
		stats.AvgDuration = round(float64(stats.TotalDuration) / float64(stats.TotalWorkouts))
	}
	for _, l := range logs {
		stats.TotalReps += l.Reps()
	}
	return stats
}

// DailyChart compares actual with target reps for each of the last days, ending today.
func DailyChart(logs []LogPoint, today time.Time, days int) []ChartPoint {
	actual := make(map[string]int)
	target := make(map[string]int)
	for _, l := range logs {
		key := dayKey(l.Date)
		actual[key] += l.Reps()
		target[key] += l.TargetSets * l.TargetReps
	}

	chart := make([]ChartPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := dayKey(today.AddDate(0, 0, -i))
		chart = append(chart, ChartPoint{
			Date:   key,
			Actual: actual[key],
			Target: target[key],
		})
	}
	return chart
}

// CategoryProgress reports per muscle category how the average volume of the first
// logged date compares to the one of the last logged date.
func CategoryProgress(logs []LogPoint) map[string]CategoryReport {
	category2logs := make(map[string][]LogPoint)
	for _, l := range logs {
		if l.Category == "" {
			continue
		}
		category2logs[l.Category] = append(category2logs[l.Category], l)
	}

	reports := make(map[string]CategoryReport, len(category2logs))
	for category, catLogs := range category2logs {
		sort.SliceStable(catLogs, func(i, j int) bool {
			return catLogs[i].Date.Before(catLogs[j].Date)
		})

		firstDate := dayKey(catLogs[0].Date)
		lastDate := dayKey(catLogs[len(catLogs)-1].Date)

		dates := make(map[string]struct{})
		var firstSum, lastSum float64
		var firstCount, lastCount int
		report := CategoryReport{
			Category:         category,
			FirstWorkoutDate: firstDate,
			LastWorkoutDate:  lastDate,
			Logs:             make([]CategoryLog, 0, len(catLogs)),
		}
		for _, l := range catLogs {
			key := dayKey(l.Date)
			dates[key] = struct{}{}
			if key == firstDate {
				firstSum += l.Volume()
				firstCount++
			}
			if key == lastDate {
				lastSum += l.Volume()
				lastCount++
			}
			report.Logs = append(report.Logs, CategoryLog{
				Date:         key,
				ExerciseID:   l.ExerciseID,
				ExerciseName: l.ExerciseName,
				ActualSets:   l.ActualSets,
				ActualReps:   l.ActualReps,
				Weight:       l.Weight,
				TargetSets:   l.TargetSets,
				TargetReps:   l.TargetReps,
				TargetWeight: l.TargetWeight,
				Volume:       l.Volume(),
			})
		}

		firstVolume := firstSum / float64(firstCount)
		lastVolume := lastSum / float64(lastCount)
		var growth float64
		if firstVolume > 0 {
			growth = (lastVolume - firstVolume) / firstVolume * 100
		}

		report.TotalWorkouts = len(dates)
		report.AvgVolumeStart = round(firstVolume)
		report.AvgVolumeEnd = round(lastVolume)
		report.GrowthPercentage = round(growth)
		reports[category] = report
	}

	return reports
}

// ComputeGymStats summarizes the whole gym; regularUsers is the number of non-owner accounts.
func ComputeGymStats(regularUsers int, visits []Visit, logs []LogPoint, today time.Time) GymStats {
	stats := GymStats{
		TotalUsers:    regularUsers,
		TotalWorkouts: len(visits),
	}
	todayKey := dayKey(today)
	for _, v := range visits {
		stats.TotalDuration += v.DurationMinutes
		if dayKey(v.CheckInTime) == todayKey {
			stats.TodayCheckIns++
		}
	}
	for _, l := range logs {
		stats.TotalReps += l.Reps()
	}
	return stats
}
