package domain

// Overview summarises a user's records inside a window.
type Overview struct {
	Vitals    VitalsSummary
	Workouts  WorkoutsSummary
	Sleep     SleepSummary
	Nutrition NutritionSummary
}

// BloodPressure is a rounded systolic/diastolic pair.
type BloodPressure struct {
	Systolic  int
	Diastolic int
}

type VitalsSummary struct {
	AvgHeartRate int
	AvgBP        BloodPressure
	AvgSpO2      int
	AvgTemp      float64
}

type WorkoutsSummary struct {
	Sessions      int
	TotalMinutes  int
	TotalCalories int
}

type SleepSummary struct {
	Entries    int
	AvgHours   float64
	AvgQuality float64
}

type NutritionSummary struct {
	Days          int
	TotalCalories int
	AvgProtein    float64
	AvgCarbs      float64
	AvgFat        float64
}

// Trends holds day-bucketed series, each ascending by day.
type Trends struct {
	Heart    []HeartPoint
	Sleep    []SleepPoint
	Workouts []WorkoutPoint
}

type HeartPoint struct {
	Day   string
	AvgHR float64
	Count int
}

type SleepPoint struct {
	Day   string
	Hours float64
}

type WorkoutPoint struct {
	Day      string
	TotalMin float64
}
