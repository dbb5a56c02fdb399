package rest

import (
	"time"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/service/tracking"
)

type pageResponse[D any] struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Items []D `json:"items"`
}

func toPage[T, D any](p domain.Page[T], conv func(T) D) pageResponse[D] {
	items := make([]D, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, conv(it))
	}
	return pageResponse[D]{Page: p.Page, Limit: p.Limit, Total: p.Total, Items: items}
}

// --- vitals ---

type vitalRequest struct {
	HeartRate   *float64   `json:"heartRate"`
	Systolic    *float64   `json:"systolic"`
	Diastolic   *float64   `json:"diastolic"`
	SpO2        *float64   `json:"spo2"`
	Temperature *float64   `json:"temperature"`
	Mood        *string    `json:"mood"`
	Note        *string    `json:"note"`
	CreatedAt   *time.Time `json:"createdAt"`
}

func (r vitalRequest) input() tracking.CreateVitalInput {
	return tracking.CreateVitalInput(r)
}

type vitalResponse struct {
	ID          string    `json:"id"`
	HeartRate   *float64  `json:"heartRate"`
	Systolic    *float64  `json:"systolic"`
	Diastolic   *float64  `json:"diastolic"`
	SpO2        *float64  `json:"spo2"`
	Temperature *float64  `json:"temperature"`
	Mood        *string   `json:"mood"`
	Note        *string   `json:"note"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toVital(v domain.Vital) vitalResponse {
	return vitalResponse{
		ID:          v.ID.String(),
		HeartRate:   v.HeartRate,
		Systolic:    v.Systolic,
		Diastolic:   v.Diastolic,
		SpO2:        v.SpO2,
		Temperature: v.Temperature,
		Mood:        v.Mood,
		Note:        v.Note,
		CreatedAt:   v.CreatedAt,
	}
}

// --- workouts ---

type workoutRequest struct {
	Type        string     `json:"type"`
	DurationMin *float64   `json:"durationMin"`
	Calories    *float64   `json:"calories"`
	DistanceKm  *float64   `json:"distanceKm"`
	Intensity   *string    `json:"intensity"`
	Note        *string    `json:"note"`
	StartedAt   *time.Time `json:"startedAt"`
}

func (r workoutRequest) input() tracking.CreateWorkoutInput {
	return tracking.CreateWorkoutInput(r)
}

type workoutResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	DurationMin float64   `json:"durationMin"`
	Calories    *float64  `json:"calories"`
	DistanceKm  *float64  `json:"distanceKm"`
	Intensity   *string   `json:"intensity"`
	Note        *string   `json:"note"`
	StartedAt   time.Time `json:"startedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toWorkout(v domain.Workout) workoutResponse {
	return workoutResponse{
		ID:          v.ID.String(),
		Type:        v.Type,
		DurationMin: v.DurationMin,
		Calories:    v.Calories,
		DistanceKm:  v.DistanceKm,
		Intensity:   v.Intensity,
		Note:        v.Note,
		StartedAt:   v.StartedAt,
		CreatedAt:   v.CreatedAt,
	}
}

// --- sleep ---

type sleepRequest struct {
	Start      *time.Time `json:"start"`
	End        *time.Time `json:"end"`
	Quality    *float64   `json:"quality"`
	Awakenings *int       `json:"awakenings"`
	Note       *string    `json:"note"`
}

func (r sleepRequest) input() tracking.CreateSleepInput {
	return tracking.CreateSleepInput(r)
}

type sleepResponse struct {
	ID         string    `json:"id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Quality    *float64  `json:"quality"`
	Awakenings *int      `json:"awakenings"`
	Note       *string   `json:"note"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toSleep(v domain.Sleep) sleepResponse {
	return sleepResponse{
		ID:         v.ID.String(),
		Start:      v.Start,
		End:        v.End,
		Quality:    v.Quality,
		Awakenings: v.Awakenings,
		Note:       v.Note,
		CreatedAt:  v.CreatedAt,
	}
}

// --- meals ---

type mealRequest struct {
	WhenAt   *time.Time `json:"whenAt"`
	MealType *string    `json:"mealType"`
	Calories *float64   `json:"calories"`
	Protein  *float64   `json:"protein"`
	Carbs    *float64   `json:"carbs"`
	Fat      *float64   `json:"fat"`
	Note     *string    `json:"note"`
}

func (r mealRequest) input() tracking.CreateMealInput {
	return tracking.CreateMealInput(r)
}

type mealResponse struct {
	ID        string    `json:"id"`
	WhenAt    time.Time `json:"whenAt"`
	MealType  *string   `json:"mealType"`
	Calories  *float64  `json:"calories"`
	Protein   *float64  `json:"protein"`
	Carbs     *float64  `json:"carbs"`
	Fat       *float64  `json:"fat"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMeal(v domain.Meal) mealResponse {
	return mealResponse{
		ID:        v.ID.String(),
		WhenAt:    v.WhenAt,
		MealType:  v.MealType,
		Calories:  v.Calories,
		Protein:   v.Protein,
		Carbs:     v.Carbs,
		Fat:       v.Fat,
		Note:      v.Note,
		CreatedAt: v.CreatedAt,
	}
}

// --- measurements ---

type measurementRequest struct {
	WeightKg   *float64   `json:"weightKg"`
	BodyFatPct *float64   `json:"bodyFatPct"`
	WaistCm    *float64   `json:"waistCm"`
	HipCm      *float64   `json:"hipCm"`
	Note       *string    `json:"note"`
	CreatedAt  *time.Time `json:"createdAt"`
}

func (r measurementRequest) input() tracking.CreateMeasurementInput {
	return tracking.CreateMeasurementInput(r)
}

type measurementResponse struct {
	ID         string    `json:"id"`
	WeightKg   *float64  `json:"weightKg"`
	BodyFatPct *float64  `json:"bodyFatPct"`
	WaistCm    *float64  `json:"waistCm"`
	HipCm      *float64  `json:"hipCm"`
	Note       *string   `json:"note"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toMeasurement(v domain.Measurement) measurementResponse {
	return measurementResponse{
		ID:         v.ID.String(),
		WeightKg:   v.WeightKg,
		BodyFatPct: v.BodyFatPct,
		WaistCm:    v.WaistCm,
		HipCm:      v.HipCm,
		Note:       v.Note,
		CreatedAt:  v.CreatedAt,
	}
}

// --- goals ---

type goalRequest struct {
	Title   string     `json:"title"`
	Metric  *string    `json:"metric"`
	Target  *float64   `json:"target"`
	DueDate *time.Time `json:"dueDate"`
}

func (r goalRequest) input() tracking.CreateGoalInput {
	return tracking.CreateGoalInput(r)
}

type goalResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Metric    *string    `json:"metric"`
	Target    *float64   `json:"target"`
	DueDate   *time.Time `json:"dueDate"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toGoal(v domain.Goal) goalResponse {
	return goalResponse{
		ID:        v.ID.String(),
		Title:     v.Title,
		Metric:    v.Metric,
		Target:    v.Target,
		DueDate:   v.DueDate,
		Completed: v.Completed,
		CreatedAt: v.CreatedAt,
	}
}

// --- reminders ---

type reminderRequest struct {
	Title      string     `json:"title"`
	At         *time.Time `json:"at"`
	RepeatRule *string    `json:"repeatRule"`
	Note       *string    `json:"note"`
}

func (r reminderRequest) input() tracking.CreateReminderInput {
	return tracking.CreateReminderInput(r)
}

type reminderResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	At         time.Time `json:"at"`
	RepeatRule *string   `json:"repeatRule"`
	Note       *string   `json:"note"`
	Sent       bool      `json:"sent"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toReminder(v domain.Reminder) reminderResponse {
	return reminderResponse{
		ID:         v.ID.String(),
		Title:      v.Title,
		At:         v.At,
		RepeatRule: v.RepeatRule,
		Note:       v.Note,
		Sent:       v.Sent,
		CreatedAt:  v.CreatedAt,
	}
}

// --- users ---

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUser(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

// --- events ---

type eventResponse struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"userId"`
	SessionID *string   `json:"sessionId"`
	Event     string    `json:"event"`
	Props     *string   `json:"props"`
	UserAgent *string   `json:"userAgent"`
	IP        *string   `json:"ip"`
	CreatedAt time.Time `json:"createdAt"`
}

func toEvent(e domain.Event) eventResponse {
	resp := eventResponse{
		ID:        e.ID.String(),
		SessionID: e.SessionID,
		Event:     e.Event,
		Props:     e.Props,
		UserAgent: e.UserAgent,
		IP:        e.IP,
		CreatedAt: e.CreatedAt,
	}
	if e.UserID != nil {
		s := e.UserID.String()
		resp.UserID = &s
	}
	return resp
}
