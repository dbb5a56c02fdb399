package domain

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// RecordKind names a per-user record table.
type RecordKind string

const (
	KindVitals       RecordKind = "vitals"
	KindWorkouts     RecordKind = "workouts"
	KindSleep        RecordKind = "sleep"
	KindMeals        RecordKind = "meals"
	KindMeasurements RecordKind = "measurements"
	KindGoals        RecordKind = "goals"
	KindReminders    RecordKind = "reminders"
)

// RecordKinds lists every record kind in route order.
var RecordKinds = []RecordKind{
	KindVitals, KindWorkouts, KindSleep, KindMeals,
	KindMeasurements, KindGoals, KindReminders,
}

func (k RecordKind) String() string { return string(k) }

func (k RecordKind) IsValid() bool {
	for _, v := range RecordKinds {
		if v == k {
			return true
		}
	}
	return false
}
