package broker

// NATS subjects, one per entity stream.
const (
	UserEventsSubject     = "trackit.user_events"
	TaskEventsSubject     = "trackit.task_events"
	HabitEventsSubject    = "trackit.habit_events"
	HabitLogEventsSubject = "trackit.habit_log_events"
)

// AllSubjects lists every entity stream, in the order clients subscribe.
var AllSubjects = []string{
	UserEventsSubject,
	TaskEventsSubject,
	HabitEventsSubject,
	HabitLogEventsSubject,
}

// SubjectForEntity maps an outbox entity name to its stream subject.
func SubjectForEntity(entity string) string {
	switch entity {
	case "user":
		return UserEventsSubject
	case "task":
		return TaskEventsSubject
	case "habit":
		return HabitEventsSubject
	case "habit_log":
		return HabitLogEventsSubject
	default:
		return ""
	}
}
