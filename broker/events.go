package broker

type EventType string

// Standardized event types in format: <resource>.<action>
const (
	UserRegistered EventType = "user.registered"
	UserUpdated    EventType = "user.updated"
	UserDeleted    EventType = "user.deleted"

	TaskCreated     EventType = "task.created"
	TaskUpdated     EventType = "task.updated"
	TaskCompleted   EventType = "task.completed"
	TaskIncompleted EventType = "task.incompleted"
	TaskArchived    EventType = "task.archived"
	TaskDeleted     EventType = "task.deleted"

	HabitCreated EventType = "habit.created"
	HabitUpdated EventType = "habit.updated"
	HabitDeleted EventType = "habit.deleted"

	HabitLogged EventType = "habit.logged"
)
