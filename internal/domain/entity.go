package domain

// Entity is a record mirrored from the backend.
// Only entities confirmed by the backend carry a non-empty ID.
type Entity interface {
	EntityID() string
}

// EntityKind identifies one of the synchronized collections.
type EntityKind string

const (
	KindTask     EntityKind = "task"
	KindCategory EntityKind = "category"
	KindContext  EntityKind = "context"
)

// AllEntityKinds returns all synchronized kinds.
func AllEntityKinds() []EntityKind {
	return []EntityKind{KindTask, KindCategory, KindContext}
}

// Path returns the REST collection segment for the kind.
func (k EntityKind) Path() string {
	switch k {
	case KindTask:
		return "tasks"
	case KindCategory:
		return "categories"
	case KindContext:
		return "context"
	default:
		return string(k)
	}
}

// Plural returns the plural display name of the kind.
func (k EntityKind) Plural() string {
	switch k {
	case KindTask:
		return "tasks"
	case KindCategory:
		return "categories"
	case KindContext:
		return "context entries"
	default:
		return string(k) + "s"
	}
}
