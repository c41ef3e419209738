package models

import "github.com/google/uuid"

// All returns every model that AutoMigrate manages.
func All() []interface{} {
	return []interface{}{
		&User{},
		&RefreshToken{},
		&Event{},
		&EventParticipant{},
		&Registration{},
		&Channel{},
		&Post{},
		&Comment{},
		&Reaction{},
		&Report{},
		&SystemLog{},
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
