package entity

import "time"

// Exit representa una salida de material atribuida (FIFO) a una entrada de origen.
type Exit struct {
	ID        int64
	EntryID   int64 // entrada de origen
	Material  string
	Quantity  int64
	Personnel string
	Date      time.Time
}
