package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Importance ranks a todo.
type Importance string

const (
	ImportanceLow    Importance = "Low"
	ImportanceMedium Importance = "Medium"
	ImportanceHigh   Importance = "High"
)

// Importances lists the accepted values in display order.
var Importances = []string{string(ImportanceLow), string(ImportanceMedium), string(ImportanceHigh)}

// Status is the board column a todo sits in.
type Status string

const (
	StatusReady      Status = "Ready"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// Statuses lists the accepted values in display order.
var Statuses = []string{string(StatusReady), string(StatusInProgress), string(StatusDone)}

// Todo represents a single item on a user's board.
type Todo struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description *string    `json:"description"`
	Importance  Importance `gorm:"size:16;not null" json:"importance"`
	Status      Status     `gorm:"size:16;not null;index" json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   bool       `gorm:"not null" json:"completed"`
	UserID      string     `gorm:"size:36;not null;index" json:"userId"`
	CategoryID  string     `gorm:"size:36;not null;index" json:"categoryId"`
	Category    *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t *Todo) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
