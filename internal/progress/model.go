// Package progress tracks members' nutrition macros and body measurements.
package progress

import (
	"time"

	"github.com/lib/pq"
)

type MacroLog struct {
	ID       int       `db:"id" json:"id"`
	MemberID int       `db:"member_id" json:"member_id"`
	Food     string    `db:"food" json:"food"`
	Calories int       `db:"calories" json:"calories"`
	Protein  int       `db:"protein" json:"protein"`
	Carbs    int       `db:"carbs" json:"carbs"`
	Fats     int       `db:"fats" json:"fats"`
	LoggedAt time.Time `db:"logged_at" json:"logged_at"`
}

type ProgressLog struct {
	ID            int            `db:"id" json:"id"`
	MemberID      int            `db:"member_id" json:"member_id"`
	Weight        float64        `db:"weight" json:"weight"`
	MuscleMass    float64        `db:"muscle_mass" json:"muscle_mass"`
	FatPercentage float64        `db:"fat_percentage" json:"fat_percentage"`
	Photos        pq.StringArray `db:"photos" json:"photos" swaggertype:"array,string"`
	LoggedAt      time.Time      `db:"logged_at" json:"logged_at"`
}

type MacroLogRequest struct {
	Food     string `json:"food" binding:"required"`
	Calories int    `json:"calories" binding:"required,min=0"`
	Protein  int    `json:"protein" binding:"min=0"`
	Carbs    int    `json:"carbs" binding:"min=0"`
	Fats     int    `json:"fats" binding:"min=0"`
}

type ProgressLogRequest struct {
	Weight        float64 `json:"weight" binding:"required,gt=0"`
	MuscleMass    float64 `json:"muscle_mass" binding:"min=0"`
	FatPercentage float64 `json:"fat_percentage" binding:"min=0,max=100"`
}
