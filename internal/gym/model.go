package gym

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gymdesk/internal/role"

	"github.com/lib/pq"
)

// Duration is a membership length picked by a member when joining.
type Duration string

const (
	OneWeek    Duration = "1 week"
	OneMonth   Duration = "1 month"
	ThreeMonth Duration = "3 months"
	SixMonth   Duration = "6 months"
	OneYear    Duration = "1 year"
)

var Durations = []Duration{OneWeek, OneMonth, ThreeMonth, SixMonth, OneYear}

func ParseDuration(s string) (Duration, error) {
	for _, d := range Durations {
		if Duration(s) == d {
			return d, nil
		}
	}
	return "", errors.New("unknown membership duration: " + s)
}

// AddTo returns the membership end for a window starting at t.
// Month-based durations use calendar months with end-of-month clamping:
// Jan 31 + 1 month lands on the last day of February, not March 2.
func (d Duration) AddTo(t time.Time) time.Time {
	switch d {
	case OneWeek:
		return t.AddDate(0, 0, 7)
	case OneMonth:
		return addMonthsClamped(t, 1)
	case ThreeMonth:
		return addMonthsClamped(t, 3)
	case SixMonth:
		return addMonthsClamped(t, 6)
	case OneYear:
		return addMonthsClamped(t, 12)
	default:
		return t
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, day := t.Date()
	hh, mm, ss := t.Clock()

	first := time.Date(y, m+time.Month(months), 1, hh, mm, ss, t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(first.Year(), first.Month(), day, hh, mm, ss, t.Nanosecond(), t.Location())
}

type MembershipPlan struct {
	Name     string  `json:"name"`
	Duration string  `json:"duration"`
	Price    float64 `json:"price"`
}

// MembershipPlans maps to a jsonb column.
type MembershipPlans []MembershipPlan

func (p MembershipPlans) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

func (p *MembershipPlans) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = MembershipPlans{}
		return nil
	default:
		return errors.New("unsupported type for membership plans")
	}
}

type Gym struct {
	ID              int             `db:"id" json:"id"`
	OwnerID         *int            `db:"owner_id" json:"owner_id,omitempty"`
	Name            string          `db:"name" json:"name"`
	Address         string          `db:"address" json:"address"`
	OwnerName       string          `db:"owner_name" json:"owner_name"`
	OwnerEmail      string          `db:"owner_email" json:"owner_email"`
	MembershipPlans MembershipPlans `db:"membership_plans" json:"membership_plans"`
	Photos          pq.StringArray  `db:"photos" json:"photos" swaggertype:"array,string"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// Person is the member/trainer summary shown on a gym's detail page.
type Person struct {
	ID    int    `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

type GymDetail struct {
	Gym
	Members  []Person `json:"members"`
	Trainers []Person `json:"trainers"`
}

const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestDenied   = "denied"
)

type JoinRequest struct {
	ID                 int       `db:"id" json:"id"`
	UserID             int       `db:"user_id" json:"user_id"`
	UserRole           role.Role `db:"user_role" json:"user_role"`
	GymID              int       `db:"gym_id" json:"gym_id"`
	Status             string    `db:"status" json:"status"`
	MembershipDuration *string   `db:"membership_duration" json:"membership_duration,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`

	// Joined from users for display.
	UserName  string `db:"user_name" json:"user_name"`
	UserEmail string `db:"user_email" json:"user_email"`
}

type JoinGymRequest struct {
	GymID    int    `json:"gym_id" binding:"required"`
	Duration string `json:"duration,omitempty"`
}

type UpdateGymRequest struct {
	Name            string          `json:"name" binding:"required"`
	Address         string          `json:"address" binding:"required"`
	OwnerName       string          `json:"owner_name,omitempty"`
	MembershipPlans MembershipPlans `json:"membership_plans,omitempty"`
}
