package review

import "time"

type Review struct {
	ID        int       `db:"id" json:"id"`
	GymID     int       `db:"gym_id" json:"gym_id"`
	MemberID  int       `db:"member_id" json:"member_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	MemberName *string `db:"member_name" json:"member_name,omitempty"`
	GymName    *string `db:"gym_name" json:"gym_name,omitempty"`
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}
