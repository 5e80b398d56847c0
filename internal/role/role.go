// Package role defines the closed set of account roles. Authorization
// decisions dispatch on this type rather than raw strings.
package role

import "fmt"

type Role string

const (
	Admin   Role = "admin"
	Gym     Role = "gym"
	Trainer Role = "trainer"
	Member  Role = "member"
)

// All lists every valid role, in no particular order.
var All = []Role{Admin, Gym, Trainer, Member}

func Parse(s string) (Role, error) {
	switch Role(s) {
	case Admin:
		return Admin, nil
	case Gym:
		return Gym, nil
	case Trainer:
		return Trainer, nil
	case Member:
		return Member, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	switch r {
	case Admin, Gym, Trainer, Member:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// CanJoinGym reports whether the role applies to a gym via join request.
func (r Role) CanJoinGym() bool {
	return r == Member || r == Trainer
}
