package chat

import "gymdesk/internal/role"

// CanMessage is the closed contact matrix. Members and gym owners never
// talk directly; everything routes through a trainer. Admin has no chat
// presence at all.
func CanMessage(sender, receiver role.Role) bool {
	switch sender {
	case role.Member:
		return receiver == role.Trainer
	case role.Trainer:
		return receiver == role.Member || receiver == role.Gym
	case role.Gym:
		return receiver == role.Trainer
	default:
		return false
	}
}
