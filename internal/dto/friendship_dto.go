package dto

import "github.com/google/uuid"

type SendFriendRequestRequest struct {
	ToUserID uuid.UUID `json:"to_user_id"`
}

type FriendListsResponse struct {
	Friends  interface{} `json:"friends"`
	Received interface{} `json:"received"`
	Sent     interface{} `json:"sent"`
}
