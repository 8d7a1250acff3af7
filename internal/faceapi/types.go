package faceapi

import "encoding/json"

// RegisterRequest is a camera registration; FaceBox is optional [x1, y1, x2, y2].
type RegisterRequest struct {
	Name    string    `json:"name"`
	Image   string    `json:"image,omitempty"`
	UserID  string    `json:"user_id,omitempty"`
	FaceBox []float64 `json:"face_box,omitempty"`
}

// RegisterResult is returned after a successful registration.
type RegisterResult struct {
	UserID     string `json:"user_id"`
	CreateTime string `json:"create_time"`
	ImagePath  string `json:"image_path"`
}

// Statistics is the dashboard summary from /statistic.
type Statistics struct {
	TotalUsers        int     `json:"total_users"`
	TotalRecognitions int     `json:"total_recognitions"`
	TodayRecognitions int     `json:"today_recognitions"`
	RecognitionRate   float64 `json:"recognition_rate"`
}

// User is one entry of the registered-user list.
type User struct {
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	CreatedAt     string `json:"created_at"`
	FaceThumbnail string `json:"face_thumbnail"`
	IsDeleted     bool   `json:"is_deleted"`
}

// UserList is one page of registered users.
type UserList struct {
	Total int    `json:"total"`
	Users []User `json:"users"`
}

// UserListParams are the /user/list query parameters. Zero values are omitted.
type UserListParams struct {
	Page     int
	PageSize int
	Search   string
}

// DeleteResult is returned by DeleteSingleUser.
type DeleteResult struct {
	DeletedUserID string `json:"deleted_user_id"`
	Message       string `json:"message"`
}

// BatchDeleteResult is returned by DeleteBatchUsers.
type BatchDeleteResult struct {
	DeletedCount   int      `json:"deleted_count"`
	DeletedUserIDs []string `json:"deleted_user_ids"`
	Message        string   `json:"message"`
}

// RecognizeRequest is the camera recognition body.
type RecognizeRequest struct {
	Image string `json:"image"`
}

// Recognition is an undecoded recognition payload. It is handed to the
// reconciler as is, since the backend's field names vary between versions.
type Recognition = json.RawMessage
