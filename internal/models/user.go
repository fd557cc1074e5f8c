package models

import "time"

// User represents a row in the PostgreSQL users table.
type User struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	PasswordHash       string    `json:"-"` // never serialize
	Children           []string  `json:"children"`
	TeacherCode        string    `json:"teacher_code"`
	SubscriptionStatus string    `json:"subscription_status"`
	TrialStartDate     time.Time `json:"trial_start_date"`
}

// NewUser is what registration hands to the credential store.
type NewUser struct {
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Children     []string
	TeacherCode  string
}

// TeacherUser is the synthetic identity returned by a teacher login. Name and
// Phone are whatever the teacher typed; they are not checked against anything.
type TeacherUser struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	TeacherCode string   `json:"teacher_code"`
	ParentID    string   `json:"parent_id"`
	ParentName  string   `json:"parent_name"`
	ParentEmail string   `json:"parent_email"`
	Children    []string `json:"children"`
}

// TeacherLogin is one entry of the delegation activity log.
type TeacherLogin struct {
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
	At    time.Time `json:"at"`
}

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Password string   `json:"password"`
	Children []string `json:"children"`
}

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TeacherLoginRequest is the JSON body for POST /teacher/login.
type TeacherLoginRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	TeacherCode string `json:"teacher_code"`
}
