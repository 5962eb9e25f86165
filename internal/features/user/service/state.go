package service

import "user-admin-console/internal/features/user/models"

// Tone is the colour of a notification.
type Tone string

const (
	ToneGreen Tone = "green"
	ToneRed   Tone = "red"
)

// Notification stays visible until dismissed or replaced.
type Notification struct {
	Message string `json:"message"`
	Tone    Tone   `json:"tone"`
}

// Confirmation is the pending delete prompt.
type Confirmation struct {
	Open bool         `json:"open"`
	User *models.User `json:"user,omitempty"`
	Soft bool         `json:"soft"`
}

// CreateForm holds the values typed into the create form.
type CreateForm struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"-"`
}

func (f CreateForm) request() models.CreateUserRequest {
	return models.CreateUserRequest{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  f.Password,
	}
}

// Filters are the toolbar inputs applied by ApplyFilters.
type Filters struct {
	Search     string
	ActiveOnly bool
	Sort       models.Sort
	Size       int
}

// State is everything the console page renders.
type State struct {
	Query     models.ListQuery  `json:"query"`
	Form      CreateForm        `json:"form"`
	Items     []models.User     `json:"items"`
	Meta      models.PageMeta   `json:"meta"`
	Loading   bool              `json:"loading"`
	ListError string            `json:"listError,omitempty"`
	Stats     *models.UserStats `json:"stats,omitempty"`
	Confirm   Confirmation      `json:"confirm"`
	Toast     *Notification     `json:"toast,omitempty"`
	Creating  bool              `json:"creating"`
}

// NewState is the state of a console nobody has used yet.
func NewState() State {
	q := models.DefaultListQuery()
	return State{
		Query: q,
		Items: []models.User{},
		Meta:  models.DefaultMeta(0, q.Size),
	}
}

func (s State) clone() State {
	out := s
	out.Items = append([]models.User(nil), s.Items...)
	if out.Items == nil {
		out.Items = []models.User{}
	}
	if s.Stats != nil {
		stats := *s.Stats
		out.Stats = &stats
	}
	if s.Confirm.User != nil {
		u := *s.Confirm.User
		out.Confirm.User = &u
	}
	if s.Toast != nil {
		toast := *s.Toast
		out.Toast = &toast
	}
	return out
}

// View is a State snapshot plus the values derived from it.
type View struct {
	State
	TotalPages int  `json:"totalPages"`
	CanPrev    bool `json:"canPrev"`
	CanNext    bool `json:"canNext"`
}
