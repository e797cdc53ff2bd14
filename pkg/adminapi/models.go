package adminapi

import (
	"net/url"
	"strconv"
)

type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role,omitempty"`
	Status        string `json:"status"`
	EmailVerified bool   `json:"email_verified"`
	ProjectsCount int    `json:"projects_count"`
	CreatedAt     string `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

type UserList struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

type UserUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Role   *string `json:"role,omitempty"`
	Status *string `json:"status,omitempty"`
}

// ListQuery holds the paging and filter parameters shared by the list endpoints.
type ListQuery struct {
	Skip   int
	Limit  int
	Search string
	Status string

	// Industry only applies to project listings.
	Industry string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Industry != "" {
		v.Set("industry", q.Industry)
	}
	return v
}

type (
	UserQuery       = ListQuery
	ProjectQuery    = ListQuery
	DeploymentQuery = ListQuery
)

type Project struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
	Description  string `json:"description"`
	Industry     string `json:"industry"`
	Status       string `json:"status"`
	DeployedURL  string `json:"deployed_url"`
	UserID       string `json:"user_id"`
	CreatedAt    string `json:"created_at"`
}

type ProjectList struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
}

type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	User      string `json:"user,omitempty"`
	Message   string `json:"message"`
}

// Deployment.Size is a preformatted string or a byte count depending on the
// platform.
type Deployment struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	ProjectName string     `json:"project_name"`
	Status      string     `json:"status"`
	Environment string     `json:"environment"`
	Platform    string     `json:"platform"`
	URL         string     `json:"url"`
	BuildTime   float64    `json:"build_time"`
	Branch      string     `json:"branch,omitempty"`
	CommitHash  string     `json:"commit_hash,omitempty"`
	Size        any        `json:"size,omitempty"`
	CreatedAt   string     `json:"created_at"`
	DeployedAt  string     `json:"deployed_at,omitempty"`
	Logs        []LogEntry `json:"logs,omitempty"`
}

type DeploymentList struct {
	Deployments []Deployment `json:"deployments"`
	Total       int          `json:"total"`
}

type DeploymentStatistics struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Pending    int `json:"pending"`
}

type Overview struct {
	TotalUsers        int     `json:"total_users"`
	TotalProjects     int     `json:"total_projects"`
	ActiveDeployments int     `json:"active_deployments"`
	SuccessRate       float64 `json:"success_rate"`
}

// Analytics keeps the time series loosely typed, they are normalized by the
// chart package before drawing.
type Analytics struct {
	UserRegistrations []map[string]any `json:"user_registrations"`
	ProjectCreations  []map[string]any `json:"project_creations"`
	Deployments       []map[string]any `json:"deployments,omitempty"`
	Last24h           struct {
		NewUsers              int `json:"new_users"`
		NewProjects           int `json:"new_projects"`
		SuccessfulDeployments int `json:"successful_deployments"`
		FailedDeployments     int `json:"failed_deployments"`
	} `json:"last_24h"`
	Current struct {
		ActiveSessions int `json:"active_sessions"`
	} `json:"current"`
}

type Activity struct {
	ID          string         `json:"id,omitempty"`
	Type        string         `json:"type"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description"`
	User        string         `json:"user,omitempty"`
	Timestamp   string         `json:"timestamp"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type KnowledgeFile struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

type KnowledgeBase struct {
	Collections    []string                   `json:"collections"`
	Statistics     map[string]int             `json:"statistics"`
	Files          map[string][]KnowledgeFile `json:"files"`
	TotalDocuments int                        `json:"total_documents"`
}

type Service struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

type SystemHealth struct {
	Status      string    `json:"status"`
	Version     string    `json:"version,omitempty"`
	LastUpdated string    `json:"last_updated"`
	Services    []Service `json:"services"`
}

// Operational returns how many services report an operational status.
func (h *SystemHealth) Operational() int {
	var n int
	for _, s := range h.Services {
		if s.Status == "operational" {
			n++
		}
	}
	return n
}

type SystemPerformance struct {
	CPUUsage          float64 `json:"cpu_usage"`
	MemoryUsage       float64 `json:"memory_usage"`
	DiskUsage         float64 `json:"disk_usage"`
	RequestsPerMinute float64 `json:"requests_per_minute"`
	ActiveConnections float64 `json:"active_connections"`
	ResponseTimeAvg   float64 `json:"response_time_avg"`
}

type ReportTemplate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Parameters  []string `json:"parameters"`
}

type Report struct {
	Success     bool           `json:"success"`
	ReportID    string         `json:"report_id"`
	GeneratedAt string         `json:"generated_at"`
	Message     string         `json:"message,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
}

// ActionResult is the body returned by most mutating endpoints.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
