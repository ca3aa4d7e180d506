package api

// FileRecord describes one uploaded file as reported by the backend.
type FileRecord struct {
	ID              string `json:"id"`
	Filename        string `json:"filename"`
	OriginalFormat  string `json:"originalFormat"`
	ConvertedFormat string `json:"convertedFormat"`
	FileSize        string `json:"fileSize"`
	Status          string `json:"status"`
	UploadDate      string `json:"uploadDate,omitempty"`
	CompletionDate  string `json:"completionDate,omitempty"`
	DownloadCount   int    `json:"downloadCount,omitempty"`
	UserEmail       string `json:"userEmail,omitempty"`
	ErrorMessage    string `json:"errorMessage,omitempty"`
}

// UploadResponse is returned by the multipart upload endpoint.
type UploadResponse struct {
	Files []FileRecord `json:"files"`
}

// StartConversionResponse acknowledges a batch conversion request.
type StartConversionResponse struct {
	Message string   `json:"message"`
	FileIDs []string `json:"fileIds"`
}

// ProgressResponse is returned by the per-file progress endpoint.
type ProgressResponse struct {
	ID         string `json:"id"`
	FileName   string `json:"fileName"`
	FromFormat string `json:"fromFormat"`
	ToFormat   string `json:"toFormat"`
	Progress   int    `json:"progress"`
	Status     string `json:"status"`
	FileSize   string `json:"fileSize"`
}

// FileListResponse is the paginated file listing.
type FileListResponse struct {
	Files       []FileRecord `json:"files"`
	Total       int          `json:"total"`
	Pages       int          `json:"pages"`
	CurrentPage int          `json:"current_page"`
}

// FileStats aggregates conversion counters for the public stats endpoint.
type FileStats struct {
	TotalFiles     int     `json:"totalFiles"`
	CompletedFiles int     `json:"completedFiles"`
	TotalDownloads int     `json:"totalDownloads"`
	SuccessRate    float64 `json:"successRate"`
}

// BlogPost is a blog entry as stored by the backend.
type BlogPost struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image,omitempty"`
	Featured    bool     `json:"featured"`
	Published   bool     `json:"published"`
	PublishDate string   `json:"publishDate,omitempty"`
	ReadTime    string   `json:"readTime,omitempty"`
	Views       int      `json:"views,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// BlogListResponse is the paginated blog listing.
type BlogListResponse struct {
	Posts       []BlogPost `json:"posts"`
	Total       int        `json:"total"`
	Pages       int        `json:"pages"`
	CurrentPage int        `json:"current_page"`
}

// FeaturedPostsResponse wraps the featured posts listing.
type FeaturedPostsResponse struct {
	Posts []BlogPost `json:"posts"`
}

// CategoriesResponse wraps the category listing.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// AdminUser describes the authenticated administrator account.
type AdminUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsActive  bool   `json:"isActive"`
	LastLogin string `json:"lastLogin,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// LoginResponse carries the bearer token issued by the login endpoint.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	Admin       AdminUser `json:"admin"`
}

// DashboardStats aggregates counters for the admin dashboard.
type DashboardStats struct {
	FileStats struct {
		Total      int `json:"total"`
		Completed  int `json:"completed"`
		Processing int `json:"processing"`
		Failed     int `json:"failed"`
	} `json:"fileStats"`
	BlogStats struct {
		Total     int `json:"total"`
		Published int `json:"published"`
		Featured  int `json:"featured"`
	} `json:"blogStats"`
	RecentFiles []FileRecord `json:"recentFiles"`
	RecentPosts []BlogPost   `json:"recentPosts"`
}

// PageContent is an editable static page (terms, privacy, cookies, contact).
type PageContent struct {
	ID        string `json:"id,omitempty"`
	Page      string `json:"page"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UpdatedBy string `json:"updatedBy,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Settings is the key/value settings document exposed by the admin API.
type Settings map[string]string

// SettingsResponse wraps the settings document.
type SettingsResponse struct {
	Settings Settings `json:"settings"`
}

// HealthResponse is the backend liveness document.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is the generic acknowledgement envelope.
type MessageResponse struct {
	Message string `json:"message"`
}
