package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

var (
	RepoPath   = "./repo"
	PublicPath = "./repo/public"
	PreviewURL = "/preview/"

	// Content layout inside the repo checkout
	ContentDir  = "content/blog"
	AuthorsDir  = "content/authors"
	ProfileFile = "default.md"

	// Render cache settings
	RenderCacheSize = 256
	RenderCacheTTL  = 10 * time.Minute

	// Background rescan (standard 5-field cron spec)
	RescanSpec = "*/10 * * * *"

	// Git settings
	GitUserEmail = "bot@blog-cms.local"
	GitUserName  = "Blog CMS Bot"
	GitBranch    = "main"
	GitRemote    = "origin"
)

var OauthConf *oauth2.Config

func Init() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found or error loading it.")
	}

	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	appURL := getEnv("APP_URL", "http://localhost:8080")
	redirectURL := getEnv("GITHUB_REDIRECT_URL", appURL+"/auth/callback")

	// Load Configs
	RepoPath = getEnv("REPO_PATH", "./repo")
	PublicPath = getEnv("PUBLIC_PATH", RepoPath+"/public")

	ContentDir = getEnv("CONTENT_DIR", "content/blog")
	AuthorsDir = getEnv("AUTHORS_DIR", "content/authors")
	ProfileFile = getEnv("PROFILE_FILE", "default.md")

	RescanSpec = getEnv("RESCAN_SPEC", "*/10 * * * *")

	GitUserEmail = getEnv("GIT_USER_EMAIL", "bot@blog-cms.local")
	GitUserName = getEnv("GIT_USER_NAME", "Blog CMS Bot")
	GitBranch = getEnv("GIT_BRANCH", "main")
	GitRemote = getEnv("GIT_REMOTE", "origin")

	if v := os.Getenv("RENDER_CACHE_SIZE"); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			RenderCacheSize = val
		}
	}
	if v := os.Getenv("RENDER_CACHE_TTL"); v != "" {
		if val, err := time.ParseDuration(v); err == nil {
			RenderCacheTTL = val
		}
	}

	OauthConf = &oauth2.Config{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		Scopes:       []string{"repo"},
		Endpoint:     github.Endpoint,
		RedirectURL:  redirectURL,
	}
}

func GetAppURL() string {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	return appURL
}
