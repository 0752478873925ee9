package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/apiclient"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/draftcache"
	"github.com/jonathan/cv-builder/internal/types"
)

// EnvPassword supplies the login password without a flag.
const EnvPassword = "CVBUILDER_PASSWORD"

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the enhancement API and save the token",
	Long: `Signs in to the API at api_url and stores the bearer token in the config file.
The password is read from --password or ` + EnvPassword + `.
With --sync-profile, blank personal fields of the cached draft are filled from the account profile.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var (
	loginEmail       string
	loginPassword    string
	loginAPIURL      string
	loginSyncProfile bool
)

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	loginCmd.Flags().StringVar(&loginAPIURL, "api-url", "", "API base URL (default from config)")
	loginCmd.Flags().BoolVar(&loginSyncProfile, "sync-profile", false, "Fill blank draft personal fields from the account profile")
	if err := loginCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if loginAPIURL != "" {
		cfg.APIURL = loginAPIURL
	}
	password := loginPassword
	if password == "" {
		password = os.Getenv(EnvPassword)
	}
	if password == "" {
		return fmt.Errorf("password is required: pass --password or set %s", EnvPassword)
	}
	timeout, err := cfg.EnhanceTimeoutDuration()
	if err != nil {
		return err
	}

	client, err := apiclient.New(cfg.APIURL, apiclient.Options{Timeout: timeout})
	if err != nil {
		return err
	}
	resp, err := client.Login(cmd.Context(), &types.LoginRequest{Email: strings.TrimSpace(loginEmail), Password: password})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	// Only the file's own values are saved, not merged defaults.
	stored := &config.Config{}
	if _, err := os.Stat(configFile()); err == nil {
		if stored, err = config.LoadConfig(configFile()); err != nil {
			return err
		}
	}
	stored.APIURL = cfg.APIURL
	stored.APIToken = resp.Token
	if err := config.SaveConfig(configFile(), stored); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	name := loginEmail
	if resp.User != nil && resp.User.Profile.Name != "" {
		name = resp.User.Profile.Name
	}
	fmt.Fprintf(out, "Logged in as %s. Token saved to %s\n", name, configFile())

	if !loginSyncProfile {
		return nil
	}
	profile, err := client.WithToken(resp.Token).GetProfile(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}
	cfg.APIToken = resp.Token
	n, err := syncProfile(cfg, profile)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Filled %d personal field(s) from your profile.\n", n)
	return nil
}

// syncProfile copies profile values into blank personal fields of the cached
// draft, starting a draft when none exists. It returns the number of fields set.
func syncProfile(cfg *config.Config, p *types.Profile) (int, error) {
	store, err := openCache(cfg)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	cv, ok, err := draftcache.GetValue[*types.CVData](store, draftcache.DraftKey)
	if err != nil {
		return 0, fmt.Errorf("failed to read cached draft: %w", err)
	}
	if !ok || cv == nil {
		cv = types.NewCVData()
	}

	n := 0
	fill := func(dst *string, v string) {
		if strings.TrimSpace(*dst) == "" && strings.TrimSpace(v) != "" {
			*dst = v
			n++
		}
	}
	fill(&cv.Profile.FullName, p.Name)
	fill(&cv.Profile.Email, p.Email)
	fill(&cv.Profile.Phone, p.Phone)
	fill(&cv.Profile.JobTitle, p.JobTitle)
	fill(&cv.Profile.Location, p.Location)
	fill(&cv.Profile.Summary, p.Bio)
	if n == 0 {
		return 0, nil
	}
	cv.Normalize()
	if err := store.Set(draftcache.DraftKey, cv, draftcache.Options{ExpiresIn: draftcache.DraftTTL}); err != nil {
		return 0, fmt.Errorf("failed to save draft: %w", err)
	}
	return n, nil
}
