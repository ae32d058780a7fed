package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/portfolio-catalog-api/internal/models"
	"github.com/portfolio-catalog-api/internal/catalogclient"
	"github.com/portfolio-catalog-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	rootCmd = &cobra.Command{
		Use:          "catalogctl",
		Short:        "Browse and submit portfolio projects",
		SilenceUsage: true,
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Show the project gallery",
		RunE:  runList,
	}
	submitCmd = &cobra.Command{
		Use:   "submit",
		Short: "Submit a new project",
		RunE:  runSubmit,
	}

	v   = viper.New()
	log zerolog.Logger

	// Flags
	category  string
	form      catalogclient.FormData
	imageFile string
)

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("api-url", "http://localhost:3000", "Catalog API base URL (CATALOG_API_URL)")
	pf.String("log-level", "warn", "Log level (CATALOG_LOG_LEVEL)")
	v.BindPFlag("api-url", pf.Lookup("api-url"))
	v.BindPFlag("log-level", pf.Lookup("log-level"))

	listCmd.Flags().StringVar(&category, "category", "", "Only show one category")

	f := submitCmd.Flags()
	f.StringVar(&form.Title, "title", "", "Project title")
	f.StringVar(&form.Description, "description", "", "Project description")
	f.StringVar((*string)(&form.Category), "category", string(models.CategoryWebsite), "One of: "+categoryList())
	f.StringVar(&form.Technologies, "technologies", "", "Comma separated technologies")
	f.StringVar(&form.ImageURL, "image-url", "", "URL of an already hosted image")
	f.StringVar(&imageFile, "image-file", "", "Image to upload to object storage")
	f.StringVar(&form.GithubURL, "github-url", "", "Source repository URL")
	f.StringVar(&form.ResultsAchieved, "results-achieved", "", "Results achieved")
	f.StringVar(&form.WebsiteURL, "website-url", "", "Website Projects: live URL")
	f.StringVar(&form.CampaignGoal, "campaign-goal", "", "Digital Campaign: goal")
	f.StringVar(&form.StrategyOverview, "strategy-overview", "", "Digital Campaign: strategy")
	f.StringVar(&form.PlatformsUsed, "platforms-used", "", "Digital Campaign: comma separated platforms")
	f.StringVar(&form.CampaignLink, "campaign-link", "", "Digital Campaign: link")
	f.StringVar(&form.DesignType, "design-type", "", "Graphic Design: type")
	f.StringVar(&form.ClientName, "client-name", "", "Graphic Design: client")
	f.StringVar(&form.ProjectOutcome, "project-outcome", "", "Graphic Design: outcome")
	f.StringVar(&form.VideoPurpose, "video-purpose", "", "Video Editing: purpose")
	f.StringVar(&form.ClientOrganization, "client-organization", "", "Video Editing: client or organization")
	f.StringVar(&form.VideoLink, "video-link", "", "Video Editing: link")
	f.StringVar(&form.KeyResults, "key-results", "", "Video Editing: key results")

	f.String("minio-endpoint", "", "Object storage endpoint (CATALOG_MINIO_ENDPOINT)")
	f.String("minio-access-key", "", "Object storage access key (CATALOG_MINIO_ACCESS_KEY)")
	f.String("minio-secret-key", "", "Object storage secret key (CATALOG_MINIO_SECRET_KEY)")
	f.String("minio-bucket", "portfolio", "Object storage bucket (CATALOG_MINIO_BUCKET)")
	f.Bool("minio-use-ssl", false, "Use TLS for object storage (CATALOG_MINIO_USE_SSL)")
	f.String("minio-public-url", "", "Base URL uploaded images are served from (CATALOG_MINIO_PUBLIC_URL)")
	for _, name := range []string{"minio-endpoint", "minio-access-key", "minio-secret-key", "minio-bucket", "minio-use-ssl", "minio-public-url"} {
		v.BindPFlag(name, f.Lookup(name))
	}

	rootCmd.AddCommand(listCmd, submitCmd)
}

func initConfig() {
	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	log = logger.New("catalogctl", logger.Options{
		Level:  v.GetString("log-level"),
		Format: "pretty",
		Output: os.Stderr,
	})
}

func categoryList() string {
	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		names = append(names, fmt.Sprintf("%q", c))
	}
	return strings.Join(names, ", ")
}

func newClient() *catalogclient.Client {
	return catalogclient.New(v.GetString("api-url"), catalogclient.WithLogger(log))
}

func runList(cmd *cobra.Command, args []string) error {
	gallery := catalogclient.NewGallery(newClient())

	filter := catalogclient.FilterAll
	if category != "" {
		filter = catalogclient.Filter(category)
	}

	// A failed load still renders the error state
	if err := gallery.SetFilter(cmd.Context(), filter); err != nil && gallery.Status() != catalogclient.StatusError {
		return err
	}
	if err := gallery.Render(cmd.OutOrStdout()); err != nil {
		return err
	}
	if gallery.Status() == catalogclient.StatusError {
		return gallery.Err()
	}
	return nil
}

func runSubmit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var uploader catalogclient.Uploader
	if imageFile != "" {
		u, err := catalogclient.NewMinioUploader(catalogclient.MinioConfig{
			Endpoint:  v.GetString("minio-endpoint"),
			AccessKey: v.GetString("minio-access-key"),
			SecretKey: v.GetString("minio-secret-key"),
			Bucket:    v.GetString("minio-bucket"),
			UseSSL:    v.GetBool("minio-use-ssl"),
			PublicURL: v.GetString("minio-public-url"),
		})
		if err != nil {
			return err
		}
		uploader = u
	}

	f := catalogclient.NewForm(newClient(), uploader)
	f.Data = form

	if imageFile != "" {
		if err := attachFile(ctx, f, imageFile); err != nil {
			return err
		}
		log.Info().Str("url", f.Data.ImageURL).Msg("Image uploaded")
	}

	project, err := f.Submit(ctx)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), f.Message)
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), f.Message)
	fmt.Fprintf(cmd.OutOrStdout(), "id: %d\n", project.ID)
	return nil
}

func attachFile(ctx context.Context, f *catalogclient.Form, name string) error {
	file, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat image: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return f.AttachImage(ctx, filepath.Base(name), file, info.Size(), contentType)
}
