package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/termynus/termynus/internal/server"
	"github.com/termynus/termynus/internal/style"
)

var (
	// Serve command flags
	servePort    int
	serveHost    string
	serveTimeout time.Duration
	serveMetrics bool
	serveCORS    bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for expression evaluation",
	Long: `Start an HTTP server that evaluates expressions via REST API.

The server provides:
- POST /api/v1/evaluate for expression evaluation
- POST /api/v1/parse for AST inspection
- POST /api/v1/render for template interpolation
- GET /api/v1/functions for the builtin catalog
- Prometheus metrics endpoint

Examples:
  tmy serve                              # Serve on localhost:8080
  tmy serve --port 9090 --host 0.0.0.0   # Custom host and port
  tmy serve --metrics=false              # Disable metrics endpoint`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server configuration
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "server port")
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "server host")
	serveCmd.Flags().DurationVar(&serveTimeout, "timeout", 10*time.Second, "per-request evaluation timeout")

	// Features
	serveCmd.Flags().BoolVar(&serveMetrics, "metrics", true, "enable Prometheus metrics endpoint")
	serveCmd.Flags().BoolVar(&serveCORS, "cors", true, "enable CORS headers")
}

func startServer(cmd *cobra.Command) {
	config := server.DefaultConfig()
	config.Host = serveHost
	config.Port = servePort
	config.Timeout = serveTimeout
	config.EnableMetrics = serveMetrics
	config.EnableCORS = serveCORS

	srv, err := server.New(config)
	if err != nil {
		style.Error(cmd.OutOrStderr(), fmt.Sprintf("Failed to create server: %v", err))
		os.Exit(1)
	}

	if !viper.GetBool("quiet") {
		style.Success(cmd.OutOrStdout(), fmt.Sprintf("Termynus server starting at http://%s", srv.GetAddr()))
		fmt.Fprintf(cmd.OutOrStdout(), "🚀 API: http://%s/api/v1/evaluate\n", srv.GetAddr())
		if serveMetrics {
			fmt.Fprintf(cmd.OutOrStdout(), "📊 Metrics: http://%s/metrics\n", srv.GetAddr())
		}
	}

	if err := srv.StartWithGracefulShutdown(); err != nil {
		style.Error(cmd.OutOrStderr(), fmt.Sprintf("Server error: %v", err))
		os.Exit(1)
	}
}
